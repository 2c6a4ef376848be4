package inline

// emojiShortcodes maps a small, commonly-typed subset of GitHub-style
// ":name:" shortcodes to their emoji replacement text. This is not a
// generated table from the full Unicode emoji list -- just the set a
// writer reaches for often enough that a static map beats an external
// data file for this kind of editor.
var emojiShortcodes = map[string]string{
	"smile":        "😄",
	"grin":         "😁",
	"joy":          "😂",
	"wink":         "😉",
	"thinking":     "🤔",
	"shrug":        "🤷",
	"thumbsup":     "👍",
	"thumbsdown":   "👎",
	"heart":        "❤️",
	"fire":         "🔥",
	"rocket":       "🚀",
	"tada":         "🎉",
	"eyes":         "👀",
	"warning":      "⚠️",
	"check":        "✅",
	"x":            "❌",
	"bulb":         "💡",
	"star":         "⭐",
	"wave":         "👋",
	"clap":         "👏",
	"+1":           "👍",
	"-1":           "👎",
	"100":          "💯",
	"pencil":       "✏️",
	"memo":         "📝",
	"bug":          "🐛",
	"sparkles":     "✨",
	"coffee":       "☕",
}
