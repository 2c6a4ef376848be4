package inline

// htmlEntities maps the small set of named HTML entities the editor
// recognizes inline to their decoded UTF-8 text. Numeric entities
// (&#123; / &#x7B;) are intentionally not handled here; they're rare
// enough in hand-typed prose that the fallback literal-text rendering is
// an acceptable loss, matching the reduced-dialect scope of the rest of
// this package.
var htmlEntities = map[string]string{
	"amp":     "&",
	"lt":      "<",
	"gt":      ">",
	"quot":    "\"",
	"apos":    "'",
	"nbsp":    " ",
	"copy":    "©",
	"reg":     "®",
	"trade":   "™",
	"mdash":   "—",
	"ndash":   "–",
	"hellip":  "…",
	"lsquo":   "‘",
	"rsquo":   "’",
	"ldquo":   "“",
	"rdquo":   "”",
	"deg":     "°",
	"plusmn":  "±",
	"times":   "×",
	"divide":  "÷",
	"larr":    "←",
	"uarr":    "↑",
	"rarr":    "→",
	"darr":    "↓",
}
