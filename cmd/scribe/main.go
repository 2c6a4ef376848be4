// Command scribe is the CLI collaborator the core's specification
// treats as out-of-scope: it parses arguments, reads the document off
// disk (or stdin), constructs the one concrete Host the module ships
// (an ANSI terminal driver), and hands both to internal/editor's frame
// loop. Following the teacher's hybrid CLI+TUI pattern
// (examples/cobra-cli/main.go), flag parsing is entirely Cobra's job;
// everything past flag resolution belongs to the core.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrewmd5/scribe/internal/editor"
	"github.com/andrewmd5/scribe/internal/host"
	"github.com/andrewmd5/scribe/internal/render/style"
)

var (
	flagFile    string
	flagPreview string
	flagPrint   bool
	flagDemo    string
	flagTheme   string
)

var rootCmd = &cobra.Command{
	Use:     "scribe",
	Short:   "a distraction-free markdown writing environment",
	Version: "0.1.0",
	RunE:    runScribe,
}

func init() {
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "open FILE for writing")
	rootCmd.Flags().StringVarP(&flagPreview, "preview", "p", "", "open FILE read-only")
	rootCmd.Flags().BoolVarP(&flagPrint, "print", "P", false, "render once to stdout and exit")
	rootCmd.Flags().StringVarP(&flagDemo, "demo", "d", "", "open FILE read-only, like -p (no replay is performed)")
	rootCmd.Flags().StringVarP(&flagTheme, "theme", "t", "dark", "color theme: light|dark")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScribe(cmd *cobra.Command, args []string) error {
	theme := style.Lookup(flagTheme)

	path, readOnly, err := resolveSource(args)
	if err != nil {
		return err
	}
	text, err := readSource(path)
	if err != nil {
		return err
	}

	if flagPrint {
		return printOnce(text, theme)
	}

	h := host.NewANSITerminal()
	if err := h.EnterRawMode(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer h.Close()

	e := editor.New(h, text, theme)
	if readOnly {
		// Preview mode still uses the Writing view for layout, but with
		// no session timer, so the editor never transitions to Finished.
		e.ForceMode(editor.ModeWriting)
	}
	return editor.Run(h, e)
}

// resolveSource picks the path to read from among -f, -p, -d, a bare
// "-" (stdin), or a single positional argument, in that priority order,
// and reports whether the result should be treated read-only.
func resolveSource(args []string) (path string, readOnly bool, err error) {
	switch {
	case flagFile != "":
		return flagFile, false, nil
	case flagPreview != "":
		return flagPreview, true, nil
	case flagDemo != "":
		return flagDemo, true, nil
	case len(args) == 1 && args[0] == "-":
		return "-", false, nil
	case len(args) == 1:
		return args[0], false, nil
	case len(args) == 0:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("scribe: too many arguments")
	}
}

func readSource(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}
}

// printOnce renders the document once at the current terminal's size (or
// an 80-column fallback when output isn't a terminal) and writes the
// plain, unstyled lines to stdout -- the -P "print mode implies
// non-interactive" path from the CLI surface.
func printOnce(text string, theme style.Theme) error {
	h := host.NewANSITerminal()
	width, height := h.Size()
	if width == 0 {
		width, height = 80, 24
	}
	e := editor.New(h, text, theme)
	e.Resize(width, height)
	e.ForceMode(editor.ModeWriting)
	frame := e.Frame()
	for _, line := range frame.Lines {
		fmt.Println(line.Plain())
	}
	return nil
}
