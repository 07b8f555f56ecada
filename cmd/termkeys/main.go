// Package main is the entry point for termkeys, which prints the escape
// sequences a terminal sends for key presses.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/termkeys/internal/app"
	"github.com/dshills/termkeys/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Output formats for translated sequences.
const (
	formatAuto   = "auto"
	formatQuoted = "quoted"
	formatRaw    = "raw"
)

// cliOptions holds what the command line asks for beyond app.Options.
type cliOptions struct {
	app         app.Options
	termcap     string
	batch       string
	interactive bool
	list        bool
	format      string
	specs       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	if cli.interactive && !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal on stdin")
		return 1
	}

	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	switch {
	case cli.interactive:
		return runInteractive(application)
	case cli.list:
		if err := application.WriteTermcapTable(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case cli.batch != "":
		return runBatch(application, cli.batch)
	}

	// Arguments are a sequence: space them past the debounce window so
	// gesture paths decode.
	w := newOutput(os.Stdout, cli.format)
	clock := application.Clock()
	status := 0
	if cli.termcap != "" {
		out, err := application.TermcapAt(cli.termcap, clock())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = 1
		} else {
			w.write(out)
		}
	}
	for _, spec := range cli.specs {
		out, err := application.EncodeAt(spec, clock())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", spec, err)
			status = 1
			continue
		}
		w.write(out)
	}
	return status
}

func runInteractive(application *app.App) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetScreen(screen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Log lines would corrupt the screen.
	application.Logger().Disable()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runBatch(application *app.App, path string) int {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		r = f
	}

	if err := application.RunBatch(r, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		return 1
	}
	return 0
}

// output writes translated sequences either raw or as Go-quoted lines.
type output struct {
	w      io.Writer
	quoted bool
}

// newOutput resolves the auto format: quoted on a terminal, raw when
// piped.
func newOutput(f *os.File, format string) *output {
	quoted := format == formatQuoted
	if format == formatAuto {
		quoted = term.IsTerminal(int(f.Fd()))
	}
	return &output{w: f, quoted: quoted}
}

func (o *output) write(s string) {
	if o.quoted {
		fmt.Fprintln(o.w, strconv.Quote(s))
		return
	}
	io.WriteString(o.w, s)
}

func parseFlags() cliOptions {
	var cli cliOptions
	var cursorApp, keypadApp bool
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&cli.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&cli.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cursorApp, "cursor-app", false, "Cursor keys in application mode (DECCKM)")
	flag.BoolVar(&keypadApp, "keypad-app", false, "Keypad in application mode (DECKPAM)")
	flag.BoolVar(&cli.app.NoGestures, "no-gestures", false, "Encode directional keys directly instead of decoding gestures")
	flag.StringVar(&cli.app.Script, "script", "", "Lua remap script")
	flag.StringVar(&cli.app.Script, "s", "", "Lua remap script (shorthand)")
	flag.BoolVar(&cli.app.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&cli.termcap, "termcap", "", "Translate a termcap capability name")
	flag.StringVar(&cli.termcap, "t", "", "Translate a termcap capability name (shorthand)")
	flag.StringVar(&cli.batch, "batch", "", "Translate tokens from a file (- for stdin)")
	flag.StringVar(&cli.batch, "b", "", "Translate tokens from a file (shorthand)")
	flag.BoolVar(&cli.interactive, "interactive", false, "Show key presses live")
	flag.BoolVar(&cli.interactive, "i", false, "Show key presses live (shorthand)")
	flag.BoolVar(&cli.list, "list", false, "List termcap capabilities and their sequences")
	flag.StringVar(&cli.format, "format", formatAuto, "Output format (auto, quoted, raw)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termkeys - terminal key escape sequence encoder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termkeys [options] [key specs...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termkeys Ctrl+Up             Print the sequence for Ctrl+Up\n")
		fmt.Fprintf(os.Stderr, "  termkeys -cursor-app Home    Home with DECCKM set\n")
		fmt.Fprintf(os.Stderr, "  termkeys -t kh               Translate the termcap name kh\n")
		fmt.Fprintf(os.Stderr, "  termkeys -b keys.txt         Translate a batch file\n")
		fmt.Fprintf(os.Stderr, "  termkeys -i                  Interactive key viewer\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("termkeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	if cli.app.LogLevel != "" && !logging.ValidLevel(cli.app.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.app.LogLevel)
		os.Exit(1)
	}

	switch cli.format {
	case formatAuto, formatQuoted, formatRaw:
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format %q (must be auto, quoted, or raw)\n", cli.format)
		os.Exit(1)
	}

	// Only explicit mode flags override the configuration.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cursor-app":
			cli.app.CursorApp = &cursorApp
		case "keypad-app":
			cli.app.KeypadApp = &keypadApp
		}
	})

	cli.specs = flag.Args()

	if !cli.interactive && !cli.list && cli.batch == "" && cli.termcap == "" && len(cli.specs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	return cli
}
