package launcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Lucioric2000/openshot-qt/internal/config"
	"github.com/Lucioric2000/openshot-qt/internal/errors"
)

// Options is the parsed command line.
type Options struct {
	ShowVersion   bool
	ListLanguages bool
	ExtraPaths    []string
	TestModels    bool
	WebBackend    config.WebBackend
	Debug         bool
	DebugFile     bool
	DebugConsole  bool
	Lang          string
	Help          bool

	// WebBackendSet is true when --web-backend appeared on the command line.
	WebBackendSet bool

	// Passthrough holds the first positional argument and everything after it.
	Passthrough []string
}

// NewFlagSet returns the openshot flags bound to o.
func NewFlagSet(o *Options) *pflag.FlagSet {
	o.WebBackend = config.BackendAuto

	fs := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&o.Lang, "lang", "l", "", "language code for interface (overrides preferences and system environment)")
	fs.BoolVar(&o.ListLanguages, "list-languages", false, "List all language codes supported by OpenShot")
	fs.StringArrayVar(&o.ExtraPaths, "path", nil, "Additional locations to search for modules. Can be used multiple times.")
	fs.BoolVar(&o.TestModels, "test-models", false, "Check list model invariants on every update")
	fs.VarP(&o.WebBackend, "web-backend", "b", "Web backend to use for Timeline (auto, webkit, webengine)")
	fs.BoolVarP(&o.Debug, "debug", "d", false, "Enable debugging output")
	fs.BoolVar(&o.DebugFile, "debug-file", false, "Debugging output (logfile only)")
	fs.BoolVar(&o.DebugConsole, "debug-console", false, "Debugging output (console only)")
	fs.BoolVarP(&o.ShowVersion, "version", "V", false, "Print the version and exit")
	fs.BoolVarP(&o.Help, "help", "h", false, "Show this help message and exit")

	return fs
}

// Parse parses args (without the program name). It returns the options and
// the tokens that matched no flag, in the order they were given.
func Parse(args []string) (Options, []string, error) {
	var o Options
	fs := NewFlagSet(&o)

	known, unknown := splitArgs(fs, args)
	if err := fs.Parse(known); err != nil {
		return Options{}, nil, errors.UsageError(err)
	}
	if err := checkValues(&o); err != nil {
		return Options{}, nil, errors.UsageError(err)
	}
	o.WebBackendSet = fs.Changed("web-backend")
	o.Passthrough = append([]string(nil), fs.Args()...)

	return o, unknown, nil
}

// checkValues rejects string values that were taken from a following flag,
// as in "--lang --debug".
func checkValues(o *Options) error {
	if strings.HasPrefix(o.Lang, "-") {
		return fmt.Errorf("flag needs an argument: --lang (got %q)", o.Lang)
	}
	for _, p := range o.ExtraPaths {
		if strings.HasPrefix(p, "-") {
			return fmt.Errorf("flag needs an argument: --path (got %q)", p)
		}
	}
	return nil
}

// splitArgs separates tokens that belong to fs from those that do not.
// Scanning stops at the first positional argument or "--"; that token and
// the rest are kept for fs so they end up in fs.Args().
func splitArgs(fs *pflag.FlagSet, args []string) (known, unknown []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return append(known, args[i:]...), unknown

		case strings.HasPrefix(arg, "--"):
			name, _, inline := strings.Cut(arg[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				unknown = append(unknown, arg)
				continue
			}
			known = append(known, arg)
			if !inline && takesValue(f) && i+1 < len(args) {
				i++
				known = append(known, args[i])
			}

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			needsNext, ok := matchShorthands(fs, arg[1:])
			if !ok {
				unknown = append(unknown, arg)
				continue
			}
			known = append(known, arg)
			if needsNext && i+1 < len(args) {
				i++
				known = append(known, args[i])
			}

		default:
			return append(known, args[i:]...), unknown
		}
	}
	return known, unknown
}

// matchShorthands reports whether every letter of a short-flag cluster is
// a known shorthand, and whether the last one expects its value in the
// next token.
func matchShorthands(fs *pflag.FlagSet, cluster string) (needsNext bool, ok bool) {
	for i := 0; i < len(cluster); i++ {
		c := cluster[i]
		if c >= 0x80 {
			return false, false
		}
		f := fs.ShorthandLookup(string(c))
		if f == nil {
			return false, false
		}
		if takesValue(f) {
			return i == len(cluster)-1, true
		}
	}
	return false, true
}

func takesValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == ""
}

// Usage renders the help text.
func Usage(version string) string {
	var o Options
	fs := NewFlagSet(&o)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: %s [flags] [files...]\n\n", config.AppName)
	fmt.Fprintf(&sb, "OpenShot version %s\n\n", version)
	sb.WriteString("Flags:\n")
	sb.WriteString(fs.FlagUsages())
	return sb.String()
}
