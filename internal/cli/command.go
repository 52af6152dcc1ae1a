package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Output modes.
const (
	OutputHuman   = "human"
	OutputMachine = "machine"
)

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		dupfind locates files with byte-identical content and reports them.
		It never deletes, moves, or links files.

		Usage:

			dupfind [flags] [dirs...]

		Positional Arguments:
		  dirs                   Directories to search. Defaults to the current directory.

		Modes:
		  human    Grouped listing: each original on its own line, duplicates
		           indented beneath it, followed by a summary line.
		  machine  Only the redundant paths, one per line, for piping into
		           downstream tools.

		  When --output and the --human/--machine shorthands are mixed, the
		  last mode flag on the command line wins.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		options    dupfind.Options
		flags      flagValues
		minSizeStr string
	)

	allowedOutputs := []string{OutputHuman, OutputMachine}

	pflag.StringVarP(&flags.output, "output", "o", OutputHuman, "Output format: human or machine")
	pflag.BoolVar(&flags.human, "human", false, "Shorthand for --output human")
	pflag.BoolVarP(&flags.machine, "machine", "m", false, "Shorthand for --output machine")
	pflag.IntVarP(&options.MaxDepth, "max-depth", "d", 1, "Maximum traversal depth (0 = only files directly inside each root)")
	pflag.StringVar(&minSizeStr, "min-size", "0B", "Minimum file size (e.g., 1KB)")
	pflag.StringSliceVarP(&options.Excludes, "exclude", "e", nil, "Regex patterns to exclude")
	pflag.IntVarP(&options.Workers, "workers", "j", runtime.NumCPU(), "Number of concurrent hashing workers")
	pflag.BoolVar(&options.DerefSymlinks, "deref-symlinks", true, "Compare symlinks to files by their target's content; disable to skip symlinks")
	pflag.StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pflag.BoolVarP(&flags.version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if flags.version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	output, err := resolveOutputMode(pflag.CommandLine, rawArgs())
	if err != nil {
		return err
	}

	if !slices.Contains(allowedOutputs, output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", output, allowedOutputs)
	}

	if options.MaxDepth < 0 {
		return errors.New("max-depth cannot be negative")
	}

	if minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return fmt.Errorf("invalid min-size: %w", err)
		}

		options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	options.Roots = pflag.Args()
	if len(options.Roots) == 0 {
		options.Roots = []string{"."}
	}

	return logic(options, output, flags.logLevel)
}

// flagValues holds CLI-only flags that do not configure the engine.
type flagValues struct {
	output   string
	human    bool
	machine  bool
	logLevel string
	version  bool
}

// rawArgs returns the process arguments without the program name.
func rawArgs() []string {
	return os.Args[1:]
}

// resolveOutputMode applies the documented precedence rule: the last
// mode-selecting flag on the command line wins, whether it is
// --output/-o, --human, or --machine/-m. With no mode flag at all the
// --output default applies.
func resolveOutputMode(flagSet *pflag.FlagSet, args []string) (string, error) {
	mode, err := flagSet.GetString("output")
	if err != nil {
		return "", err
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return mode, nil
		case arg == "--human":
			mode = OutputHuman
		case arg == "--machine" || arg == "-m":
			mode = OutputMachine
		case arg == "--output" || arg == "-o":
			if i+1 < len(args) {
				i++
				mode = args[i]
			}
		case strings.HasPrefix(arg, "--output="):
			mode = strings.TrimPrefix(arg, "--output=")
		case strings.HasPrefix(arg, "-o="):
			mode = strings.TrimPrefix(arg, "-o=")
		case strings.HasPrefix(arg, "-o") && len(arg) > len("-o"):
			mode = strings.TrimPrefix(arg, "-o")
		}
	}

	return mode, nil
}
