package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toyz/serialgen/internal/cli"
	"github.com/toyz/serialgen/internal/utils"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	project     string
	config      string
	annotation  string
	noLibraries bool
	dryRun      bool
	verbose     bool
	quiet       bool
	workers     int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "serialgen [roots...]",
		Short: "Inject JSON serialization code into annotated C++ headers",
		Long: `serialgen scans C++ headers for /* @Serializable */ markers and injects
Serialize, ValidateFields and Deserialize methods into the annotated classes,
plus string codecs for annotated enums. Processed markers are rewritten to
/*--@Serializable--*/ so running it again changes nothing.

Roots default to the project directory and accept a trailing /... for
readability:
  serialgen                   scan the project
  serialgen ./src/...         scan src only
  serialgen --dry-run         report what would change`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.project, "project", "", "project directory (defaults to "+cli.EnvProjectDir+" or the nearest CMakeLists.txt/platformio.ini)")
	flags.StringVar(&opts.config, "config", "", "configuration file (defaults to <project>/"+cli.ConfigFileName+")")
	flags.StringVar(&opts.annotation, "annotation", "", "class annotation: Serializable, Entity or _Entity")
	flags.BoolVar(&opts.noLibraries, "no-libraries", false, "do not scan fetched CMake/PlatformIO libraries")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "report changes without writing files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show per-declaration outcomes and generated code")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only show errors and the final summary")
	flags.IntVar(&opts.workers, "workers", 0, "concurrent reads during rule discovery")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newRulesCmd(opts))

	return cmd
}

// loadConfig layers the flags that were set over the loaded configuration and validates the result
func loadConfig(cmd *cobra.Command, opts *rootOptions, args []string) (*cli.Config, error) {
	cfg, err := cli.LoadConfig(cli.LoadOptions{
		ConfigPath: opts.config,
		ProjectDir: opts.project,
	})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("annotation") {
		cfg.ClassAnnotation = opts.annotation
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if opts.noLibraries {
		cfg.IncludeLibraries = false
	}
	cfg.DryRun = opts.dryRun
	cfg.Verbose = opts.verbose
	cfg.Quiet = opts.quiet

	if len(args) > 0 {
		cfg.Roots = cfg.Roots[:0]
		for _, arg := range args {
			root, err := cli.CleanRoot(arg)
			if err != nil {
				return nil, err
			}
			cfg.Roots = append(cfg.Roots, root)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// collectFiles resolves library roots when enabled and gathers the headers to work on
func collectFiles(cfg *cli.Config, diagnostics *utils.DiagnosticSystem, processor *cli.Processor) ([]string, error) {
	var libraries []string
	if cfg.IncludeLibraries {
		libraries = cli.NewLibraryResolver(processor.FileOps()).Discover(cfg.ProjectDir)
		for _, library := range libraries {
			diagnostics.Verbose("Library root: %s", library)
		}
	}

	diagnostics.StartProgress("Scanning headers")
	files, err := cli.NewHeaderScanner().Collect(cfg, libraries)
	if err != nil {
		return nil, err
	}
	diagnostics.EndProgress("Scanning headers")
	diagnostics.Verbose("Found %d header files", len(files))

	return files, nil
}

// newDiagnostics builds the diagnostic system for cfg, following the command's writers
// when they were redirected
func newDiagnostics(cmd *cobra.Command, cfg *cli.Config) *utils.DiagnosticSystem {
	diagnostics := utils.NewDiagnosticSystem(cfg.DiagnosticLevel())
	if out := cmd.OutOrStdout(); out != os.Stdout {
		diagnostics.SetOutput(out, cmd.ErrOrStderr())
	}
	return diagnostics
}

// newReporter builds an error reporter on the command's error writer
func newReporter(cmd *cobra.Command, verbose bool) *cli.DiagnosticReporter {
	reporter := cli.NewDiagnosticReporter(verbose)
	reporter.SetOutput(cmd.ErrOrStderr())
	return reporter
}

// reportFailure renders err in full before handing it back to cobra
func reportFailure(cmd *cobra.Command, verbose bool, err error) error {
	newReporter(cmd, verbose).ReportError(err)
	return err
}
