package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/serialgen/internal/cli"
	"github.com/toyz/serialgen/internal/errors"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [roots...]",
		Short: "Process annotated headers (the default command)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts, args)
		},
	}
}

func runProcess(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return reportFailure(cmd, opts.verbose, err)
	}

	diagnostics := newDiagnostics(cmd, cfg)
	diagnostics.Header("processing " + cfg.ProjectDir)
	diagnostics.Verbose("Run %s", diagnostics.RunID())
	if cfg.Source != "" {
		diagnostics.Verbose("Configuration: %s", cfg.Source)
	}
	if cfg.DryRun {
		diagnostics.Info("Dry run: no files will be written")
	}

	processor := cli.NewProcessor(cfg, diagnostics)
	files, err := collectFiles(cfg, diagnostics, processor)
	if err != nil {
		return reportFailure(cmd, cfg.Verbose, err)
	}

	result, err := processor.Run(cmd.Context(), files)
	if err != nil {
		return reportFailure(cmd, cfg.Verbose, err)
	}

	out := cmd.OutOrStdout()
	cli.RenderSummary(out, result)
	if cfg.Verbose {
		cli.RenderOutcomes(out, result, cfg.ProjectDir)
	}
	diagnostics.Verbose("Finished in %s", result.Duration)

	if !result.Errors.IsEmpty() {
		newReporter(cmd, cfg.Verbose).ReportError(result.Errors)
	}

	if result.Failed > 0 {
		return errors.New(errors.GenerationErrorCode, fmt.Sprintf("%d declaration(s) could not be injected", result.Failed))
	}
	if result.Errors.IsEmpty() {
		if cfg.DryRun {
			diagnostics.Success("%d declaration(s) ready, %d file(s) would change", result.Processed, len(result.FilesChanged))
		} else {
			diagnostics.Success("%d declaration(s) processed, %d file(s) written", result.Processed, len(result.FilesChanged))
		}
	}
	return nil
}
