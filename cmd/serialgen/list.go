package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/serialgen/internal/cli"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [roots...]",
		Short: "List serialization markers and whether they are processed",
		Example: `  # Every marker in the project
  serialgen list

  # Markers under src only, Entity classes
  serialgen list --annotation Entity ./src/...`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return reportFailure(cmd, opts.verbose, err)
	}

	diagnostics := newDiagnostics(cmd, cfg)
	processor := cli.NewProcessor(cfg, diagnostics)
	files, err := collectFiles(cfg, diagnostics, processor)
	if err != nil {
		return reportFailure(cmd, cfg.Verbose, err)
	}

	entries, errs := cli.FindAllMarkers(processor.FileOps(), files, cfg.ClassMarkerName())
	for _, err := range errs {
		diagnostics.Warn("%v", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No markers found.")
		return nil
	}
	cli.RenderMarkers(out, entries, cfg.ProjectDir)
	return nil
}
