package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/serialgen/internal/cli"
)

func newRulesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [roots...]",
		Short: "Show the validation rules discovered in the headers",
		Long: `Validation rules are macros defined as

  #define NotBlank /* Validation Function -> StringValidators::NotBlank */

A rule defined twice keeps the last definition; both places are reported.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, opts, args)
		},
	}
}

func runRules(cmd *cobra.Command, opts *rootOptions, args []string) error {
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

	rules, errs := processor.DiscoverRules(cmd.Context(), files)
	for _, err := range errs {
		diagnostics.Warn("%v", err)
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rules.Len() == 0 {
		fmt.Fprintln(out, "No validation rules found.")
		return nil
	}
	cli.RenderRules(out, rules, cfg.ProjectDir)
	return nil
}
