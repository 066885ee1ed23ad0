package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xmlbind/internal/diagnostic"
	"xmlbind/schema"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a binding schema and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.loadSchema()
			if err != nil {
				return err
			}

			diags := schema.Validate(f, nil)
			out := cmd.OutOrStdout()

			printDiagnostics(out, diags)

			if diags.HasErrors() {
				return fmt.Errorf("%s: %d error(s)", a.cfg.Schema, len(diags.Errors))
			}

			if _, err := schema.Compile(f, nil, schema.WithLogger(a.logger)); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(out, "%s: %d type(s), %d warning(s)\n",
				a.cfg.Schema, len(f.Types), len(diags.Warnings))

			return nil
		},
	}
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var c *color.Color

		switch d.Severity {
		case diagnostic.DiagnosticError:
			c = color.New(color.FgRed, color.Bold)
		case diagnostic.DiagnosticWarning:
			c = color.New(color.FgYellow)
		default:
			c = color.New(color.FgCyan)
		}

		c.Fprintf(w, "%s: ", d.Severity)
		fmt.Fprintln(w, d.String())
	}
}
