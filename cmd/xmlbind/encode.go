package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) encodeCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "encode [record.yaml|-]",
		Short: "Read a YAML record and print it as an XML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.compile()
			if err != nil {
				return err
			}

			t, err := a.lookup(set, typeName)
			if err != nil {
				return err
			}

			name := "-"
			if len(args) == 1 {
				name = args[0]
			}

			in, err := openInput(cmd, name)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			var record map[string]any
			if err := yaml.Unmarshal(data, &record); err != nil {
				return fmt.Errorf("failed to parse record YAML: %w", err)
			}

			n, err := t.Encode(record)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if !a.cfg.Declaration {
				s, err := n.XML(a.cfg.Indent)
				if err != nil {
					return fmt.Errorf("failed to write XML: %w", err)
				}

				_, err = fmt.Fprintln(out, strings.TrimRight(s, "\n"))

				return err
			}

			doc := n.Document()
			if a.cfg.Indent >= 0 {
				doc.Indent(a.cfg.Indent)
			}

			if _, err := doc.WriteTo(out); err != nil {
				return fmt.Errorf("failed to write XML: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "schema type to encode")

	return cmd
}
