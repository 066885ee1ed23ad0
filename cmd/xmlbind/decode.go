package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"xmlbind/xmlnode"
)

func (a *app) decodeCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "decode [file.xml|-]",
		Short: "Read an XML document and print the bound record as YAML",
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

			root, err := xmlnode.ParseReader(in)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", name, err)
			}

			rec, err := t.Decode(root)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to write YAML: %w", err)
			}

			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "schema type to decode")

	return cmd
}
