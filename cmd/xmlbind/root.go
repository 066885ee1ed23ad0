package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xmlbind/internal/cli/config"
	"xmlbind/internal/match"
	"xmlbind/schema"
)

type app struct {
	configPath string
	schemaPath string
	indent     int
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "xmlbind",
		Short: "Bind XML documents to records described by a YAML schema",
		Long: `xmlbind reads a binding schema that maps record fields to XML elements,
attributes, text and key/value pairs, and uses it to convert between XML
documents and YAML records.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./xmlbind.yaml)")
	pf.StringVarP(&a.schemaPath, "schema", "s", "", "binding schema file")
	pf.IntVar(&a.indent, "indent", 2, "spaces of XML indentation, negative for none")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log binding details to stderr")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(a.checkCmd(), a.decodeCmd(), a.encodeCmd())

	return root
}

// setup loads the config file and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("schema") {
		cfg.Schema = a.schemaPath
	}

	if flags.Changed("indent") {
		cfg.Indent = a.indent
	}

	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}

	if a.noColor {
		color.NoColor = true
	}

	a.cfg = cfg
	a.logger = zap.NewNop()

	if cfg.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		a.logger = logger
	}

	return nil
}

func (a *app) loadSchema() (*schema.File, error) {
	if a.cfg.Schema == "" {
		return nil, fmt.Errorf("no schema given: pass --schema or set schema in xmlbind.yaml")
	}

	return schema.LoadFile(a.cfg.Schema)
}

func (a *app) compile() (*schema.Set, error) {
	f, err := a.loadSchema()
	if err != nil {
		return nil, err
	}

	return schema.Compile(f, nil, schema.WithLogger(a.logger))
}

// lookup finds the named type. An empty name selects the only type of a
// single-type schema.
func (a *app) lookup(set *schema.Set, name string) (*schema.Type, error) {
	names := set.Names()

	if name == "" {
		if len(names) == 1 {
			name = names[0]
		} else {
			return nil, fmt.Errorf("schema defines %d types, pick one with --type: %s",
				len(names), strings.Join(names, ", "))
		}
	}

	t, ok := set.Type(name)
	if !ok {
		msg := fmt.Sprintf("unknown type %q", name)
		if s := match.Suggest(name, names); len(s) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
		}

		return nil, errors.New(msg)
	}

	return t, nil
}

// openInput opens the named file, or standard input for "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	return f, nil
}
