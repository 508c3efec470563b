package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mitranim/fermion"
	"github.com/mitranim/fermion/internal/debug"
	"github.com/mitranim/fermion/internal/document"
)

type renderFlags struct {
	bind string
	json bool
}

type renderedStatement struct {
	Name   string         `json:"name"`
	SQL    string         `json:"sql"`
	Args   []any          `json:"args"`
	Values map[string]any `json:"values"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(global *globalFlags) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file.yaml>",
		Short: "Render every statement of a document",
		Long:  "Compile a YAML statement document and print the SQL and bound arguments of each statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.bind, "bind", "", "Parameter style: named, question or dollar (default from config)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print statements as a JSON array")

	return cmd
}

func runRender(cmd *cobra.Command, global *globalFlags, flags renderFlags, path string) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	style := cfg.Bind
	if flags.bind != `` {
		style, err = fermion.ParseBindStyle(flags.bind)
		if err != nil {
			return err
		}
	}

	doc, err := document.ReadFile(Fs, path)
	if err != nil {
		return err
	}

	stmts, err := doc.Compile()
	if err != nil {
		return err
	}
	debug.Debug("compiled document", "path", path, "statements", len(stmts), "bind", style.String())

	out := make([]renderedStatement, 0, len(stmts))
	for ind, stmt := range stmts {
		text, args, err := fermion.Rebind(stmt, style)
		if err != nil {
			return fmt.Errorf("statement %d (%s): %w", ind, doc.Statements[ind].Label(), err)
		}
		out = append(out, renderedStatement{
			Name:   doc.Statements[ind].Label(),
			SQL:    text,
			Args:   args,
			Values: stmt.Values().Map(),
		})
	}

	if flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(``, `  `)
		return enc.Encode(out)
	}
	printStatements(cmd.OutOrStdout(), out, cfg.Color)
	return nil
}

func printStatements(out io.Writer, stmts []renderedStatement, colored bool) {
	heading := color.New(color.FgCyan, color.Bold)
	arg := color.New(color.FgYellow)
	if !colored {
		heading.DisableColor()
		arg.DisableColor()
	}

	for ind, stmt := range stmts {
		if ind > 0 {
			fmt.Fprintln(out)
		}
		heading.Fprintf(out, "-- %s\n", stmt.Name)
		fmt.Fprintln(out, stmt.SQL)
		for pos, val := range stmt.Args {
			if named, ok := val.(sql.NamedArg); ok {
				arg.Fprintf(out, "--   %s: %v\n", named.Name, named.Value)
				continue
			}
			arg.Fprintf(out, "--   %d: %v\n", pos+1, val)
		}
	}
}
