package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"entity-projector/entity"
	"entity-projector/internal/decl"
	"entity-projector/internal/diagnostic"
)

var (
	fieldsEntity string
	fieldsDump   bool
)

// fieldsCmd describes how an entity resolves its fields.
var fieldsCmd = &cobra.Command{
	Use:   "fields --entity NAME",
	Short: "Show the fields, alias, aux slots and ancestors of an entity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := declarations(nil)
		if err != nil {
			return err
		}

		reg, err := loadRegistry(paths, log)
		if err != nil {
			return err
		}

		t, err := reg.Get(fieldsEntity)
		if err != nil {
			return err
		}

		if fieldsDump {
			spew.Fdump(cmd.OutOrStdout(), describe(t))
			return nil
		}

		printType(cmd.OutOrStdout(), t)

		res, err := lintEntity(paths, t.Name())
		if err != nil {
			return err
		}

		for _, d := range res.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", warningLabel(d.Severity), d)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVarP(&fieldsEntity, "entity", "e", "", "entity to describe")
	fieldsCmd.Flags().BoolVar(&fieldsDump, "dump", false, "dump the description with go-spew")
	_ = fieldsCmd.MarkFlagRequired("entity")
}

// typeSummary is what fields prints about a type.
type typeSummary struct {
	Name      string
	Alias     string
	Aux       []string
	Ancestors []string
	Fields    []fieldSummary
}

type fieldSummary struct {
	Name      string
	DefinedBy string // empty when read from the wrapped object
}

func describe(t *entity.Type) typeSummary {
	s := typeSummary{
		Name:  t.Name(),
		Alias: t.Alias(),
		Aux:   t.AuxSlots(),
	}

	for _, a := range t.Ancestors()[1:] {
		s.Ancestors = append(s.Ancestors, a.Name())
	}

	for _, f := range t.Fields() {
		fs := fieldSummary{Name: f}
		if owner, ok := t.DefinedBy(f); ok {
			fs.DefinedBy = owner.Name()
		}

		s.Fields = append(s.Fields, fs)
	}

	return s
}

func printType(w io.Writer, t *entity.Type) {
	s := describe(t)

	fmt.Fprintf(w, "entity:    %s\n", s.Name)
	fmt.Fprintf(w, "alias:     %s\n", orNone(s.Alias))
	fmt.Fprintf(w, "aux:       %s\n", orNone(strings.Join(s.Aux, ", ")))
	fmt.Fprintf(w, "ancestors: %s\n", orNone(strings.Join(s.Ancestors, " -> ")))
	fmt.Fprintln(w, "fields:")

	for _, f := range s.Fields {
		source := "wrapped object"
		if f.DefinedBy != "" {
			source = "entity " + f.DefinedBy
		}

		fmt.Fprintf(w, "  %-20s %s\n", f.Name, source)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}

	return s
}

// lintEntity lints every file in paths, in order, and keeps what relates to
// the named entity.
func lintEntity(paths []string, name string) (*diagnostic.Diagnostics, error) {
	linter := decl.NewLinter(builtinFuncs())
	out := &diagnostic.Diagnostics{}

	for _, path := range paths {
		f, err := decl.LoadFile(path)
		if err != nil {
			return nil, err
		}

		out.Merge(*linter.Lint(f).ForEntity(name))
	}

	return out, nil
}
