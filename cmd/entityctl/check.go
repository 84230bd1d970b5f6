package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"entity-projector/internal/analyze"
	"entity-projector/internal/decl"
	"entity-projector/internal/diagnostic"
)

var (
	checkPackage string
	checkType    string
	checkEntity  string
	checkDir     string
	checkInfos   bool
)

// checkCmd lints declaration files.
var checkCmd = &cobra.Command{
	Use:   "check [FILE...]",
	Short: "Report problems in entity declaration files",
	Long: `Lint every declaration file and report all problems found, with
suggestions for misspelled names.

Proxy check:
  --package ./store --type Order --entity OrderView
    Also report which fields of OrderView the Go type store.Order can supply,
    and which it cannot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := declarations(args)
		if err != nil {
			return err
		}

		return runCheck(cmd.Context(), cmd.OutOrStdout(), paths)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkPackage, "package", "", "Go package pattern holding the wrapped type")
	checkCmd.Flags().StringVar(&checkType, "type", "", "name of the wrapped Go type")
	checkCmd.Flags().StringVar(&checkEntity, "entity", "", "entity to check against the Go type")
	checkCmd.Flags().StringVar(&checkDir, "dir", "", "directory --package is resolved from (default: working directory)")
	checkCmd.Flags().BoolVar(&checkInfos, "infos", false, "also print informational diagnostics")
	checkCmd.MarkFlagsRequiredTogether("package", "type", "entity")
}

func runCheck(ctx context.Context, w io.Writer, paths []string) error {
	total := &diagnostic.Diagnostics{}
	linter := decl.NewLinter(builtinFuncs())

	for _, path := range paths {
		f, err := decl.LoadFile(path)
		if err != nil {
			return err
		}

		res := linter.Lint(f)
		printDiagnostics(w, path, res)
		total.Merge(*res)

		log.Debug().Str("file", path).Int("errors", len(res.Errors)).Int("warnings", len(res.Warnings)).Msg("linted declarations")
	}

	if total.IsValid() && checkEntity != "" {
		res, err := checkProxy(ctx, paths)
		if err != nil {
			return err
		}

		printDiagnostics(w, checkPackage+"."+checkType, res)
		total.Merge(*res)
	}

	fmt.Fprintln(w, total.Summary())

	if total.HasErrors() {
		return fmt.Errorf("check failed with %d error(s)", len(total.Errors))
	}

	return nil
}

func checkProxy(ctx context.Context, paths []string) (*diagnostic.Diagnostics, error) {
	reg, err := loadRegistry(paths, log)
	if err != nil {
		return nil, err
	}

	t, err := reg.Get(checkEntity)
	if err != nil {
		return nil, err
	}

	graph, err := analyze.NewAnalyzer(analyze.WithDir(checkDir)).LoadPackages(ctx, checkPackage)
	if err != nil {
		return nil, err
	}

	info, err := graph.Find(checkType)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("entity", t.Name()).Stringer("type", info.ID).Msg("checking proxy")

	return analyze.CheckProxy(t, info), nil
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	infoLabel    = color.New(color.FgCyan).SprintFunc()
	fileLabel    = color.New(color.Bold).SprintFunc()
)

func printDiagnostics(w io.Writer, source string, res *diagnostic.Diagnostics) {
	for _, d := range res.All() {
		var label string

		switch d.Severity {
		case diagnostic.DiagnosticError:
			label = errorLabel(d.Severity)
		case diagnostic.DiagnosticWarning:
			label = warningLabel(d.Severity)
		default:
			if !checkInfos {
				continue
			}

			label = infoLabel(d.Severity)
		}

		fmt.Fprintf(w, "%s: %s: %s\n", fileLabel(source), label, d)
	}
}
