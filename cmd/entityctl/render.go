package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"entity-projector/entity"
	"entity-projector/internal/config"
)

var (
	renderEntity string
	renderAux    []string
)

// renderCmd projects documents through an entity.
var renderCmd = &cobra.Command{
	Use:   "render --entity NAME [--aux slot=FILE]... DOC...",
	Short: "Render YAML or JSON documents through an entity",
	Long: `Decode each document, wrap it in the named entity and print the
entity's fields in declared order. Aux objects are decoded from files the
same way. Documents are rendered concurrently, bounded by --workers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := declarations(nil)
		if err != nil {
			return err
		}

		reg, err := loadRegistry(paths, log)
		if err != nil {
			return err
		}

		t, err := reg.Get(renderEntity)
		if err != nil {
			return err
		}

		aux, err := parseAux(renderAux)
		if err != nil {
			return err
		}

		out, err := renderAll(cmd.Context(), t, aux, args, cfg.Workers)
		if err != nil {
			return err
		}

		return writeMappings(cmd.OutOrStdout(), out, cfg.Format, cfg.Indent)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderEntity, "entity", "e", "", "entity to render through")
	renderCmd.Flags().StringArrayVar(&renderAux, "aux", nil, "aux object as slot=FILE, repeatable")
	renderCmd.Flags().String("format", "", "output format: json or yaml")
	renderCmd.Flags().Int("indent", 2, "indentation width")
	_ = renderCmd.MarkFlagRequired("entity")

	_ = viper.BindPFlag(config.KeyFormat, renderCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag(config.KeyIndent, renderCmd.Flags().Lookup("indent"))
}

// readDocument decodes a YAML or JSON file into a generic value.
func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

// parseAux reads every slot=FILE pair into an aux map.
func parseAux(pairs []string) (map[string]any, error) {
	aux := make(map[string]any, len(pairs))

	for _, p := range pairs {
		slot, path, ok := strings.Cut(p, "=")
		if !ok || slot == "" || path == "" {
			return nil, fmt.Errorf("invalid --aux %q: want slot=FILE", p)
		}

		if _, dup := aux[slot]; dup {
			return nil, fmt.Errorf("aux slot %q given more than once", slot)
		}

		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}

		aux[slot] = doc
	}

	return aux, nil
}

// renderAll materializes one entity per document. Results keep the order of
// paths; the first failure cancels the remaining documents.
func renderAll(ctx context.Context, t *entity.Type, aux map[string]any, paths []string, workers int) ([]*entity.Mapping, error) {
	out := make([]*entity.Mapping, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := readDocument(path)
			if err != nil {
				return err
			}

			e, err := t.New(doc, aux)
			if err != nil {
				return err
			}

			m, err := e.ToMapping()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			log.Debug().Str("document", path).Int("fields", m.Len()).Msg("rendered")
			out[i] = m

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func writeMappings(w io.Writer, ms []*entity.Mapping, format string, indent int) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(max(indent, 2))

		for _, m := range ms {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}

		return enc.Close()

	case config.FormatJSON:
		for _, m := range ms {
			data, err := json.Marshal(m)
			if err != nil {
				return err
			}

			if indent > 0 {
				var buf bytes.Buffer
				if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
					return err
				}

				data = buf.Bytes()
			}

			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}
