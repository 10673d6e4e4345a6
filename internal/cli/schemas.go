package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/joi/pkg/schema"
)

func newSchemasCmd() *cobra.Command {
	var (
		schemasPath string
		jsonSchema  bool
	)

	cmd := &cobra.Command{
		Use:   "schemas [name]",
		Short: "List schemas or print them as JSON Schema",
		Long: `List the schemas declared in a document with their fields.

With --json-schema the named schema (or every schema, keyed by name) is
printed as a JSON Schema document.

Examples:
  joi schemas --schemas schemas.yaml
  joi schemas user --schemas schemas.yaml --json-schema`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := schema.LoadFile(schemasPath)
			if err != nil {
				return schemaExit(err)
			}

			names := registry.Names()
			if len(args) == 1 {
				if _, ok := registry.Get(args[0]); !ok {
					return fmt.Errorf("%w: %s", schema.ErrSchemaNotFound, args[0])
				}
				names = args
			}

			w := cmd.OutOrStdout()
			if jsonSchema {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if len(args) == 1 {
					rec, _ := registry.Get(args[0])
					return enc.Encode(rec.JSONSchema())
				}
				out := make(map[string]any, len(names))
				for _, name := range names {
					rec, _ := registry.Get(name)
					out[name] = rec.JSONSchema()
				}
				return enc.Encode(out)
			}

			for _, name := range names {
				rec, _ := registry.Get(name)
				boldColor.Fprint(w, rec.Name())
				if rec.Description() != "" {
					fmt.Fprintf(w, " - %s", rec.Description())
				}
				fmt.Fprintln(w)
				for _, field := range rec.Fields() {
					fmt.Fprintf(w, "  %s\n", field)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemasPath, "schemas", "f", "schemas.yaml", "Schema document (YAML or JSON)")
	cmd.Flags().BoolVar(&jsonSchema, "json-schema", false, "Print JSON Schema")

	return cmd
}
