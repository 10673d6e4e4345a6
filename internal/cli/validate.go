package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/joi/pkg/i18n"
	"github.com/dmitrymomot/joi/pkg/schema"
)

func newValidateCmd() *cobra.Command {
	var (
		schemasPath string
		schemaName  string
		recordPath  string
		lang        string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a record against a schema",
		Long: `Validate one record (a JSON or YAML object) against a named schema.

Fields are checked in declaration order and the first failure is reported.
Use "-" as the record path to read JSON from stdin.

Examples:
  joi validate --schemas schemas.yaml --schema user --record user.json
  echo '{"id": 1, "name": "Leo", "age": 20}' | joi validate --schemas schemas.yaml --schema user --record -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := schema.LoadFile(schemasPath)
			if err != nil {
				return schemaExit(err)
			}

			values, err := readRecord(cmd.InOrStdin(), recordPath)
			if err != nil {
				return err
			}

			res, err := registry.Validate(schemaName, values)
			if err != nil {
				return err
			}

			catalog, err := i18n.Default()
			if err != nil {
				return err
			}
			return printVerdict(cmd.OutOrStdout(), res, catalog.Translate(lang, res))
		},
	}

	cmd.Flags().StringVarP(&schemasPath, "schemas", "f", "schemas.yaml", "Schema document (YAML or JSON)")
	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name")
	cmd.Flags().StringVarP(&recordPath, "record", "r", "-", "Record file (JSON or YAML), - for stdin")
	cmd.Flags().StringVar(&lang, "lang", i18n.DefaultLanguage, "Message language")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// readRecord decodes a single object. YAML is used for .yaml/.yml files,
// JSON otherwise.
func readRecord(stdin io.Reader, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var values map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&values)
	}
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if values == nil {
		return nil, errors.New("decode record: expected an object")
	}
	return values, nil
}
