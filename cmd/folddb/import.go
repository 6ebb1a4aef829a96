package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/folddb"
	"gopkg.in/yaml.v3"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create a database from a JSON or YAML file",
		Long: `Import reads a mapping of collection names to records and writes
every record as a new document. Record keys are discarded and new ids are
generated. Files ending in .json are read as JSON, anything else as YAML. Use
"-" to read from the standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readImport(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			_, err = folddb.Import(cmd.Context(), data, a.root,
				folddb.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			total := 0
			for _, records := range data {
				total += len(records)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents into %d collections\n", total, len(data))
			return nil
		},
	}
}

func readImport(stdin io.Reader, path string) (map[string]map[string]any, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var data map[string]map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &data)
	} else {
		err = yaml.Unmarshal(b, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid import file %s: %w", path, err)
	}
	return data, nil
}
