package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/folddb"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type app struct {
	root      string
	verbose   bool
	recursive bool
	logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:   "folddb",
		Short: "Manage file-per-document databases",
		Long: `folddb stores every document as a JSON file named after its id,
inside a directory per collection. This tool reads and changes those files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.root, "root", "r", ".", "Database root directory")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&a.recursive, "recursive", false, "Allow removing directories that are not empty")

	cmd.AddCommand(
		newImportCmd(a),
		newInsertCmd(a),
		newGetCmd(a),
		newDelCmd(a),
		newUpdateCmd(a),
		newFindCmd(a),
		newRmCmd(a),
		newCollectionsCmd(a),
		newClearCmd(a),
		newDropCmd(a),
	)
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func (a *app) open(ctx context.Context) (*folddb.Database, error) {
	return folddb.Open(ctx, a.root,
		folddb.WithLogger(a.logger),
		folddb.WithRecursiveRemoval(a.recursive),
	)
}

func (a *app) collection(ctx context.Context, name string) (*folddb.Collection[map[string]any], error) {
	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	return folddb.Collect[map[string]any](ctx, db, name, nil)
}

// parseValue reads an inline document. JSON and YAML are both accepted.
func parseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
