package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/folddb"
)

type queryFlags struct {
	where  string
	count  int
	except bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.where, "where", "w", "", "Pattern documents must match, as JSON or YAML")
	cmd.Flags().IntVarP(&q.count, "count", "n", -1, "Maximum number of documents, negative for no limit")
	cmd.Flags().BoolVar(&q.except, "except", false, "Select documents that do not match the pattern")
}

func (q *queryFlags) options() ([]folddb.QueryOption, error) {
	opts := []folddb.QueryOption{
		folddb.WithCount(q.count),
		folddb.WithExcept(q.except),
	}
	if q.where != "" {
		item, err := parseValue(q.where)
		if err != nil {
			return nil, err
		}
		opts = append(opts, folddb.WithItem(item))
	}
	return opts, nil
}

func newFindCmd(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "find [collection]",
		Short: "Print the documents matching a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := q.options()
			if err != nil {
				return err
			}
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			docs, err := col.Find(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), docs)
		},
	}
	q.register(cmd)
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "rm [collection]",
		Short: "Delete the documents matching a pattern",
		Long: `Rm deletes the documents matching a pattern. When a pattern is
given, --count limits how many documents are checked, not how many are
deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := q.options()
			if err != nil {
				return err
			}
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			n, err := col.Remove(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d documents\n", n)
			return nil
		},
	}
	q.register(cmd)
	return cmd
}
