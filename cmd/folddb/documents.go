package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/folddb"
)

func newInsertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insert [collection] [value]",
		Short: "Store a new document and print its id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			item, err := col.Insert(cmd.Context(), value)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [collection] [id]",
		Short: "Print a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := col.Select(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc)
		},
	}
}

func newDelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "del [collection] [id]",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return col.Del(cmd.Context(), args[1])
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var override bool
	cmd := &cobra.Command{
		Use:   "update [collection] [id] [value]",
		Short: "Merge a value onto a document",
		Long: `Update merges the top-level fields of value onto the stored
document. With --override the value replaces the document data.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseValue(args[2])
			if err != nil {
				return err
			}
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := col.Update(cmd.Context(), args[1], value, folddb.WithOverride(override))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&override, "override", false, "Replace the data instead of merging")
	return cmd
}
