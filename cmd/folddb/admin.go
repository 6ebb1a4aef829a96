package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCollectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collections [pattern]",
		Short: "List collections, optionally filtered by a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) > 0 {
				pattern = args[0]
			}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			names, err := db.Collections(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [collection]",
		Short: "Delete every document of a collection, or every collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				db, err := a.open(cmd.Context())
				if err != nil {
					return err
				}
				return db.Clear(cmd.Context())
			}
			col, err := a.collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return col.Clear(cmd.Context())
		},
	}
}

func newDropCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop [collection]",
		Short: "Remove a collection, or the whole database",
		Long: `Drop removes the directory of a collection, or the database root
if no collection is given. Directories that still hold entries are only
removed with --recursive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return db.Destroy(cmd.Context())
			}
			return db.RemoveCollection(cmd.Context(), args[0])
		},
	}
}
