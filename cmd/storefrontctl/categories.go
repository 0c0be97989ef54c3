package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and manage product categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				cats, err := rt.client.ListCategories(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "ID\tNAME\tSLUG")
				for _, c := range cats {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Slug)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				cat, err := rt.client.GetCategory(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), cat)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a category (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				res, err := auth.CreateCategory(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "update <id> <name>",
			Short: "Rename a category (admin)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				res, err := auth.UpdateCategory(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				res, err := auth.DeleteCategory(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			},
		},
	)

	return cmd
}
