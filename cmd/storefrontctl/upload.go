package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newUploadCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := rt.authClient()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := rt.context(cmd.Context())
			defer cancel()

			res, err := auth.Upload(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}
}
