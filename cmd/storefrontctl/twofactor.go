package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTwoFactorCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "2fa",
		Short: "Manage two-factor authentication",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enroll",
			Short: "Start TOTP enrolment and print the secret",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				setup, err := auth.EnrollTwoFactor(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Secret:  %s\n", setup.Secret)
				_, _ = fmt.Fprintf(out, "URL:     %s\n", setup.OTPAuthURL)
				_, _ = fmt.Fprintln(out, "Add it to your authenticator app, then run `storefrontctl 2fa confirm <code>`.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "confirm <code>",
			Short: "Finish enrolment and print backup codes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				codes, err := auth.ConfirmTwoFactor(ctx, args[0])
				if err != nil {
					return err
				}
				if err := rt.session.SaveTwoFactorPreference(true); err != nil {
					return err
				}
				return printBackupCodes(cmd, codes)
			},
		},
		&cobra.Command{
			Use:   "backup-codes <code>",
			Short: "Replace your backup codes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				codes, err := auth.RegenerateBackupCodes(ctx, args[0])
				if err != nil {
					return err
				}
				return printBackupCodes(cmd, codes)
			},
		},
		&cobra.Command{
			Use:   "disable <code>",
			Short: "Turn two-factor authentication off",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				auth, err := rt.authClient()
				if err != nil {
					return err
				}
				ctx, cancel := rt.context(cmd.Context())
				defer cancel()

				if err := auth.DisableTwoFactor(ctx, args[0]); err != nil {
					return err
				}
				if err := rt.session.SaveTwoFactorPreference(false); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Two-factor authentication disabled")
				return nil
			},
		},
	)

	return cmd
}

func printBackupCodes(cmd *cobra.Command, codes []string) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Backup codes (each works once, store them somewhere safe):")
	for _, c := range codes {
		_, _ = fmt.Fprintf(out, "  %s\n", c)
	}
	return nil
}
