package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

type profileFlags struct {
	name        string
	email       string
	newPassword bool
}

func newProfileCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	f := &profileFlags{}
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name, email or password",
		Long: `Change the name, email or password of the signed-in account. The stored
session is replaced with the one the server returns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfileUpdate(cmd, rt, f)
		},
	}
	update.Flags().StringVar(&f.name, "name", "", "new display name")
	update.Flags().StringVar(&f.email, "email", "", "new email")
	update.Flags().BoolVar(&f.newPassword, "password", false, "prompt for a new password")

	cmd.AddCommand(update)
	return cmd
}

func runProfileUpdate(cmd *cobra.Command, rt *runtime, f *profileFlags) error {
	req := shopsdk.ProfileUpdateRequest{Name: f.name, Email: f.email}

	if f.newPassword {
		p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		var err error
		if req.Password, err = p.secret("New password: "); err != nil {
			return err
		}
		if req.ConfirmPassword, err = p.secret("Confirm password: "); err != nil {
			return err
		}
	}
	if req.Name == "" && req.Email == "" && req.Password == "" {
		return errors.New("nothing to update; pass --name, --email or --password")
	}

	auth, err := rt.authClient()
	if err != nil {
		return err
	}
	ctx, cancel := rt.context(cmd.Context())
	defer cancel()

	res, err := auth.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	if err := saveSession(rt, res.Session); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

// saveSession replaces the stored session and two-factor preference.
func saveSession(rt *runtime, s shopsdk.Session) error {
	if err := rt.session.SaveSession(s); err != nil {
		return err
	}
	return rt.session.SaveTwoFactorPreference(s.TwoFactorEnabled)
}
