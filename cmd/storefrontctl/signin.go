package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

const maxCodeAttempts = 3

// stderrNotifier prints controller notifications for the user.
type stderrNotifier struct {
	w io.Writer
}

func (n stderrNotifier) Notify(note shopsdk.Notification) {
	prefix := "error"
	if note.Kind == shopsdk.NotifyInfo {
		prefix = "info"
	}
	_, _ = fmt.Fprintf(n.w, "%s: %s\n", prefix, note.Message)
}

type signInFlags struct {
	email    string
	password string
	code     string
}

func newSignInCmd(rt *runtime) *cobra.Command {
	f := &signInFlags{}

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. When the account has two-factor
authentication enabled you are asked for a code from your authenticator app
or one of your backup codes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSignIn(cmd, rt, f)
		},
	}

	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&f.code, "code", "", "two-factor code for the first attempt")

	return cmd
}

func runSignIn(cmd *cobra.Command, rt *runtime, f *signInFlags) error {
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	email, password := f.email, f.password
	var err error
	if email == "" {
		if email, err = p.line("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = p.secret("Password: "); err != nil {
			return err
		}
	}

	provider := shopsdk.NewMemorySessionProvider()
	ctrl := shopsdk.NewController(rt.client,
		shopsdk.WithSessionStore(rt.session),
		shopsdk.WithSessionProvider(provider),
		shopsdk.WithNotifier(stderrNotifier{w: cmd.ErrOrStderr()}),
		shopsdk.WithTimeout(rt.cfg.Timeout),
		shopsdk.WithTransitionHook(func(from, to shopsdk.State) {
			rt.logger.Debug("sign-in state", "from", from, "to", to)
		}),
	)

	ctx := cmd.Context()
	if err := ctrl.SubmitCredentials(ctx, email, password); err != nil {
		return errors.Join(errReported, err)
	}

	code := f.code
	for attempt := 0; ctrl.ChallengeOpen(); attempt++ {
		if attempt == maxCodeAttempts {
			_ = ctrl.Dismiss()
			return errors.New("too many invalid codes")
		}
		if code == "" {
			if code, err = p.line("Two-factor code: "); err != nil {
				_ = ctrl.Dismiss()
				return err
			}
			if code == "" {
				_ = ctrl.Dismiss()
				return errors.New("sign-in cancelled")
			}
		}

		err := ctrl.SubmitToken(ctx, code)
		code = ""
		var authErr *shopsdk.AuthError
		switch {
		case err == nil:
		case errors.As(err, &authErr):
			continue
		default:
			_ = ctrl.Dismiss()
			return errors.Join(errReported, err)
		}
	}

	sess, _ := provider.Get()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", sess.Name, sess.Email)
	return nil
}

func newSignOutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.session.ClearSession(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoAmICmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth, err := rt.authClient()
			if err != nil {
				return err
			}
			ctx, cancel := rt.context(cmd.Context())
			defer cancel()

			me, err := auth.Me(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), me)
		},
	}
}
