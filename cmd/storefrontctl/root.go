package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errReported marks an error the user has already been shown.
var errReported = errors.New("reported")

// runtime is what every subcommand works with once flags and config are
// resolved.
type runtime struct {
	cfg     cliConfig
	logger  *slog.Logger
	client  *shopsdk.Client
	session *shopsdk.KVSessionStore
}

// authClient returns a client carrying the stored session token.
func (rt *runtime) authClient() (*shopsdk.AuthClient, error) {
	sess, err := rt.session.LoadSession()
	if errors.Is(err, shopsdk.ErrNoSession) {
		return nil, errors.New("not signed in; run `storefrontctl signin` first")
	}
	if err != nil {
		return nil, err
	}
	return rt.client.WithToken(sess.Token), nil
}

func (rt *runtime) context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, rt.cfg.Timeout)
}

// NewRootCmd creates the root command for the storefront CLI.
func NewRootCmd() *cobra.Command {
	var configFile string
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Storefront admin CLI",
		Long: `storefrontctl signs in to a storefront server and manages its
categories, uploads, profile and two-factor settings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			rt.client = shopsdk.NewClient(cfg.Server)
			rt.client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
			rt.session = shopsdk.NewKVSessionStore(shopsdk.NewFileStorage(cfg.Storage))

			rt.logger.Debug("configuration loaded",
				"server", cfg.Server,
				"storage", cfg.Storage,
				"timeout", cfg.Timeout,
			)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/storefront/config.yaml)")
	flags.String("server", "", "storefront server URL")
	flags.String("storage", "", "client state file")
	flags.Duration("timeout", 0, "request timeout")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSignInCmd(rt),
		newSignOutCmd(rt),
		newWhoAmICmd(rt),
		newCategoriesCmd(rt),
		newUploadCmd(rt),
		newProfileCmd(rt),
		newTwoFactorCmd(rt),
	)

	return cmd
}

// newLogger writes text logs to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return slogx.New(slogx.Config{
		Service: "storefrontctl",
		Version: version,
		Env:     "cli",
		Level:   level,
		Format:  "text",
		Output:  w,
	})
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
