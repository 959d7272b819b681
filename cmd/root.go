package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"easy2go/internal/api"
	"easy2go/internal/config"
	"easy2go/internal/logger"
	"easy2go/internal/reconcile"
	"easy2go/internal/session"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "easy2go",
	Short: "Easy2Go - reconcile document client",
	Long: `Easy2Go is a command-line client for the reconcile backend.

It covers the full document workflow: login, listing, creating, viewing
and editing reconcile documents (commercial invoice / packing list
records), admin lock management, and image attachments.

Configuration comes from the environment (optionally via a .env file):
  API_BASE      backend base URL (default http://127.0.0.1:8000)
  STATIC_BASE   base URL for attachment images (default API_BASE/static)
  SESSION_FILE  login state location (default ~/.easy2go/session.json)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, logging and reporting any failure.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env bundles everything a command needs for one invocation. The session
// is read fresh every time so a login from another invocation is seen
// immediately.
type env struct {
	cfg   *config.Config
	store *session.Store
	sess  session.Session
	svc   *reconcile.Service
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	sess := session.Current(store)

	client, err := api.New(cfg.APIBase, sess, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		store: store,
		sess:  sess,
		svc:   reconcile.NewService(client),
	}, nil
}

// cmdContext returns the single cancellable context for one user action.
func (e *env) cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.cfg.HTTPTimeout)
}
