package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storybook-client/internal/client"
	"storybook-client/internal/config"
	"storybook-client/internal/models"
	"storybook-client/internal/session"
	"storybook-client/internal/story"
	"storybook-client/internal/token"
)

// app wires the client stack together once per invocation. The token
// store is shared between the API client and the session store so a 401
// anywhere invalidates the session globally.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *client.Client
	session *session.Store
	stories *story.Service
}

var current *app

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "storybook",
		Short:         "Create and read personalized AI storybooks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(envFile)
			if err != nil {
				return err
			}
			current = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if current != nil {
				_ = current.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")

	root.AddCommand(
		registerCmd(), loginCmd(), verifyEmailCmd(), logoutCmd(), whoamiCmd(),
		refreshCmd(), authURLCmd(), profileCmd(), statsCmd(), subscriptionCmd(),
		optionsCmd(), createCmd(), listCmd(), showCmd(), readCmd(), watchCmd(),
		updateCmd(), deleteCmd(), downloadCmd(), pdfCmd(), healthCmd(),
	)
	return root
}

func buildApp(envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.BuildLogger()
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewFileStore(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	api, err := client.New(cfg.APIBaseURL, cfg.RequestTimeout, tokens, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  api,
		session: session.NewStore(api, tokens, logger),
		stories: story.NewService(api, logger),
	}, nil
}

// requireAuth bootstraps the session and rejects protected commands when
// no authenticated user is present. This is the CLI's stand-in for the
// web app's route guard.
func (a *app) requireAuth(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("%w - run 'storybook login' first", models.ErrNotAuthenticated)
	}
	return nil
}
