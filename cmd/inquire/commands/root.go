// Package commands implements the inquire CLI.
package commands

import (
	"context"
	"io"

	"reliableteam-site/config"
	"reliableteam-site/internal/client/api"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/site"
	"reliableteam-site/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Backend is the inquiry API as seen by the commands.
type Backend interface {
	tui.InquiryAPI
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error)
}

// BackendFactory builds a Backend for a base URL and optional staff token.
type BackendFactory func(baseURL, token string) Backend

// UIRunner runs a bubbletea model until it quits.
type UIRunner func(ctx context.Context, m tea.Model) error

// CLI represents the command line interface for inquire.
type CLI struct {
	cfg        *config.ClientConfig
	newBackend BackendFactory
	runUI      UIRunner
	rootCmd    *cobra.Command

	apiURL string
	token  string
}

// Option customizes the CLI for tests.
type Option func(*CLI)

func WithBackendFactory(f BackendFactory) Option {
	return func(c *CLI) { c.newBackend = f }
}

func WithUIRunner(r UIRunner) Option {
	return func(c *CLI) { c.runUI = r }
}

func New(cfg *config.ClientConfig, opts ...Option) *CLI {
	c := &CLI{
		cfg: cfg,
		newBackend: func(baseURL, token string) Backend {
			return api.New(baseURL, api.WithToken(token))
		},
		runUI: func(ctx context.Context, m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd := &cobra.Command{
		Use:           "inquire",
		Short:         "Browse the ReliableTeam.ai page and send an inquiry from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := site.Load()
			if err != nil {
				return err
			}
			app := tui.NewApp(content, c.backend(), tui.WithListTimeout(c.cfg.RequestTimeout))
			return c.runUI(cmd.Context(), app)
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api", cfg.APIBaseURL, "Base URL of the site API")
	rootCmd.PersistentFlags().StringVar(&c.token, "token", cfg.AdminToken, "Staff bearer token for list and status commands")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newSubmitCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newTokenCmd())

	return c
}

func (c *CLI) backend() Backend {
	return c.newBackend(c.apiURL, c.token)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
