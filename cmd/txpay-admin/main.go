// Command txpay-admin is the terminal companion of the admin console: it
// lists dashboard tabs, runs transaction actions and exports, and offers an
// interactive browse shell driven by the same view state as the web UI. It
// also migrates the audit trail schema.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/txpay/txpay-admin/config"
	"github.com/txpay/txpay-admin/internal/bootstrap"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/filterinput"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/txpay"
)

var version = "dev"

const tokenEnv = "TXPAY_API_TOKEN"

// app carries configuration and the API factories shared by every command.
type app struct {
	cfg    config.AppConfig
	logger *slog.Logger

	token  string
	output string
	query  string

	// newAPI and publicAPI are replaced in tests.
	newAPI    func(token string) (ports.TXPayAPI, error)
	publicAPI func() (publicAPI, error)
	openDB    func(ctx context.Context) (*sql.DB, error) // nil connects with the DB_* settings
	clock     filterinput.Clock
}

// publicAPI is the unauthenticated part of the API.
type publicAPI interface {
	Login(ctx context.Context, email, password string) (model.LoginResponse, error)
	Health(ctx context.Context) (model.Health, error)
}

func newApp(cfg config.AppConfig, logger *slog.Logger) *app {
	a := &app{cfg: cfg, logger: logger, clock: filterinput.RealClock{}}
	var client *txpay.Client
	base := func() (*txpay.Client, error) {
		if client != nil {
			return client, nil
		}
		c, err := txpay.New(txpay.Options{
			BaseURL:   cfg.API.BaseURL,
			Timeout:   cfg.API.Timeout,
			UserAgent: cfg.API.UserAgent + "-cli",
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		client = c
		return c, nil
	}
	a.newAPI = func(token string) (ports.TXPayAPI, error) {
		c, err := base()
		if err != nil {
			return nil, err
		}
		return c.WithToken(token), nil
	}
	a.publicAPI = func() (publicAPI, error) {
		c, err := base()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return a
}

// api returns a client bound to the caller's token.
//
//nolint:ireturn // commands only need the port.
func (a *app) api() (ports.TXPayAPI, error) {
	token := strings.TrimSpace(a.token)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(tokenEnv))
	}
	if token == "" {
		return nil, fmt.Errorf("no API token: set %s, pass --token, or run %q", tokenEnv, "txpay-admin login")
	}
	return a.newAPI(token)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "txpay-admin",
		Short:         "TX Pay admin console from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.token, "token", "", "API access token (default $"+tokenEnv+")")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table or json")
	root.PersistentFlags().StringVarP(&a.query, "query", "q", "", "JMESPath expression applied to the JSON output")

	root.AddCommand(newListCmd(a))
	for _, action := range []model.TransactionAction{model.ActionCapture, model.ActionVoid, model.ActionRefund} {
		root.AddCommand(newActionCmd(a, action))
	}
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newHealthCmd(a))
	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newMigrateCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr so stdout stays machine readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	if err := newRootCmd(newApp(cfg, logger)).ExecuteContext(ctx); err != nil {
		writeError(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func writeError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		err = errors.New("interrupted")
	}
	_, _ = fmt.Fprintln(w, "error:", err)
}

// commandTimeout bounds one-shot commands; browse has no overall deadline.
func (a *app) commandTimeout() time.Duration {
	if a.cfg.API.Timeout > 0 {
		return 2 * a.cfg.API.Timeout
	}
	return 30 * time.Second
}
