package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

const defaultExportName = "transactions.xlsx"

func newActionCmd(a *app, action model.TransactionAction) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <transaction-id>",
		Short: "Run " + string(action) + " on a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return errors.New("transaction id is required")
			}
			api, err := a.api()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.commandTimeout())
			defer cancel()
			tx, err := api.PerformTransactionAction(ctx, id, action)
			if err != nil {
				return fmt.Errorf("%s %s: %w", action, id, err)
			}
			if a.output == "json" || a.query != "" {
				raw, err := toJSONValue(tx)
				if err != nil {
					return err
				}
				if a.query != "" {
					return writeQuery(cmd.OutOrStdout(), a.query, raw)
				}
				return writeJSON(cmd.OutOrStdout(), raw)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tx.ID, tx.Status)
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		filters []string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the transaction spreadsheet for a filter set",
		Long: `Download the transaction spreadsheet for a filter set.

The file name comes from the API unless --out is given. Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := parseFilters(filters)
			if err != nil {
				return err
			}
			valid, err := viewstate.SchemaFor(viewstate.TabTransactions).Validate(fs)
			if err != nil {
				return err
			}
			api, err := a.api()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.commandTimeout())
			defer cancel()
			export, err := api.ExportTransactions(ctx, valid)
			if err != nil {
				return fmt.Errorf("export transactions: %w", err)
			}
			defer export.Body.Close()

			if out == "-" {
				_, err = io.Copy(cmd.OutOrStdout(), export.Body)
				return err
			}
			path := out
			if path == "" {
				path = export.Filename
			}
			if path == "" {
				path = defaultExportName
			}
			n, err := writeFile(path, export.Body)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, n)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable)")
	cmd.Flags().StringVar(&out, "out", "", "output file, or - for stdout")
	return cmd
}

// writeFile writes r to path, removing the partial file on failure.
func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the TX Pay API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.publicAPI()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.commandTimeout())
			defer cancel()
			h, err := api.Health(ctx)
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}
			if a.output == "json" {
				if err := writeJSON(cmd.OutOrStdout(), h); err != nil {
					return err
				}
			} else {
				version := h.Version
				if version == "" {
					version = "unknown"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (version %s)\n", h.Status, version); err != nil {
					return err
				}
			}
			if !strings.EqualFold(h.Status, "UP") {
				return fmt.Errorf("API status is %s", h.Status)
			}
			return nil
		},
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for an API token",
		Long: `Exchange credentials for an API token.

The password is read from the first line of stdin and the token is printed to stdout:

  export ` + tokenEnv + `=$(txpay-admin login --email ops@txpay.example < password.txt)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			password, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password is required on stdin")
			}
			api, err := a.publicAPI()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.commandTimeout())
			defer cancel()
			res, err := api.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			a.logger.InfoContext(ctx, "signed in", "email", res.User.Email, "role", res.User.Role)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.AccessToken)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}
