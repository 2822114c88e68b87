package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gopix-cli",
		Short:         "gopix CLI tool",
		Long:          `A command line interface for interacting with the gopix API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the gopix API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(pixCmd())
	rootCmd.AddCommand(statementCmd())
	rootCmd.AddCommand(ledgerCmd())

	return rootCmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/v1/accounts", map[string]any{"name": name})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account holder name")
	_ = createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/v1/accounts/"+url.PathEscape(args[0]))
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/v1/accounts")
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/v1/accounts/"+url.PathEscape(args[0])+"/balance")
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, balanceCmd)
	return cmd
}

func depositCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/v1/accounts/"+url.PathEscape(args[0])+"/deposit", map[string]any{
				"amount":      args[1],
				"description": description,
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Statement description")
	return cmd
}

func payCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "pay <from-account-id> <to-account-id> <amount>",
		Short: "Transfer funds between accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/v1/transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          args[2],
				"description":     description,
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Statement description")
	return cmd
}

func pixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pix",
		Short: "Pix key operations",
	}

	var description string
	payCmd := &cobra.Command{
		Use:   "pay <from-account-id> <alias> <amount>",
		Short: "Transfer funds to a pix alias",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/v1/transfers/pix", map[string]any{
				"from_account_id": args[0],
				"alias":           args[1],
				"amount":          args[2],
				"description":     description,
			})
		},
	}
	payCmd.Flags().StringVar(&description, "description", "", "Statement description")

	registerCmd := &cobra.Command{
		Use:   "register <account-id> <alias>",
		Short: "Register a pix alias for an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON(cmd, "/api/v1/accounts/"+url.PathEscape(args[0])+"/pix-keys", map[string]any{
				"alias": args[1],
			})
		},
	}

	revokeCmd := &cobra.Command{
		Use:   "revoke <account-id> <alias>",
		Short: "Revoke a pix alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/" + url.PathEscape(args[0]) + "/pix-keys/" + url.PathEscape(args[1])
			return doRequest(cmd, http.MethodDelete, path, nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <account-id>",
		Short: "List pix aliases for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/v1/accounts/"+url.PathEscape(args[0])+"/pix-keys")
		},
	}

	cmd.AddCommand(payCmd, registerCmd, revokeCmd, listCmd)
	return cmd
}

func statementCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "statement <account-id>",
		Short: "Show the statement for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/statement?limit=%d&offset=%d",
				url.PathEscape(args[0]), limit, offset)
			return getJSON(cmd, path)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that total debits do not exceed total credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/v1/ledger/consistency")
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func getJSON(cmd *cobra.Command, path string) error {
	return doRequest(cmd, http.MethodGet, path, nil)
}

func postJSON(cmd *cobra.Command, path string, body any) error {
	return doRequest(cmd, http.MethodPost, path, body)
}

func doRequest(cmd *cobra.Command, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(raw))
	}

	if len(raw) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "OK (status %d)\n", resp.StatusCode)
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}

	printJSON(cmd.OutOrStdout(), decoded)
	return nil
}

func printJSON(w io.Writer, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", v)
		return
	}
	fmt.Fprintln(w, string(out))
}
