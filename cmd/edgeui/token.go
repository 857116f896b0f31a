package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/edgeui/internal/model"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the session token",
	Long: `Read, store or remove the session token.

The token is kept in the configured session backend (memory, file or redis)
and is shared by every edgeui process using the same backend.`,
}

var tokenGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored session token",
	Long: `Print the stored session token to stdout.

Exits with status 1 and an info notification when no token is stored.`,
	Args: cobra.NoArgs,
	RunE: guarded(runTokenGet),
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  guarded(runTokenSet),
}

var tokenRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "logout"},
	Short:   "Remove the session token",
	Args:    cobra.NoArgs,
	RunE:    guarded(runTokenRemove),
}

func init() {
	tokenCmd.AddCommand(tokenGetCmd, tokenSetCmd, tokenRemoveCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenGet(cmd *cobra.Command, args []string) error {
	token, ok, err := coord.Token(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		if err := notify(model.TypeInfo, "session.no_token"); err != nil {
			return err
		}
		_ = coord.Close()
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	if args[0] == "" {
		return fmt.Errorf("token must not be empty")
	}
	if err := coord.SetToken(cmd.Context(), args[0]); err != nil {
		return err
	}
	return notify(model.TypeSuccess, "session.token_set")
}

func runTokenRemove(cmd *cobra.Command, args []string) error {
	if err := coord.RemoveToken(cmd.Context()); err != nil {
		return err
	}
	return notify(model.TypeSuccess, "session.token_removed")
}
