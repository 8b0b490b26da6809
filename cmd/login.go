// ABOUTME: Login command for the trackdemic CLI
// ABOUTME: Authenticates against the backend and persists the session locally

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/session"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store credentials",
	Long: `Authenticate against the Trackdemic backend and store the session
tokens locally so later commands and the UI start signed in.

The password can also be supplied via TRACKDEMIC_PASSWORD.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	password := loginPassword
	if password == "" {
		password = os.Getenv("TRACKDEMIC_PASSWORD")
	}
	if loginUsername == "" || password == "" {
		fmt.Fprintln(w, "Error: --username and --password (or TRACKDEMIC_PASSWORD) are required")
		return 2
	}

	_, sess, _ := buildSession(loadConfig())
	user, err := sess.Login(ctx, client.LoginInput{Username: loginUsername, Password: password})
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", loginErrorMessage(err))
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", user.DisplayName(), user.EffectiveRole())
	}
	return 0
}

func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	var vErr *session.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return err.Error()
}
