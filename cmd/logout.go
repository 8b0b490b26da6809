// ABOUTME: Logout command for the trackdemic CLI
// ABOUTME: Revokes the refresh token and clears stored credentials

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	Long:  `Revoke the stored refresh token with the backend and remove all locally cached credentials. Succeeds even when the backend is unreachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		runLogout(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session. Local cleanup always happens, so there is
// no failure exit code.
func runLogout(ctx context.Context, w io.Writer) {
	_, sess, _ := buildSession(loadConfig())
	sess.Logout(ctx)
	fmt.Fprintln(w, "Signed out.")
}
