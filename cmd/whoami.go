// ABOUTME: Whoami command for the trackdemic CLI
// ABOUTME: Verifies the stored session and prints the signed-in user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Verify the stored session against the backend and print the signed-in user's identity and role.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami verifies the session and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, sess, _ := buildSession(loadConfig())
	snap := sess.Bootstrap(ctx)

	if !snap.IsAuthenticated || snap.User == nil {
		fmt.Fprintln(w, "Not signed in. Run: trackdemic login")
		return 1
	}

	user := snap.User
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, `Username: %s
Name:     %s
Email:    %s
Role:     %s
`, user.Username, user.DisplayName(), user.Email, user.EffectiveRole())
	return 0
}
