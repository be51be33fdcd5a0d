package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Google Calendar",
	Long: `Runs the Google OAuth flow and caches the token. An existing token
is removed first so re-running always produces a fresh grant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := auth.GetXdgHome()
		if err != nil {
			return fmt.Errorf("could not find path to configuration file: %w", err)
		}

		tokenFile := filepath.Join(base, auth.TokenFile)
		if _, err := os.Stat(tokenFile); err == nil {
			log.Printf("Removing existing token file at '%s'", tokenFile)
			if err := os.Remove(tokenFile); err != nil {
				return fmt.Errorf("could not delete token file '%s': %w. Please delete it manually", tokenFile, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("could not check token file '%s', error %v", tokenFile, err)
		}

		if _, err := auth.GetCalendarService(cmd.Context()); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
		return nil
	},
}
