package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dealdeck",
		Short: "Hotel deals API with URL-synchronized live views",
		Long: `DealDeck serves a hotel-deals catalog over a JSON API and a live
WebSocket channel. Every filter a client applies lives in the URL query
string, so any view can be shared, reloaded, or driven by the browser's
back button.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		seedCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
