// server is the authoritative backend for the slithermatch arena game.
//
// Usage:
//
//	server serve             - Run the game server
//	server schema --out ...  - Write the wire protocol JSON schema
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "slithermatch game server",
	Long: `Authoritative backend for the slithermatch arena game.

It owns all gameplay truth: rooms, snakes, food, collisions, scoring and
room lifecycle. Clients connect over a websocket and exchange typed
events; see the schema command for the wire contract.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML settings file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
