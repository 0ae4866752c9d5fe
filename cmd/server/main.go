// Package main is the entry point for the initiative tracker server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-initiative",
	Short: "Combat initiative tracker",
	Long: `rpg-initiative tracks turn order, rounds, hit points and status effects
for a tabletop encounter. It serves an HTTP/websocket API backed by Redis and
a SQLite campaign database.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
