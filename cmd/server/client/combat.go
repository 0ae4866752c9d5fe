package client

import (
	"net/http"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start combat at the top of the order",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(http.MethodPost, "/combat/start", nil)
	},
}

var nextCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"advance"},
	Short:   "Advance to the next turn",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(http.MethodPost, "/combat/advance", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "End combat and clear the turn, round and clock",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(http.MethodPost, "/combat/reset", nil)
	},
}
