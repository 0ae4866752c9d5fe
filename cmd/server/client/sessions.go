package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

var campaignID string

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a tracker session",
	Long:  `Open a new tracker session, optionally bound to a campaign, and print its ID.`,
	Args:  cobra.NoArgs,
	RunE:  runOpen,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the session's turn order",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(http.MethodGet, "", nil)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reload combatants and statuses from storage",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(http.MethodPost, "/load", nil)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the session and stop its clock",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := call(http.MethodDelete, "", nil, nil); err != nil {
			return fmt.Errorf("failed to close session: %w", err)
		}
		fmt.Printf("Closed session %s\n", sessionID)
		return nil
	},
}

var campaignCmd = &cobra.Command{
	Use:   "campaign <campaign-id>",
	Short: "Switch the session to another campaign",
	Long:  `Switch campaigns. Combat state and the loaded catalog are reset and the new campaign's combatants are loaded.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return callAndPrint(http.MethodPut, "/campaign", map[string]string{"campaign_id": args[0]})
	},
}

func init() {
	openCmd.Flags().StringVar(&campaignID, "campaign", "", "campaign to bind the session to")
}

func runOpen(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var snap initiative.Snapshot
	err := newAPIClient().do(ctx, http.MethodPost, "/v1/sessions", map[string]string{"campaign_id": campaignID}, &snap)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	fmt.Printf("Opened session %s\n", snap.SessionID)
	fmt.Printf("Use --session %s with other client commands\n", snap.SessionID)
	return nil
}
