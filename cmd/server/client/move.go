package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

var moveCmd = &cobra.Command{
	Use:   "move <combatant-id> <target-id>",
	Short: "Move a combatant to the target's place in the order",
	Long: `Drag the first combatant onto the second. Every combatant's position is
rewritten to match the new order.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(_ *cobra.Command, args []string) error {
	if err := call(http.MethodPost, "/drag", map[string]string{"combatant_id": args[0]}, nil); err != nil {
		return fmt.Errorf("failed to pick up combatant: %w", err)
	}

	var resp struct {
		Moved    bool                 `json:"moved"`
		Snapshot *initiative.Snapshot `json:"snapshot"`
	}
	if err := call(http.MethodPost, "/drop", map[string]string{"target_id": args[1]}, &resp); err != nil {
		return fmt.Errorf("failed to drop combatant: %w", err)
	}

	if !resp.Moved {
		fmt.Printf("Order unchanged\n\n")
	}
	if resp.Snapshot != nil {
		printSnapshot(resp.Snapshot)
	}
	return nil
}
