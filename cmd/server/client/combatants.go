package client

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

var (
	addName       string
	addInitiative int32
	addHP         int32
	addMaxHP      int32
	addAC         int32
	addNotes      string
	addType       string
	addCount      int

	removeConfirmed bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add combatants to the turn order",
	Long: `Add one combatant, or --count copies named "<name> 1".."<name> N".
New combatants go after everyone already in the campaign.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove <combatant-id>",
	Short: "Remove a combatant and its statuses",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if !removeConfirmed {
			return fmt.Errorf("refusing to remove %s without --yes", args[0])
		}
		return callAndPrint(http.MethodDelete, "/combatants/"+args[0]+"?confirm=true", nil)
	},
}

var hpCmd = &cobra.Command{
	Use:   "hp <combatant-id> <current-hp>",
	Short: "Set a combatant's current hit points",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		return callAndPrint(http.MethodPut, "/combatants/"+args[0]+"/hp", map[string]int32{"current_hp": v})
	},
}

var initiativeCmd = &cobra.Command{
	Use:   "initiative <combatant-id> <value>",
	Short: "Set a combatant's initiative and re-sort",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		return callAndPrint(http.MethodPut, "/combatants/"+args[0]+"/initiative", map[string]int32{"initiative_value": v})
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Combatant name (required)")
	addCmd.Flags().Int32Var(&addInitiative, "init", 0, "Initiative value")
	addCmd.Flags().Int32Var(&addHP, "hp", 0, "Current hit points (defaults to --max-hp)")
	addCmd.Flags().Int32Var(&addMaxHP, "max-hp", 1, "Maximum hit points")
	addCmd.Flags().Int32Var(&addAC, "ac", 10, "Armor class")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.Flags().StringVar(&addType, "type", string(entities.CharacterTypeNPC), "player or npc")
	addCmd.Flags().IntVar(&addCount, "count", 1, "Number of copies")
	_ = addCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	removeCmd.Flags().BoolVar(&removeConfirmed, "yes", false, "Confirm the removal")
}

func runAdd(_ *cobra.Command, _ []string) error {
	if addCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	hp := addHP
	if hp == 0 {
		hp = addMaxHP
	}

	drafts := make([]initiative.CombatantDraft, 0, addCount)
	for i := 1; i <= addCount; i++ {
		name := addName
		if addCount > 1 {
			name = fmt.Sprintf("%s %d", addName, i)
		}
		drafts = append(drafts, initiative.CombatantDraft{
			Name:            name,
			InitiativeValue: addInitiative,
			CurrentHP:       hp,
			MaxHP:           addMaxHP,
			ArmorClass:      addAC,
			Notes:           addNotes,
			CharacterType:   entities.CharacterType(addType),
		})
	}

	return callAndPrint(http.MethodPost, "/combatants", map[string]any{"combatants": drafts})
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int32(v), nil
}
