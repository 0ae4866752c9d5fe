package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

var (
	statusDuration int32
	statusNotes    string
)

type catalogResponse struct {
	StatusTypes []entities.StatusType `json:"status_types"`
	Fallback    bool                  `json:"fallback"`
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Work with the status catalog and attached statuses",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load the status catalog into the session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		var resp catalogResponse
		if err := call(http.MethodPost, "/catalog/load", nil, &resp); err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		if resp.Fallback {
			fmt.Printf("Campaign catalog unavailable, using defaults\n\n")
		}
		printStatusTypes(resp.StatusTypes)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter the loaded catalog by name or description",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		suffix := "/catalog"
		if len(args) == 1 {
			suffix += "?q=" + url.QueryEscape(args[0])
		}
		var resp catalogResponse
		if err := call(http.MethodGet, suffix, nil, &resp); err != nil {
			return fmt.Errorf("failed to search catalog: %w", err)
		}
		printStatusTypes(resp.StatusTypes)
		return nil
	},
}

var attachCmd = &cobra.Command{
	Use:   "attach <combatant-id> <status-type-id>",
	Short: "Attach a status to a combatant",
	Args:  cobra.ExactArgs(2),
	RunE:  runAttach,
}

var detachCmd = &cobra.Command{
	Use:   "detach <annotation-id>",
	Short: "Remove an attached status",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return callAndPrint(http.MethodDelete, "/statuses/"+args[0], nil)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [status-type-id]",
	Short: "Show a catalog entry's details, or clear the selection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		var resp struct {
			Inspected *entities.StatusType `json:"inspected"`
		}
		if err := call(http.MethodPost, "/catalog/inspect", map[string]string{"status_type_id": id}, &resp); err != nil {
			return fmt.Errorf("failed to inspect status: %w", err)
		}
		if resp.Inspected == nil {
			fmt.Printf("Selection cleared\n")
			return nil
		}
		fmt.Printf("%s (%s)\n  Color: %s\n  %s\n",
			resp.Inspected.Name, resp.Inspected.ID, resp.Inspected.Color, resp.Inspected.Description)
		return nil
	},
}

func init() {
	attachCmd.Flags().Int32Var(&statusDuration, "rounds", 0, "Remaining rounds, 0 for indefinite")
	attachCmd.Flags().StringVar(&statusNotes, "notes", "", "Free-form notes")

	statusesCmd.AddCommand(catalogLoadCmd)
	statusesCmd.AddCommand(searchCmd)
	statusesCmd.AddCommand(attachCmd)
	statusesCmd.AddCommand(detachCmd)
	statusesCmd.AddCommand(inspectCmd)
}

func runAttach(_ *cobra.Command, args []string) error {
	body := map[string]any{"status_type_id": args[1]}
	if statusDuration > 0 {
		body["duration"] = statusDuration
	}
	if statusNotes != "" {
		body["notes"] = statusNotes
	}

	var resp struct {
		Annotation *entities.StatusAnnotation `json:"annotation"`
	}
	if err := call(http.MethodPost, "/combatants/"+args[0]+"/statuses", body, &resp); err != nil {
		return fmt.Errorf("failed to attach status: %w", err)
	}

	fmt.Printf("Attached %s as %s\n", args[1], resp.Annotation.ID)
	return nil
}

func printStatusTypes(types []entities.StatusType) {
	if len(types) == 0 {
		fmt.Printf("No statuses\n")
		return
	}
	for _, st := range types {
		fmt.Printf("  %-14s %-10s %-8s %s\n", st.ID, st.Name, st.Color, st.Description)
	}
}
