package initiative

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/roster"
)

const errNoCampaignSelected = "no campaign selected"

// PlayerEntry normalizes a player character into a roster entry
func PlayerEntry(p *entities.Player) entities.RosterEntry {
	return entities.RosterEntry{
		ID:         p.ID,
		Kind:       entities.CharacterTypePlayer,
		Name:       p.CharacterName,
		CurrentHP:  p.HPCurrent,
		MaxHP:      p.HPMax,
		ArmorClass: p.ArmorClass,
		Notes:      p.Notes,
	}
}

// NPCEntry normalizes an NPC into a roster entry
func NPCEntry(n *entities.NPC) entities.RosterEntry {
	return entities.RosterEntry{
		ID:         n.ID,
		Kind:       entities.CharacterTypeNPC,
		Name:       n.Name,
		CurrentHP:  n.CurrentHP,
		MaxHP:      n.MaxHP,
		ArmorClass: n.AC,
		Notes:      n.Description,
	}
}

func (o *orchestrator) ListAvailable(
	ctx context.Context,
	input *ListAvailableInput,
) (*ListAvailableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out ListAvailableOutput
	err := o.withSession(ctx, "ListAvailable", input.SessionID, func(ctx context.Context, sess *session) error {
		if err := o.requireCampaign(sess, errNoCampaignSelected); err != nil {
			return err
		}

		entries, err := o.listRoster(ctx, sess.campaignID, input.Kind)
		if err != nil {
			return err
		}
		out.Entries = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) listRoster(
	ctx context.Context,
	campaignID string,
	kind entities.CharacterType,
) ([]entities.RosterEntry, error) {
	switch kind {
	case entities.CharacterTypePlayer:
		players, err := o.roster.ListPlayers(ctx, roster.ListPlayersInput{CampaignID: campaignID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list players")
		}
		entries := make([]entities.RosterEntry, len(players.Players))
		for i, p := range players.Players {
			entries[i] = PlayerEntry(p)
		}
		return entries, nil

	case entities.CharacterTypeNPC:
		npcs, err := o.roster.ListNPCs(ctx, roster.ListNPCsInput{CampaignID: campaignID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list npcs")
		}
		entries := make([]entities.RosterEntry, len(npcs.NPCs))
		for i, n := range npcs.NPCs {
			entries[i] = NPCEntry(n)
		}
		return entries, nil

	default:
		return nil, errors.InvalidArgumentf("unknown roster kind %q", kind)
	}
}

// getEntry fetches one roster entry and checks it belongs to campaignID
func (o *orchestrator) getEntry(
	ctx context.Context,
	campaignID string,
	kind entities.CharacterType,
	entryID string,
) (entities.RosterEntry, error) {
	var (
		entry      entities.RosterEntry
		entryScope string
	)

	switch kind {
	case entities.CharacterTypePlayer:
		out, err := o.roster.GetPlayer(ctx, roster.GetPlayerInput{ID: entryID})
		if err != nil {
			return entry, errors.Wrap(err, "failed to get player")
		}
		entry, entryScope = PlayerEntry(out.Player), out.Player.CampaignID

	case entities.CharacterTypeNPC:
		out, err := o.roster.GetNPC(ctx, roster.GetNPCInput{ID: entryID})
		if err != nil {
			return entry, errors.Wrap(err, "failed to get npc")
		}
		entry, entryScope = NPCEntry(out.NPC), out.NPC.CampaignID

	default:
		return entry, errors.InvalidArgumentf("unknown roster kind %q", kind)
	}

	if entryScope != campaignID {
		return entities.RosterEntry{}, errors.NotFoundf("%s %s not found in campaign %s", kind, entryID, campaignID)
	}
	return entry, nil
}

// Instantiate creates quantity combatants from one roster entry. Copies are
// named "{name} {i}" when quantity > 1 and share the entry's stats as they
// are right now.
func (o *orchestrator) Instantiate(ctx context.Context, input *InstantiateInput) (*InstantiateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out InstantiateOutput
	err := o.withSession(ctx, "Instantiate", input.SessionID, func(ctx context.Context, sess *session) error {
		if err := o.requireCampaign(sess, errNoCampaignSelected); err != nil {
			return err
		}

		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("entry_id", input.EntryID, vb)
		errors.ValidateMin("quantity", input.Quantity, 1, vb)
		if err := vb.Build(); err != nil {
			return err
		}

		entry, err := o.getEntry(ctx, sess.campaignID, input.Kind, input.EntryID)
		if err != nil {
			return err
		}

		drafts := make([]CombatantDraft, input.Quantity)
		for i := range drafts {
			name := entry.Name
			if input.Quantity > 1 {
				name = fmt.Sprintf("%s %d", entry.Name, i+1)
			}

			initiative := input.InitiativeValue
			if input.RollInitiative {
				roll, err := o.roller.Roll(20)
				if err != nil {
					return errors.Wrap(err, "failed to roll initiative")
				}
				initiative = int32(roll) + input.InitiativeBonus
			}

			drafts[i] = CombatantDraft{
				Name:              name,
				InitiativeValue:   initiative,
				CurrentHP:         entry.CurrentHP,
				MaxHP:             entry.MaxHP,
				ArmorClass:        entry.ArmorClass,
				Notes:             entry.Notes,
				CharacterType:     entry.Kind,
				SourceCharacterID: entry.ID,
			}
		}

		created := o.buildCombatants(sess, drafts)
		if _, err := o.combatants.Create(ctx, combatants.CreateInput{Combatants: created}); err != nil {
			return errors.Wrap(err, "failed to add combatants")
		}

		slog.InfoContext(ctx, "roster entry instantiated",
			"session_id", sess.id,
			"kind", input.Kind,
			"entry_id", entry.ID,
			"quantity", input.Quantity)
		o.success(ctx, sess, fmt.Sprintf("Added %d x %s", input.Quantity, entry.Name))

		out.Created = created
		if err := o.reload(ctx, sess); err != nil {
			return err
		}
		out.Snapshot = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
