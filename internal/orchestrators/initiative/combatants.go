package initiative

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
)

const errNoActiveCampaign = "no active campaign"

func (o *orchestrator) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out LoadOutput
	err := o.withSession(ctx, "Load", input.SessionID, func(ctx context.Context, sess *session) error {
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

// reload replaces the session's list with the stored rows joined to their
// annotations. Any storage failure empties the list.
func (o *orchestrator) reload(ctx context.Context, sess *session) error {
	if err := o.requireCampaign(sess, errNoActiveCampaign); err != nil {
		return err
	}

	listOutput, err := o.combatants.ListByCampaign(ctx, combatants.ListByCampaignInput{
		CampaignID: sess.campaignID,
	})
	if err != nil {
		sess.combatants = []*entities.Combatant{}
		sess.seq.fit(0)
		return errors.Wrap(err, "failed to load combatants")
	}

	loaded := listOutput.Combatants
	if len(loaded) > 0 {
		ids := make([]string, len(loaded))
		for i, c := range loaded {
			ids[i] = c.ID
		}

		statusOutput, err := o.statuses.ListByCombatantIDs(ctx, combatants.ListByCombatantIDsInput{
			CombatantIDs: ids,
		})
		if err != nil {
			sess.combatants = []*entities.Combatant{}
			sess.seq.fit(0)
			return errors.Wrap(err, "failed to load statuses")
		}

		for _, c := range loaded {
			c.Statuses = statusOutput.Annotations[c.ID]
		}
	}

	sess.combatants = loaded
	sess.seq.fit(len(loaded))
	if sess.pendingDragID != "" {
		if _, c := sess.find(sess.pendingDragID); c == nil {
			sess.pendingDragID = ""
		}
	}

	slog.DebugContext(ctx, "combatants loaded",
		"session_id", sess.id,
		"campaign_id", sess.campaignID,
		"count", len(loaded))

	return nil
}

func (o *orchestrator) AddCombatants(
	ctx context.Context,
	input *AddCombatantsInput,
) (*AddCombatantsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out AddCombatantsOutput
	err := o.withSession(ctx, "AddCombatants", input.SessionID, func(ctx context.Context, sess *session) error {
		if err := o.requireCampaign(sess, errNoActiveCampaign); err != nil {
			return err
		}
		if err := validateDrafts(input.Drafts); err != nil {
			return err
		}

		created := o.buildCombatants(sess, input.Drafts)
		if _, err := o.combatants.Create(ctx, combatants.CreateInput{Combatants: created}); err != nil {
			return errors.Wrap(err, "failed to add combatants")
		}

		message := "Combatant added"
		if len(created) > 1 {
			message = fmt.Sprintf("%d combatants added", len(created))
		}
		o.success(ctx, sess, message)

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

func validateDrafts(drafts []CombatantDraft) error {
	if len(drafts) == 0 {
		return errors.InvalidArgument("at least one combatant is required")
	}

	vb := errors.NewValidationBuilder()
	for i, d := range drafts {
		errors.ValidateRequired(fmt.Sprintf("drafts[%d].name", i), d.Name, vb)
		if d.CharacterType != "" && !d.CharacterType.Valid() {
			vb.Fieldf(fmt.Sprintf("drafts[%d].character_type", i), "must be %q or %q",
				entities.CharacterTypePlayer, entities.CharacterTypeNPC)
		}
	}
	return vb.Build()
}

// buildCombatants turns drafts into rows positioned after the session's
// current maximum, in draft order
func (o *orchestrator) buildCombatants(sess *session, drafts []CombatantDraft) []*entities.Combatant {
	next := entities.MaxPosition(sess.combatants) + 1
	now := o.clock.Now()

	created := make([]*entities.Combatant, len(drafts))
	for i, d := range drafts {
		kind := d.CharacterType
		if kind == "" {
			kind = entities.CharacterTypeNPC
		}
		created[i] = &entities.Combatant{
			ID:                o.idGen.Generate(),
			CampaignID:        sess.campaignID,
			Name:              d.Name,
			InitiativeValue:   d.InitiativeValue,
			Position:          next + int32(i),
			CurrentHP:         d.CurrentHP,
			MaxHP:             d.MaxHP,
			ArmorClass:        d.ArmorClass,
			Notes:             d.Notes,
			CharacterType:     kind,
			SourceCharacterID: d.SourceCharacterID,
			CreatedAt:         now,
		}
	}
	return created
}

func (o *orchestrator) RemoveCombatant(
	ctx context.Context,
	input *RemoveCombatantInput,
) (*RemoveCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out RemoveCombatantOutput
	err := o.withSession(ctx, "RemoveCombatant", input.SessionID, func(ctx context.Context, sess *session) error {
		if input.CombatantID == "" {
			return errors.InvalidArgument("combatant ID is required")
		}
		if !input.Confirmed {
			return errors.FailedPrecondition("removal must be confirmed")
		}

		deleted, err := o.combatants.Delete(ctx, combatants.DeleteInput{ID: input.CombatantID})
		if err != nil {
			return errors.Wrap(err, "failed to remove combatant")
		}

		slog.InfoContext(ctx, "combatant removed",
			"session_id", sess.id,
			"combatant_id", input.CombatantID,
			"statuses_deleted", deleted.StatusesDeleted)
		o.success(ctx, sess, "Combatant removed")

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

func (o *orchestrator) UpdateHP(ctx context.Context, input *UpdateHPInput) (*UpdateHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out UpdateHPOutput
	err := o.withSession(ctx, "UpdateHP", input.SessionID, func(ctx context.Context, sess *session) error {
		if input.CombatantID == "" {
			return errors.InvalidArgument("combatant ID is required")
		}

		updated, err := o.combatants.UpdateHP(ctx, combatants.UpdateHPInput{
			ID:        input.CombatantID,
			CurrentHP: input.CurrentHP,
		})
		if err != nil {
			return errors.Wrap(err, "failed to update HP")
		}

		if _, c := sess.find(input.CombatantID); c != nil {
			c.CurrentHP = input.CurrentHP
		}
		o.notifier.Notify(ctx, notify.Success(sess.id, "HP updated").About(updated.Combatant))

		out.Snapshot = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) UpdateInitiative(
	ctx context.Context,
	input *UpdateInitiativeInput,
) (*UpdateInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out UpdateInitiativeOutput
	err := o.withSession(ctx, "UpdateInitiative", input.SessionID, func(ctx context.Context, sess *session) error {
		if input.CombatantID == "" {
			return errors.InvalidArgument("combatant ID is required")
		}

		updated, err := o.combatants.UpdateInitiative(ctx, combatants.UpdateInitiativeInput{
			ID:              input.CombatantID,
			InitiativeValue: input.InitiativeValue,
		})
		if err != nil {
			return errors.Wrap(err, "failed to update initiative")
		}
		o.notifier.Notify(ctx, notify.Success(sess.id, "Initiative updated").About(updated.Combatant))

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
