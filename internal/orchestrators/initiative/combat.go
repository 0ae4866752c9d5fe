package initiative

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out StartCombatOutput
	err := o.withSession(ctx, "StartCombat", input.SessionID, func(ctx context.Context, sess *session) error {
		if err := sess.seq.start(len(sess.combatants)); err != nil {
			return err
		}

		slog.InfoContext(ctx, "combat started",
			"session_id", sess.id,
			"combatants", len(sess.combatants))
		o.success(ctx, sess, "Combat started")

		out.Snapshot = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out AdvanceTurnOutput
	err := o.withSession(ctx, "AdvanceTurn", input.SessionID, func(ctx context.Context, sess *session) error {
		if err := sess.seq.advance(len(sess.combatants)); err != nil {
			return err
		}

		slog.DebugContext(ctx, "turn advanced",
			"session_id", sess.id,
			"turn", sess.seq.turn,
			"round", sess.seq.round)

		out.Snapshot = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) ResetCombat(ctx context.Context, input *ResetCombatInput) (*ResetCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var (
		out     ResetCombatOutput
		stopped <-chan struct{}
	)
	err := o.withSession(ctx, "ResetCombat", input.SessionID, func(ctx context.Context, sess *session) error {
		stopped = sess.seq.reset()
		out.Snapshot = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	waitStopped(ctx, stopped)
	return &out, nil
}
