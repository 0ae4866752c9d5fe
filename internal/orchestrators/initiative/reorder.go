package initiative

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
)

func (o *orchestrator) BeginDrag(ctx context.Context, input *BeginDragInput) (*BeginDragOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	err := o.readSession(ctx, input.SessionID, func(sess *session) {
		sess.pendingDragID = input.CombatantID
	})
	if err != nil {
		return nil, err
	}
	return &BeginDragOutput{}, nil
}

// DropOn moves the dragged combatant to just before the target and rewrites
// every position as 1..N. The local order is kept even when writes fail.
func (o *orchestrator) DropOn(ctx context.Context, input *DropOnInput) (*DropOnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out DropOnOutput
	err := o.withSession(ctx, "DropOn", input.SessionID, func(ctx context.Context, sess *session) error {
		sourceID := sess.pendingDragID
		sess.pendingDragID = ""

		if sourceID == "" || sourceID == input.TargetID {
			out.Snapshot = sess.snapshot()
			return nil
		}

		reordered, err := moveBefore(sess.combatants, sourceID, input.TargetID)
		if err != nil {
			return err
		}
		for i, c := range reordered {
			c.Position = int32(i + 1)
		}
		sess.combatants = reordered
		out.Moved = true
		out.Snapshot = sess.snapshot()

		if err := o.writePositions(ctx, reordered); err != nil {
			return errors.Wrap(err, "failed to save initiative order")
		}
		o.success(ctx, sess, "Initiative order updated")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// moveBefore returns a new slice with source removed and reinserted
// immediately before target
func moveBefore(list []*entities.Combatant, sourceID, targetID string) ([]*entities.Combatant, error) {
	var source *entities.Combatant
	rest := make([]*entities.Combatant, 0, len(list))
	for _, c := range list {
		if c.ID == sourceID {
			source = c
			continue
		}
		rest = append(rest, c)
	}
	if source == nil {
		return nil, errors.NotFoundf("combatant %s not found", sourceID)
	}

	at := -1
	for i, c := range rest {
		if c.ID == targetID {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, errors.NotFoundf("combatant %s not found", targetID)
	}

	reordered := make([]*entities.Combatant, 0, len(list))
	reordered = append(reordered, rest[:at]...)
	reordered = append(reordered, source)
	reordered = append(reordered, rest[at:]...)
	return reordered, nil
}

// writePositions persists every row's position concurrently and waits for
// all writes. Failures are joined; successful writes are not undone.
func (o *orchestrator) writePositions(ctx context.Context, list []*entities.Combatant) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, c := range list {
		wg.Add(1)
		go func(id string, position int32) {
			defer wg.Done()
			_, err := o.combatants.UpdatePosition(ctx, combatants.UpdatePositionInput{
				ID:       id,
				Position: position,
			})
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(c.ID, c.Position)
	}
	wg.Wait()

	if len(errs) > 0 {
		slog.WarnContext(ctx, "position writes failed",
			"failed", len(errs),
			"total", len(list))
		return errors.Join(errs...)
	}
	return nil
}
