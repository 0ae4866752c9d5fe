package initiative

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
)

// FallbackIDPrefix marks catalog entries that did not come from storage
const FallbackIDPrefix = "fallback-"

// FallbackCatalog is substituted whole when the stored catalog is
// unreachable or empty
func FallbackCatalog() []entities.StatusType {
	return []entities.StatusType{
		{
			ID:          FallbackIDPrefix + "incapacitated",
			Name:        "Incapacitated",
			Color:       "red",
			Description: "Cannot take actions or reactions",
		},
		{
			ID:          FallbackIDPrefix + "bleeding",
			Name:        "Bleeding",
			Color:       "red",
			Description: "Loses hit points at the start of each turn",
		},
		{
			ID:          FallbackIDPrefix + "poisoned",
			Name:        "Poisoned",
			Color:       "green",
			Description: "Disadvantage on attack rolls and ability checks",
		},
		{
			ID:          FallbackIDPrefix + "frightened",
			Name:        "Frightened",
			Color:       "purple",
			Description: "Cannot willingly move closer to the source of fear",
		},
	}
}

func (o *orchestrator) LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out LoadCatalogOutput
	err := o.withSession(ctx, "LoadCatalog", input.SessionID, func(ctx context.Context, sess *session) error {
		listOutput, err := o.catalog.List(ctx, catalog.ListInput{})
		switch {
		case err != nil:
			slog.WarnContext(ctx, "status catalog unavailable, using fallback",
				"session_id", sess.id,
				"error", err.Error())
			sess.catalog, sess.catalogFallback = FallbackCatalog(), true
		case len(listOutput.StatusTypes) == 0:
			slog.WarnContext(ctx, "status catalog empty, using fallback", "session_id", sess.id)
			sess.catalog, sess.catalogFallback = FallbackCatalog(), true
		default:
			sess.catalog, sess.catalogFallback = listOutput.StatusTypes, false
		}

		out.StatusTypes = append([]entities.StatusType(nil), sess.catalog...)
		out.Fallback = sess.catalogFallback
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) SearchStatuses(
	ctx context.Context,
	input *SearchStatusesInput,
) (*SearchStatusesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out SearchStatusesOutput
	err := o.readSession(ctx, input.SessionID, func(sess *session) {
		out.StatusTypes = SearchCatalog(sess.catalog, input.Query)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCatalog returns the entries whose name or description contains query,
// ignoring case, in catalog order. An empty query matches everything.
func SearchCatalog(statusTypes []entities.StatusType, query string) []entities.StatusType {
	needle := strings.ToLower(strings.TrimSpace(query))

	matches := make([]entities.StatusType, 0, len(statusTypes))
	for _, st := range statusTypes {
		if needle == "" ||
			strings.Contains(strings.ToLower(st.Name), needle) ||
			strings.Contains(strings.ToLower(st.Description), needle) {
			matches = append(matches, st)
		}
	}
	return matches
}

func (o *orchestrator) AttachStatus(ctx context.Context, input *AttachStatusInput) (*AttachStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out AttachStatusOutput
	err := o.withSession(ctx, "AttachStatus", input.SessionID, func(ctx context.Context, sess *session) error {
		annotation := &entities.StatusAnnotation{
			ID:           o.idGen.Generate(),
			CombatantID:  input.CombatantID,
			StatusTypeID: input.StatusTypeID,
			Duration:     input.Duration,
			Notes:        input.Notes,
		}

		created, err := o.statuses.Create(ctx, combatants.CreateStatusInput{Annotation: annotation})
		if err != nil {
			return errors.Wrap(err, "failed to apply status")
		}
		o.success(ctx, sess, "Status applied")

		out.Annotation = created.Annotation
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

func (o *orchestrator) DetachStatus(ctx context.Context, input *DetachStatusInput) (*DetachStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out DetachStatusOutput
	err := o.withSession(ctx, "DetachStatus", input.SessionID, func(ctx context.Context, sess *session) error {
		if _, err := o.statuses.Delete(ctx, combatants.DeleteStatusInput{ID: input.AnnotationID}); err != nil {
			return errors.Wrap(err, "failed to remove status")
		}
		o.success(ctx, sess, "Status removed")

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

func (o *orchestrator) InspectStatus(
	ctx context.Context,
	input *InspectStatusInput,
) (*InspectStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out InspectStatusOutput
	err := o.readSession(ctx, input.SessionID, func(sess *session) {
		sess.inspectedID = input.StatusTypeID
		for i := range sess.catalog {
			if sess.catalog[i].ID == input.StatusTypeID {
				st := sess.catalog[i]
				out.Inspected = &st
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
