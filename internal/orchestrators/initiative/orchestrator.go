// Package initiative implements the combat turn-order orchestrator: per
// session combatant lists, status annotations, the turn/round sequencer,
// drag reordering, and roster import.
package initiative

//go:generate mockgen -destination=mock/mock_service.go -package=initiativemock github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/roster"
)

const tracerName = "github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"

// Service defines the initiative tracker operations. Every operation except
// OpenSession acts on one session; failures are also pushed to that
// session's notifications.
type Service interface {
	OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error)
	CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	SelectCampaign(ctx context.Context, input *SelectCampaignInput) (*SelectCampaignOutput, error)

	// Load replaces the session's combatants with the stored rows and their
	// annotations. On failure the list is emptied.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
	AddCombatants(ctx context.Context, input *AddCombatantsInput) (*AddCombatantsOutput, error)
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)
	UpdateHP(ctx context.Context, input *UpdateHPInput) (*UpdateHPOutput, error)
	UpdateInitiative(ctx context.Context, input *UpdateInitiativeInput) (*UpdateInitiativeOutput, error)

	LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error)
	SearchStatuses(ctx context.Context, input *SearchStatusesInput) (*SearchStatusesOutput, error)
	AttachStatus(ctx context.Context, input *AttachStatusInput) (*AttachStatusOutput, error)
	DetachStatus(ctx context.Context, input *DetachStatusInput) (*DetachStatusOutput, error)
	InspectStatus(ctx context.Context, input *InspectStatusInput) (*InspectStatusOutput, error)

	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error)
	ResetCombat(ctx context.Context, input *ResetCombatInput) (*ResetCombatOutput, error)

	BeginDrag(ctx context.Context, input *BeginDragInput) (*BeginDragOutput, error)
	DropOn(ctx context.Context, input *DropOnInput) (*DropOnOutput, error)

	ListAvailable(ctx context.Context, input *ListAvailableInput) (*ListAvailableOutput, error)
	Instantiate(ctx context.Context, input *InstantiateInput) (*InstantiateOutput, error)

	// Shutdown closes every session and waits for their clocks to stop
	Shutdown(ctx context.Context) error
}

// Config holds the dependencies for the initiative orchestrator
type Config struct {
	Combatants  combatants.Repository
	Statuses    combatants.StatusRepository
	Catalog     catalog.Repository
	Roster      roster.Repository
	Notifier    notify.Notifier
	IDGenerator idgen.Generator

	// DiceRoller defaults to dice.DefaultRoller
	DiceRoller dice.Roller
	// Clock defaults to the wall clock
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Combatants == nil {
		vb.RequiredField("Combatants")
	}
	if c.Statuses == nil {
		vb.RequiredField("Statuses")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	combatants combatants.Repository
	statuses   combatants.StatusRepository
	catalog    catalog.Repository
	roster     roster.Repository
	notifier   notify.Notifier
	idGen      idgen.Generator
	roller     dice.Roller
	clock      clock.Clock
	tracer     trace.Tracer

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewOrchestrator creates a new initiative orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		combatants: cfg.Combatants,
		statuses:   cfg.Statuses,
		catalog:    cfg.Catalog,
		roster:     cfg.Roster,
		notifier:   cfg.Notifier,
		idGen:      cfg.IDGenerator,
		roller:     roller,
		clock:      clk,
		tracer:     otel.Tracer(tracerName),
		sessions:   make(map[string]*session),
	}, nil
}

// session is one open tracker view. mu serializes every operation on it.
type session struct {
	mu sync.Mutex

	id         string
	campaignID string
	closed     bool

	combatants      []*entities.Combatant
	catalog         []entities.StatusType
	catalogFallback bool
	inspectedID     string
	pendingDragID   string

	seq *sequencer
}

func (o *orchestrator) OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := o.tracer.Start(ctx, "initiative.OpenSession")
	defer span.End()

	sess := &session{
		id:         o.idGen.Generate(),
		campaignID: input.CampaignID,
		combatants: []*entities.Combatant{},
	}
	sess.seq = newSequencer(o.clock, func(elapsed int64) {
		o.notifier.Notify(context.Background(), notify.Tick(sess.id, elapsed))
	})
	sess.seq.guard = &sess.mu

	o.mu.Lock()
	o.sessions[sess.id] = sess
	o.mu.Unlock()

	span.SetAttributes(attribute.String("session_id", sess.id))
	slog.InfoContext(ctx, "tracker session opened",
		"session_id", sess.id,
		"campaign_id", sess.campaignID)

	var snap *Snapshot
	if sess.campaignID == "" {
		sess.mu.Lock()
		snap = sess.snapshot()
		sess.mu.Unlock()
		return &OpenSessionOutput{Snapshot: snap}, nil
	}

	// a failed initial load leaves the session open with an empty list
	err := o.withSession(ctx, "Load", sess.id, func(ctx context.Context, sess *session) error {
		defer func() { snap = sess.snapshot() }()
		return o.reload(ctx, sess)
	})
	if snap == nil {
		return nil, err
	}
	return &OpenSessionOutput{Snapshot: snap, LoadErr: err}, nil
}

func (o *orchestrator) CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.Lock()
	sess, ok := o.sessions[input.SessionID]
	delete(o.sessions, input.SessionID)
	o.mu.Unlock()
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	sess.mu.Lock()
	sess.closed = true
	stopped := sess.seq.reset()
	sess.mu.Unlock()

	waitStopped(ctx, stopped)

	slog.InfoContext(ctx, "tracker session closed", "session_id", input.SessionID)
	return &CloseSessionOutput{}, nil
}

func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var out GetSessionOutput
	err := o.readSession(ctx, input.SessionID, func(sess *session) {
		out.Snapshot = sess.snapshot()
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) SelectCampaign(
	ctx context.Context,
	input *SelectCampaignInput,
) (*SelectCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var (
		out     SelectCampaignOutput
		stopped <-chan struct{}
	)
	err := o.withSession(ctx, "SelectCampaign", input.SessionID, func(ctx context.Context, sess *session) error {
		sess.campaignID = input.CampaignID
		sess.combatants = []*entities.Combatant{}
		sess.catalog = nil
		sess.catalogFallback = false
		sess.inspectedID = ""
		sess.pendingDragID = ""
		stopped = sess.seq.reset()

		if input.CampaignID != "" {
			if err := o.reload(ctx, sess); err != nil {
				return err
			}
		}
		out.Snapshot = sess.snapshot()
		return nil
	})
	waitStopped(ctx, stopped)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	sessions := o.sessions
	o.sessions = make(map[string]*session)
	o.mu.Unlock()

	var waits []<-chan struct{}
	for _, sess := range sessions {
		sess.mu.Lock()
		sess.closed = true
		waits = append(waits, sess.seq.reset())
		sess.mu.Unlock()
	}
	for _, w := range waits {
		waitStopped(ctx, w)
	}

	slog.InfoContext(ctx, "initiative orchestrator shut down", "sessions_closed", len(sessions))
	return ctx.Err()
}

func waitStopped(ctx context.Context, stopped <-chan struct{}) {
	if stopped == nil {
		return
	}
	select {
	case <-stopped:
	case <-ctx.Done():
	}
}

func (o *orchestrator) lookup(sessionID string) (*session, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.RLock()
	sess, ok := o.sessions[sessionID]
	o.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}
	return sess, nil
}

// readSession runs fn under the session lock without tracing or notifying
func (o *orchestrator) readSession(_ context.Context, sessionID string, fn func(*session)) error {
	sess, err := o.lookup(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return errors.NotFoundf("session %s not found", sessionID)
	}
	fn(sess)
	return nil
}

// withSession runs fn under the session lock inside a span. A returned error
// is recorded on the span, logged, and pushed to the session as an error
// notification before being returned.
func (o *orchestrator) withSession(
	ctx context.Context,
	op string,
	sessionID string,
	fn func(ctx context.Context, sess *session) error,
) error {
	ctx, span := o.tracer.Start(ctx, "initiative."+op,
		trace.WithAttributes(attribute.String("session_id", sessionID)))
	defer span.End()

	sess, err := o.lookup(sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		err := errors.NotFoundf("session %s not found", sessionID)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("campaign_id", sess.campaignID))
	err = fn(ctx, sess)
	sess.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		slog.WarnContext(ctx, "initiative operation failed",
			"op", op,
			"session_id", sessionID,
			"code", errors.GetCode(err),
			"error", err.Error())
		o.notifier.Notify(ctx, notify.Failure(sessionID, err))
		return err
	}
	return nil
}

func (o *orchestrator) success(ctx context.Context, sess *session, message string) {
	o.notifier.Notify(ctx, notify.Success(sess.id, message))
}

func (o *orchestrator) requireCampaign(sess *session, message string) error {
	if sess.campaignID == "" {
		return errors.FailedPrecondition(message)
	}
	return nil
}

func (s *session) find(combatantID string) (int, *entities.Combatant) {
	for i, c := range s.combatants {
		if c.ID == combatantID {
			return i, c
		}
	}
	return -1, nil
}

func (s *session) snapshot() *Snapshot {
	index := make(map[string]entities.StatusType, len(s.catalog))
	for _, st := range s.catalog {
		index[st.ID] = st
	}

	views := make([]*CombatantView, len(s.combatants))
	for i, c := range s.combatants {
		views[i] = resolveView(c, index)
	}

	snap := &Snapshot{
		SessionID:        s.id,
		CampaignID:       s.campaignID,
		Combatants:       views,
		State:            s.seq.state(),
		Running:          s.seq.running(),
		CurrentTurnIndex: s.seq.turn,
		RoundNumber:      s.seq.round,
		ElapsedSeconds:   s.seq.elapsed,
		Catalog:          append([]entities.StatusType(nil), s.catalog...),
		CatalogFallback:  s.catalogFallback,
		PendingDragID:    s.pendingDragID,
	}

	if snap.Running && s.seq.turn >= 1 && s.seq.turn <= len(views) {
		snap.Active = views[s.seq.turn-1]
	}
	if s.inspectedID != "" {
		if st, ok := index[s.inspectedID]; ok {
			snap.Inspected = &st
		}
	}

	return snap
}

func resolveView(c *entities.Combatant, catalog map[string]entities.StatusType) *CombatantView {
	copied := *c
	copied.Statuses = nil

	view := &CombatantView{
		Combatant: &copied,
		Statuses:  make([]entities.ResolvedStatus, 0, len(c.Statuses)),
	}
	for _, a := range c.Statuses {
		annotation := *a
		st, ok := catalog[a.StatusTypeID]
		if !ok {
			st = entities.UnknownStatusType(a.StatusTypeID)
		}
		view.Statuses = append(view.Statuses, entities.ResolvedStatus{StatusAnnotation: &annotation, Type: st})
	}
	return view
}
