package initiative_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	notifymock "github.com/KirkDiggler/rpg-initiative/internal/notify/mock"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
	mockclock "github.com/KirkDiggler/rpg-initiative/internal/pkg/clock/mock"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/rpg-initiative/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/rpg-initiative/internal/repositories/catalog/mock"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants"
	combatantsmock "github.com/KirkDiggler/rpg-initiative/internal/repositories/combatants/mock"
	"github.com/KirkDiggler/rpg-initiative/internal/repositories/roster"
	rostermock "github.com/KirkDiggler/rpg-initiative/internal/repositories/roster/mock"
)

const testCampaignID = "camp_1"

// fixedRoller always rolls the same value
type fixedRoller struct {
	value int
}

func (r *fixedRoller) Roll(_ int) (int, error) { return r.value, nil }
func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r.value
	}
	return rolls, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockCombatants *combatantsmock.MockRepository
	mockStatuses   *combatantsmock.MockStatusRepository
	mockCatalog    *catalogmock.MockRepository
	mockRoster     *rostermock.MockRepository
	mockNotifier   *notifymock.MockNotifier
	mockClock      *mockclock.MockClock
	mockTicker     *mockclock.MockTicker
	ticks          chan time.Time
	roller         *fixedRoller
	orchestrator   initiative.Service
	ctx            context.Context
	now            time.Time

	notesMu sync.Mutex
	notes   []notify.Notification
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCombatants = combatantsmock.NewMockRepository(s.ctrl)
	s.mockStatuses = combatantsmock.NewMockStatusRepository(s.ctrl)
	s.mockCatalog = catalogmock.NewMockRepository(s.ctrl)
	s.mockRoster = rostermock.NewMockRepository(s.ctrl)
	s.mockNotifier = notifymock.NewMockNotifier(s.ctrl)
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.mockTicker = mockclock.NewMockTicker(s.ctrl)
	s.ticks = make(chan time.Time)
	s.roller = &fixedRoller{value: 10}
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 4, 19, 0, 0, 0, time.UTC)
	s.notes = nil

	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()
	s.mockClock.EXPECT().NewTicker(time.Second).Return(s.mockTicker).AnyTimes()
	s.mockTicker.EXPECT().Chan().Return((<-chan time.Time)(s.ticks)).AnyTimes()
	s.mockTicker.EXPECT().Stop().AnyTimes()
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, n notify.Notification) {
			s.notesMu.Lock()
			s.notes = append(s.notes, n)
			s.notesMu.Unlock()
		}).AnyTimes()

	orch, err := initiative.NewOrchestrator(&initiative.Config{
		Combatants:  s.mockCombatants,
		Statuses:    s.mockStatuses,
		Catalog:     s.mockCatalog,
		Roster:      s.mockRoster,
		Notifier:    s.mockNotifier,
		IDGenerator: idgen.NewSequential("id"),
		DiceRoller:  s.roller,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.Require().NoError(s.orchestrator.Shutdown(s.ctx))
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) notifications(kind notify.Kind) []notify.Notification {
	s.notesMu.Lock()
	defer s.notesMu.Unlock()

	var matched []notify.Notification
	for _, n := range s.notes {
		if n.Kind == kind {
			matched = append(matched, n)
		}
	}
	return matched
}

// open opens a session; a campaign session runs its initial load against an
// empty campaign
func (s *OrchestratorTestSuite) open(campaignID string) string {
	if campaignID != "" {
		s.expectInitialLoad(campaignID, nil)
	}
	out, err := s.orchestrator.OpenSession(s.ctx, &initiative.OpenSessionInput{CampaignID: campaignID})
	s.Require().NoError(err)
	s.Require().NoError(out.LoadErr)
	return out.Snapshot.SessionID
}

func (s *OrchestratorTestSuite) expectInitialLoad(campaignID string, rows []*entities.Combatant) {
	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), combatants.ListByCampaignInput{CampaignID: campaignID}).
		Return(&combatants.ListByCampaignOutput{Combatants: clone(rows)}, nil)
}

func (s *OrchestratorTestSuite) combatant(id, name string, initiativeValue, position int32) *entities.Combatant {
	return &entities.Combatant{
		ID:              id,
		CampaignID:      testCampaignID,
		Name:            name,
		InitiativeValue: initiativeValue,
		Position:        position,
		CurrentHP:       10,
		MaxHP:           10,
		ArmorClass:      12,
		CharacterType:   entities.CharacterTypeNPC,
	}
}

func clone(rows []*entities.Combatant) []*entities.Combatant {
	out := make([]*entities.Combatant, len(rows))
	for i, c := range rows {
		copied := *c
		out[i] = &copied
	}
	return out
}

// expectLoad expects one reload returning rows and the given annotations
func (s *OrchestratorTestSuite) expectLoad(
	rows []*entities.Combatant,
	annotations map[string][]*entities.StatusAnnotation,
) {
	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), combatants.ListByCampaignInput{CampaignID: testCampaignID}).
		Return(&combatants.ListByCampaignOutput{Combatants: clone(rows)}, nil)

	if len(rows) == 0 {
		return
	}
	ids := make([]string, len(rows))
	for i, c := range rows {
		ids[i] = c.ID
	}
	if annotations == nil {
		annotations = map[string][]*entities.StatusAnnotation{}
	}
	s.mockStatuses.EXPECT().
		ListByCombatantIDs(gomock.Any(), combatants.ListByCombatantIDsInput{CombatantIDs: ids}).
		Return(&combatants.ListByCombatantIDsOutput{Annotations: annotations}, nil)
}

// loaded opens a session and loads rows into it
func (s *OrchestratorTestSuite) loaded(rows ...*entities.Combatant) string {
	sid := s.open(testCampaignID)
	s.expectLoad(rows, nil)
	_, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().NoError(err)
	return sid
}

func (s *OrchestratorTestSuite) snapshot(sid string) *initiative.Snapshot {
	out, err := s.orchestrator.GetSession(s.ctx, &initiative.GetSessionInput{SessionID: sid})
	s.Require().NoError(err)
	return out.Snapshot
}

func names(snap *initiative.Snapshot) []string {
	out := make([]string, len(snap.Combatants))
	for i, c := range snap.Combatants {
		out[i] = c.Name
	}
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := initiative.NewOrchestrator(&initiative.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Combatants")

	_, err = initiative.NewOrchestrator(nil)
	s.Require().Error(err)
}

func (s *OrchestratorTestSuite) TestOpenSessionDefaults() {
	gen := idgenmock.NewMockGenerator(s.ctrl)
	gen.EXPECT().Generate().Return("sess_fixed")

	orch, err := initiative.NewOrchestrator(&initiative.Config{
		Combatants:  s.mockCombatants,
		Statuses:    s.mockStatuses,
		Catalog:     s.mockCatalog,
		Roster:      s.mockRoster,
		Notifier:    s.mockNotifier,
		IDGenerator: gen,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)

	s.expectInitialLoad(testCampaignID, nil)
	out, err := orch.OpenSession(s.ctx, &initiative.OpenSessionInput{CampaignID: testCampaignID})
	s.Require().NoError(err)

	snap := out.Snapshot
	s.Equal("sess_fixed", snap.SessionID)
	s.Equal(testCampaignID, snap.CampaignID)
	s.Equal(initiative.StateNotStarted, snap.State)
	s.False(snap.Running)
	s.Zero(snap.RoundNumber)
	s.Zero(snap.CurrentTurnIndex)
	s.Zero(snap.ElapsedSeconds)
	s.Empty(snap.Combatants)
	s.Nil(snap.Active)
}

func (s *OrchestratorTestSuite) TestUnknownSession() {
	_, err := s.orchestrator.GetSession(s.ctx, &initiative.GetSessionInput{SessionID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.Load(s.ctx, &initiative.LoadInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestLoadRequiresCampaign() {
	sid := s.open("")

	_, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "no active campaign")

	failures := s.notifications(notify.KindError)
	s.Require().Len(failures, 1)
	s.Equal(sid, failures[0].SessionID)
	s.Equal(errors.CodeFailedPrecondition.String(), failures[0].Code)
}

func (s *OrchestratorTestSuite) TestLoadJoinsStatusesInOneLookup() {
	duration := int32(2)
	sid := s.open(testCampaignID)
	s.expectLoad(
		[]*entities.Combatant{s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2)},
		map[string][]*entities.StatusAnnotation{
			"c2": {{ID: "a1", CombatantID: "c2", StatusTypeID: "st_poisoned", Duration: &duration}},
		},
	)

	out, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().NoError(err)
	s.Equal([]string{"Aria", "Goblin"}, names(out.Snapshot))
	s.Empty(out.Snapshot.Combatants[0].Statuses)
	s.Require().Len(out.Snapshot.Combatants[1].Statuses, 1)
	s.Equal("a1", out.Snapshot.Combatants[1].Statuses[0].ID)
}

func (s *OrchestratorTestSuite) TestLoadEmptyCampaignSkipsStatusLookup() {
	sid := s.open(testCampaignID)
	s.expectLoad(nil, nil)

	out, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().NoError(err)
	s.NotNil(out.Snapshot.Combatants)
	s.Empty(out.Snapshot.Combatants)
	s.Empty(s.notifications(notify.KindError))
}

func (s *OrchestratorTestSuite) TestLoadFailureResetsList() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2))
	s.Len(s.snapshot(sid).Combatants, 2)

	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis: connection refused"))

	_, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
	s.Empty(s.snapshot(sid).Combatants)

	failures := s.notifications(notify.KindError)
	s.Require().Len(failures, 1)
	s.Equal("failed to load combatants", failures[0].Message)
}

func (s *OrchestratorTestSuite) TestLoadStatusFailureResetsList() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), gomock.Any()).
		Return(&combatants.ListByCampaignOutput{Combatants: []*entities.Combatant{s.combatant("c1", "Aria", 18, 1)}}, nil)
	s.mockStatuses.EXPECT().
		ListByCombatantIDs(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("boom"))

	_, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().Error(err)
	s.Empty(s.snapshot(sid).Combatants)
}

func (s *OrchestratorTestSuite) TestAddCombatantsPositionsAndReload() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 4))

	var inserted []*entities.Combatant
	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateInput) (*combatants.CreateOutput, error) {
			inserted = input.Combatants
			return &combatants.CreateOutput{Combatants: input.Combatants}, nil
		})
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 4)}, nil)

	_, err := s.orchestrator.AddCombatants(s.ctx, &initiative.AddCombatantsInput{
		SessionID: sid,
		Drafts: []initiative.CombatantDraft{
			{Name: "Wolf", InitiativeValue: 14, CurrentHP: 11, MaxHP: 11, ArmorClass: 13},
			{Name: "Thorin", CharacterType: entities.CharacterTypePlayer},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(inserted, 2)
	s.Equal(int32(5), inserted[0].Position)
	s.Equal(int32(6), inserted[1].Position)
	s.Equal(entities.CharacterTypeNPC, inserted[0].CharacterType)
	s.Equal(entities.CharacterTypePlayer, inserted[1].CharacterType)
	s.Equal(testCampaignID, inserted[0].CampaignID)
	s.True(s.now.Equal(inserted[0].CreatedAt))
	s.NotEqual(inserted[0].ID, inserted[1].ID)

	successes := s.notifications(notify.KindSuccess)
	s.Require().Len(successes, 1)
	s.Equal("2 combatants added", successes[0].Message)
}

func (s *OrchestratorTestSuite) TestAddCombatantsValidation() {
	sid := s.loaded()

	_, err := s.orchestrator.AddCombatants(s.ctx, &initiative.AddCombatantsInput{
		SessionID: sid,
		Drafts:    []initiative.CombatantDraft{{Name: " "}, {Name: "Ok", CharacterType: "monster"}},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "drafts[0].name")
	s.Contains(err.Error(), "drafts[1].character_type")
}

func (s *OrchestratorTestSuite) TestAddCombatantsStorageFailureKeepsState() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("insert failed"))

	_, err := s.orchestrator.AddCombatants(s.ctx, &initiative.AddCombatantsInput{
		SessionID: sid,
		Drafts:    []initiative.CombatantDraft{{Name: "Wolf"}},
	})
	s.Require().Error(err)
	s.Equal([]string{"Aria"}, names(s.snapshot(sid)))
	s.Len(s.notifications(notify.KindError), 1)
}

func (s *OrchestratorTestSuite) TestRemoveRequiresConfirmation() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	_, err := s.orchestrator.RemoveCombatant(s.ctx, &initiative.RemoveCombatantInput{
		SessionID:   sid,
		CombatantID: "c1",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Len(s.snapshot(sid).Combatants, 1)
}

func (s *OrchestratorTestSuite) TestRemoveDeletesAndReloads() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2))

	s.mockCombatants.EXPECT().
		Delete(gomock.Any(), combatants.DeleteInput{ID: "c2"}).
		Return(&combatants.DeleteOutput{StatusesDeleted: 1}, nil)
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 1)}, nil)

	out, err := s.orchestrator.RemoveCombatant(s.ctx, &initiative.RemoveCombatantInput{
		SessionID:   sid,
		CombatantID: "c2",
		Confirmed:   true,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Aria"}, names(out.Snapshot))
}

func (s *OrchestratorTestSuite) TestUpdateHPDoesNotClampOrReload() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	updated := s.combatant("c1", "Aria", 18, 1)
	updated.CurrentHP = -7
	s.mockCombatants.EXPECT().
		UpdateHP(gomock.Any(), combatants.UpdateHPInput{ID: "c1", CurrentHP: -7}).
		Return(&combatants.UpdateHPOutput{Combatant: updated}, nil)

	out, err := s.orchestrator.UpdateHP(s.ctx, &initiative.UpdateHPInput{
		SessionID:   sid,
		CombatantID: "c1",
		CurrentHP:   -7,
	})
	s.Require().NoError(err)
	s.Equal(int32(-7), out.Snapshot.Combatants[0].CurrentHP)

	successes := s.notifications(notify.KindSuccess)
	s.Require().Len(successes, 1)
	s.Equal("c1", successes[0].CombatantID)
}

func (s *OrchestratorTestSuite) TestUpdateHPFailureReported() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	s.mockCombatants.EXPECT().
		UpdateHP(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("combatant with ID c1 not found"))

	_, err := s.orchestrator.UpdateHP(s.ctx, &initiative.UpdateHPInput{SessionID: sid, CombatantID: "c1", CurrentHP: 3})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal(int32(10), s.snapshot(sid).Combatants[0].CurrentHP)
}

func (s *OrchestratorTestSuite) TestUpdateInitiativeReloads() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2))

	raised := s.combatant("c2", "Goblin", 20, 2)
	s.mockCombatants.EXPECT().
		UpdateInitiative(gomock.Any(), combatants.UpdateInitiativeInput{ID: "c2", InitiativeValue: 20}).
		Return(&combatants.UpdateInitiativeOutput{Combatant: raised}, nil)
	s.expectLoad([]*entities.Combatant{raised, s.combatant("c1", "Aria", 18, 1)}, nil)

	out, err := s.orchestrator.UpdateInitiative(s.ctx, &initiative.UpdateInitiativeInput{
		SessionID:       sid,
		CombatantID:     "c2",
		InitiativeValue: 20,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Goblin", "Aria"}, names(out.Snapshot))
}

func (s *OrchestratorTestSuite) TestStartPrecondition() {
	sid := s.loaded()

	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "add combatants first")

	snap := s.snapshot(sid)
	s.Equal(initiative.StateNotStarted, snap.State)
	s.Zero(snap.RoundNumber)
	s.Zero(snap.CurrentTurnIndex)

	failures := s.notifications(notify.KindError)
	s.Require().Len(failures, 1)
	s.Equal("add combatants first", failures[0].Message)
}

func (s *OrchestratorTestSuite) TestStartSetsFirstTurn() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2))

	out, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	snap := out.Snapshot
	s.Equal(initiative.StateRunning, snap.State)
	s.True(snap.Running)
	s.Equal(1, snap.RoundNumber)
	s.Equal(1, snap.CurrentTurnIndex)
	s.Zero(snap.ElapsedSeconds)
	s.Require().NotNil(snap.Active)
	s.Equal("Aria", snap.Active.Name)

	_, err = s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestAdvanceRequiresRunning() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	_, err := s.orchestrator.AdvanceTurn(s.ctx, &initiative.AdvanceTurnInput{SessionID: sid})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "start combat first")

	snap := s.snapshot(sid)
	s.Equal(initiative.StateNotStarted, snap.State)
	s.Zero(snap.CurrentTurnIndex)
}

func (s *OrchestratorTestSuite) TestAdvanceWrapsToNextRound() {
	sid := s.loaded(
		s.combatant("c1", "Aria", 18, 1),
		s.combatant("c2", "Goblin", 12, 2),
		s.combatant("c3", "Orc", 8, 3),
	)
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	advance := func() *initiative.Snapshot {
		out, err := s.orchestrator.AdvanceTurn(s.ctx, &initiative.AdvanceTurnInput{SessionID: sid})
		s.Require().NoError(err)
		return out.Snapshot
	}

	snap := advance()
	s.Equal(2, snap.CurrentTurnIndex)
	s.Equal(1, snap.RoundNumber)

	snap = advance()
	s.Equal(3, snap.CurrentTurnIndex)
	s.Equal(1, snap.RoundNumber)
	s.Equal("Orc", snap.Active.Name)

	snap = advance()
	s.Equal(1, snap.CurrentTurnIndex)
	s.Equal(2, snap.RoundNumber)
	s.Equal("Aria", snap.Active.Name)
}

func (s *OrchestratorTestSuite) TestResetIsIdempotent() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2))
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)
	_, err = s.orchestrator.AdvanceTurn(s.ctx, &initiative.AdvanceTurnInput{SessionID: sid})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		out, err := s.orchestrator.ResetCombat(s.ctx, &initiative.ResetCombatInput{SessionID: sid})
		s.Require().NoError(err)
		s.Equal(initiative.StateNotStarted, out.Snapshot.State)
		s.False(out.Snapshot.Running)
		s.Zero(out.Snapshot.RoundNumber)
		s.Zero(out.Snapshot.CurrentTurnIndex)
		s.Zero(out.Snapshot.ElapsedSeconds)
		s.Nil(out.Snapshot.Active)
	}

	// a fresh session that never started resets to the same state
	other := s.open(testCampaignID)
	out, err := s.orchestrator.ResetCombat(s.ctx, &initiative.ResetCombatInput{SessionID: other})
	s.Require().NoError(err)
	s.Equal(initiative.StateNotStarted, out.Snapshot.State)
}

func (s *OrchestratorTestSuite) TestClockTicksWhileRunning() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	s.ticks <- s.now.Add(time.Second)
	s.ticks <- s.now.Add(2 * time.Second)

	s.Eventually(func() bool {
		return s.snapshot(sid).ElapsedSeconds == 2
	}, time.Second, 5*time.Millisecond)
	s.Eventually(func() bool {
		return len(s.notifications(notify.KindTick)) == 2
	}, time.Second, 5*time.Millisecond)

	_, err = s.orchestrator.ResetCombat(s.ctx, &initiative.ResetCombatInput{SessionID: sid})
	s.Require().NoError(err)

	// the clock goroutine is gone, so nothing receives further ticks
	select {
	case s.ticks <- s.now:
		s.Fail("clock still running after reset")
	case <-time.After(20 * time.Millisecond):
	}
	s.Zero(s.snapshot(sid).ElapsedSeconds)
}

func (s *OrchestratorTestSuite) TestClockCatchesUpAfterMissedTicks() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	// a slow storage call held the session while four ticks were dropped
	s.ticks <- s.now.Add(5 * time.Second)
	s.Eventually(func() bool {
		return s.snapshot(sid).ElapsedSeconds == 5
	}, time.Second, 5*time.Millisecond)

	s.ticks <- s.now.Add(6 * time.Second)
	s.Eventually(func() bool {
		return s.snapshot(sid).ElapsedSeconds == 6
	}, time.Second, 5*time.Millisecond)
}

func (s *OrchestratorTestSuite) TestCloseSessionStopsClock() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	_, err = s.orchestrator.CloseSession(s.ctx, &initiative.CloseSessionInput{SessionID: sid})
	s.Require().NoError(err)

	select {
	case s.ticks <- s.now:
		s.Fail("clock still running after close")
	case <-time.After(20 * time.Millisecond):
	}

	_, err = s.orchestrator.GetSession(s.ctx, &initiative.GetSessionInput{SessionID: sid})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestLoadCatalogFallsBackOnError() {
	sid := s.open(testCampaignID)
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.Unavailable("db locked"))

	out, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)
	s.True(out.Fallback)
	s.Equal(initiative.FallbackCatalog(), out.StatusTypes)
	s.Empty(s.notifications(notify.KindError))
}

func (s *OrchestratorTestSuite) TestLoadCatalogFallsBackOnEmpty() {
	sid := s.open(testCampaignID)
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{}, nil)

	out, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)
	s.True(out.Fallback)
	s.Require().Len(out.StatusTypes, 4)

	expected := map[string]string{
		"Incapacitated": "red",
		"Bleeding":      "red",
		"Poisoned":      "green",
		"Frightened":    "purple",
	}
	for _, st := range out.StatusTypes {
		s.Equal(expected[st.Name], st.Color)
		s.Contains(st.ID, initiative.FallbackIDPrefix)
	}

	// ids are stable across loads
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{}, nil)
	again, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)
	s.Equal(out.StatusTypes, again.StatusTypes)
}

func (s *OrchestratorTestSuite) TestLoadCatalogUsesRealRowsVerbatim() {
	sid := s.open(testCampaignID)
	stored := []entities.StatusType{{ID: "st_1", Name: "Blessed", Color: "gold", Description: "Add a d4"}}
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{StatusTypes: stored}, nil)

	out, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)
	s.False(out.Fallback)
	s.Equal(stored, out.StatusTypes)
	s.False(s.snapshot(sid).CatalogFallback)
}

func (s *OrchestratorTestSuite) TestUnknownStatusResolution() {
	sid := s.open(testCampaignID)
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{}, nil)
	_, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)

	s.expectLoad(
		[]*entities.Combatant{s.combatant("c1", "Aria", 18, 1)},
		map[string][]*entities.StatusAnnotation{
			"c1": {
				{ID: "a1", CombatantID: "c1", StatusTypeID: "st_deleted_real_id"},
				{ID: "a2", CombatantID: "c1", StatusTypeID: initiative.FallbackIDPrefix + "poisoned"},
			},
		},
	)
	out, err := s.orchestrator.Load(s.ctx, &initiative.LoadInput{SessionID: sid})
	s.Require().NoError(err)

	statuses := out.Snapshot.Combatants[0].Statuses
	s.Require().Len(statuses, 2)
	s.Equal(entities.UnknownStatusName, statuses[0].Type.Name)
	s.Equal(entities.UnknownStatusColor, statuses[0].Type.Color)
	s.Equal(entities.UnknownStatusDescription, statuses[0].Type.Description)
	s.Equal("Poisoned", statuses[1].Type.Name)
}

func (s *OrchestratorTestSuite) TestSearchStatuses() {
	sid := s.open(testCampaignID)
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("down"))
	_, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)

	search := func(q string) []string {
		out, err := s.orchestrator.SearchStatuses(s.ctx, &initiative.SearchStatusesInput{SessionID: sid, Query: q})
		s.Require().NoError(err)
		var got []string
		for _, st := range out.StatusTypes {
			got = append(got, st.Name)
		}
		return got
	}

	s.Equal([]string{"Incapacitated", "Bleeding", "Poisoned", "Frightened"}, search(""))
	s.Equal([]string{"Bleeding"}, search("BLEED"))
	s.Equal([]string{"Poisoned"}, search("attack rolls"))
	s.Empty(search("zzz"))
}

func (s *OrchestratorTestSuite) TestInspectStatus() {
	sid := s.open(testCampaignID)
	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{}, nil)
	_, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)

	out, err := s.orchestrator.InspectStatus(s.ctx, &initiative.InspectStatusInput{
		SessionID:    sid,
		StatusTypeID: initiative.FallbackIDPrefix + "bleeding",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Inspected)
	s.Equal("Bleeding", out.Inspected.Name)
	s.Equal("Bleeding", s.snapshot(sid).Inspected.Name)

	_, err = s.orchestrator.InspectStatus(s.ctx, &initiative.InspectStatusInput{SessionID: sid})
	s.Require().NoError(err)
	s.Nil(s.snapshot(sid).Inspected)
}

func (s *OrchestratorTestSuite) TestAttachAndDetachStatus() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	duration := int32(3)

	s.mockStatuses.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateStatusInput) (*combatants.CreateStatusOutput, error) {
			s.Equal("c1", input.Annotation.CombatantID)
			s.Equal("st_any", input.Annotation.StatusTypeID)
			s.Equal(&duration, input.Annotation.Duration)
			s.Equal("until end of next turn", input.Annotation.Notes)
			return &combatants.CreateStatusOutput{Annotation: input.Annotation}, nil
		})
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 1)}, nil)

	attached, err := s.orchestrator.AttachStatus(s.ctx, &initiative.AttachStatusInput{
		SessionID:    sid,
		CombatantID:  "c1",
		StatusTypeID: "st_any",
		Duration:     &duration,
		Notes:        "until end of next turn",
	})
	s.Require().NoError(err)
	s.NotEmpty(attached.Annotation.ID)

	s.mockStatuses.EXPECT().
		Delete(gomock.Any(), combatants.DeleteStatusInput{ID: attached.Annotation.ID}).
		Return(&combatants.DeleteStatusOutput{CombatantID: "c1"}, nil)
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 1)}, nil)

	_, err = s.orchestrator.DetachStatus(s.ctx, &initiative.DetachStatusInput{
		SessionID:    sid,
		AnnotationID: attached.Annotation.ID,
	})
	s.Require().NoError(err)
	s.Len(s.notifications(notify.KindSuccess), 2)
}

func (s *OrchestratorTestSuite) TestAttachStatusStorageRejects() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	s.mockStatuses.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("combatant with ID c1 not found"))

	_, err := s.orchestrator.AttachStatus(s.ctx, &initiative.AttachStatusInput{
		SessionID:    sid,
		CombatantID:  "c1",
		StatusTypeID: "st_any",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Len(s.notifications(notify.KindError), 1)
}

func (s *OrchestratorTestSuite) TestDropWithoutDragIsNoOp() {
	sid := s.loaded(s.combatant("c1", "Aria", 10, 1), s.combatant("c2", "Goblin", 10, 2))

	// no UpdatePosition expectation: any write fails the test
	out, err := s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "c1"})
	s.Require().NoError(err)
	s.False(out.Moved)
	s.Equal([]string{"Aria", "Goblin"}, names(out.Snapshot))
}

func (s *OrchestratorTestSuite) TestDropOnSelfIsNoOp() {
	sid := s.loaded(s.combatant("c1", "Aria", 10, 1), s.combatant("c2", "Goblin", 10, 2))

	_, err := s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c2"})
	s.Require().NoError(err)
	s.Equal("c2", s.snapshot(sid).PendingDragID)

	out, err := s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "c2"})
	s.Require().NoError(err)
	s.False(out.Moved)
	s.Equal([]string{"Aria", "Goblin"}, names(out.Snapshot))
	s.Empty(out.Snapshot.PendingDragID)
}

func (s *OrchestratorTestSuite) TestDropRewritesEveryPosition() {
	sid := s.loaded(
		s.combatant("c1", "A", 10, 1),
		s.combatant("c2", "B", 10, 2),
		s.combatant("c3", "C", 10, 3),
		s.combatant("c4", "D", 10, 4),
	)

	var (
		mu     sync.Mutex
		writes = map[string]int32{}
	)
	s.mockCombatants.EXPECT().
		UpdatePosition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.UpdatePositionInput) (*combatants.UpdatePositionOutput, error) {
			mu.Lock()
			writes[input.ID] = input.Position
			mu.Unlock()
			return &combatants.UpdatePositionOutput{}, nil
		}).Times(4)

	_, err := s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c4"})
	s.Require().NoError(err)
	out, err := s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "c2"})
	s.Require().NoError(err)
	s.True(out.Moved)

	s.Equal([]string{"A", "D", "B", "C"}, names(out.Snapshot))
	s.Equal(map[string]int32{"c1": 1, "c4": 2, "c2": 3, "c3": 4}, writes)

	positions := make([]int, 0, len(out.Snapshot.Combatants))
	for _, c := range out.Snapshot.Combatants {
		positions = append(positions, int(c.Position))
	}
	s.True(sort.IntsAreSorted(positions))
	s.Equal([]int{1, 2, 3, 4}, positions)
}

func (s *OrchestratorTestSuite) TestDropDownwardLandsBeforeTarget() {
	sid := s.loaded(
		s.combatant("c1", "A", 10, 1),
		s.combatant("c2", "B", 10, 2),
		s.combatant("c3", "C", 10, 3),
	)
	s.mockCombatants.EXPECT().
		UpdatePosition(gomock.Any(), gomock.Any()).
		Return(&combatants.UpdatePositionOutput{}, nil).
		Times(3)

	_, err := s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c1"})
	s.Require().NoError(err)
	out, err := s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "c3"})
	s.Require().NoError(err)
	s.Equal([]string{"B", "A", "C"}, names(out.Snapshot))
}

func (s *OrchestratorTestSuite) TestDropWriteFailureKeepsLocalOrder() {
	sid := s.loaded(
		s.combatant("c1", "A", 10, 1),
		s.combatant("c2", "B", 10, 2),
		s.combatant("c3", "C", 10, 3),
	)
	s.mockCombatants.EXPECT().
		UpdatePosition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.UpdatePositionInput) (*combatants.UpdatePositionOutput, error) {
			if input.ID == "c2" {
				return nil, errors.Internal("write timeout")
			}
			return &combatants.UpdatePositionOutput{}, nil
		}).Times(3)

	_, err := s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c3"})
	s.Require().NoError(err)
	_, err = s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "c1"})
	s.Require().Error(err)
	s.Contains(errors.GetMessage(err), "write timeout")

	s.Equal([]string{"C", "A", "B"}, names(s.snapshot(sid)))
	s.Len(s.notifications(notify.KindError), 1)
	s.Empty(s.notifications(notify.KindSuccess))
}

func (s *OrchestratorTestSuite) TestDropUnknownTarget() {
	sid := s.loaded(s.combatant("c1", "A", 10, 1), s.combatant("c2", "B", 10, 2))

	_, err := s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c1"})
	s.Require().NoError(err)
	_, err = s.orchestrator.DropOn(s.ctx, &initiative.DropOnInput{SessionID: sid, TargetID: "ghost"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	snap := s.snapshot(sid)
	s.Equal([]string{"A", "B"}, names(snap))
	s.Empty(snap.PendingDragID)
}

func (s *OrchestratorTestSuite) TestListAvailableNormalizesKinds() {
	sid := s.open(testCampaignID)

	s.mockRoster.EXPECT().
		ListPlayers(gomock.Any(), roster.ListPlayersInput{CampaignID: testCampaignID}).
		Return(&roster.ListPlayersOutput{Players: []*entities.Player{
			{ID: "p1", CampaignID: testCampaignID, CharacterName: "Thorin", PlayerName: "Sam", HPCurrent: 20, HPMax: 28, ArmorClass: 17},
		}}, nil)
	s.mockRoster.EXPECT().
		ListNPCs(gomock.Any(), roster.ListNPCsInput{CampaignID: testCampaignID}).
		Return(&roster.ListNPCsOutput{NPCs: []*entities.NPC{
			{ID: "n1", CampaignID: testCampaignID, Name: "Goblin", CurrentHP: 7, MaxHP: 7, AC: 15, Description: "sneaky"},
		}}, nil)

	players, err := s.orchestrator.ListAvailable(s.ctx, &initiative.ListAvailableInput{
		SessionID: sid,
		Kind:      entities.CharacterTypePlayer,
	})
	s.Require().NoError(err)
	s.Equal([]entities.RosterEntry{{
		ID: "p1", Kind: entities.CharacterTypePlayer, Name: "Thorin", CurrentHP: 20, MaxHP: 28, ArmorClass: 17,
	}}, players.Entries)

	npcs, err := s.orchestrator.ListAvailable(s.ctx, &initiative.ListAvailableInput{
		SessionID: sid,
		Kind:      entities.CharacterTypeNPC,
	})
	s.Require().NoError(err)
	s.Equal([]entities.RosterEntry{{
		ID: "n1", Kind: entities.CharacterTypeNPC, Name: "Goblin", CurrentHP: 7, MaxHP: 7, ArmorClass: 15, Notes: "sneaky",
	}}, npcs.Entries)
}

func (s *OrchestratorTestSuite) TestListAvailableRequiresCampaign() {
	sid := s.open("")

	_, err := s.orchestrator.ListAvailable(s.ctx, &initiative.ListAvailableInput{
		SessionID: sid,
		Kind:      entities.CharacterTypeNPC,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "no campaign selected")
}

func (s *OrchestratorTestSuite) TestListAvailableUnknownKind() {
	sid := s.open(testCampaignID)

	_, err := s.orchestrator.ListAvailable(s.ctx, &initiative.ListAvailableInput{SessionID: sid, Kind: "monster"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) expectGoblin() {
	s.mockRoster.EXPECT().
		GetNPC(gomock.Any(), roster.GetNPCInput{ID: "n1"}).
		Return(&roster.GetNPCOutput{NPC: &entities.NPC{
			ID: "n1", CampaignID: testCampaignID, Name: "Goblin", CurrentHP: 7, MaxHP: 9, AC: 15, Description: "sneaky",
		}}, nil)
}

func (s *OrchestratorTestSuite) TestInstantiateBulk() {
	sid := s.loaded()
	s.expectGoblin()

	var inserted []*entities.Combatant
	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateInput) (*combatants.CreateOutput, error) {
			inserted = clone(input.Combatants)
			return &combatants.CreateOutput{Combatants: input.Combatants}, nil
		})
	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ combatants.ListByCampaignInput) (*combatants.ListByCampaignOutput, error) {
			return &combatants.ListByCampaignOutput{Combatants: clone(inserted)}, nil
		})
	s.mockStatuses.EXPECT().
		ListByCombatantIDs(gomock.Any(), gomock.Any()).
		Return(&combatants.ListByCombatantIDsOutput{}, nil)

	out, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID: sid,
		Kind:      entities.CharacterTypeNPC,
		EntryID:   "n1",
		Quantity:  3,
	})
	s.Require().NoError(err)

	s.Require().Len(out.Created, 3)
	for i, c := range out.Created {
		s.Equal([]string{"Goblin 1", "Goblin 2", "Goblin 3"}[i], c.Name)
		s.Equal(int32(i+1), c.Position)
		s.Equal("n1", c.SourceCharacterID)
		s.Equal(int32(7), c.CurrentHP)
		s.Equal(int32(9), c.MaxHP)
		s.Equal(int32(15), c.ArmorClass)
		s.Equal("sneaky", c.Notes)
		s.Equal(entities.CharacterTypeNPC, c.CharacterType)
	}
	s.Len(out.Snapshot.Combatants, 3)
}

func (s *OrchestratorTestSuite) TestInstantiateSingleKeepsName() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 2))
	s.expectGoblin()

	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateInput) (*combatants.CreateOutput, error) {
			return &combatants.CreateOutput{Combatants: input.Combatants}, nil
		})
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 2)}, nil)

	out, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID:       sid,
		Kind:            entities.CharacterTypeNPC,
		EntryID:         "n1",
		Quantity:        1,
		InitiativeValue: 11,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Created, 1)
	s.Equal("Goblin", out.Created[0].Name)
	s.Equal(int32(3), out.Created[0].Position)
	s.Equal(int32(11), out.Created[0].InitiativeValue)
}

func (s *OrchestratorTestSuite) TestInstantiateRollsInitiative() {
	sid := s.loaded()
	s.expectGoblin()
	s.roller.value = 15

	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateInput) (*combatants.CreateOutput, error) {
			return &combatants.CreateOutput{Combatants: input.Combatants}, nil
		})
	s.expectLoad(nil, nil)

	out, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID:       sid,
		Kind:            entities.CharacterTypeNPC,
		EntryID:         "n1",
		Quantity:        2,
		RollInitiative:  true,
		InitiativeBonus: 2,
	})
	s.Require().NoError(err)
	for _, c := range out.Created {
		s.Equal(int32(17), c.InitiativeValue)
	}
}

func (s *OrchestratorTestSuite) TestInstantiateValidation() {
	sid := s.loaded()

	_, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID: sid,
		Kind:      entities.CharacterTypeNPC,
		EntryID:   "n1",
		Quantity:  0,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "quantity")

	noCampaign := s.open("")
	_, err = s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID: noCampaign,
		Kind:      entities.CharacterTypeNPC,
		EntryID:   "n1",
		Quantity:  1,
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestInstantiateRejectsOtherCampaign() {
	sid := s.loaded()
	s.mockRoster.EXPECT().
		GetPlayer(gomock.Any(), roster.GetPlayerInput{ID: "p9"}).
		Return(&roster.GetPlayerOutput{Player: &entities.Player{ID: "p9", CampaignID: "elsewhere", CharacterName: "Stranger"}}, nil)

	_, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID: sid,
		Kind:      entities.CharacterTypePlayer,
		EntryID:   "p9",
		Quantity:  1,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSelectCampaignResetsSession() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	out, err := s.orchestrator.SelectCampaign(s.ctx, &initiative.SelectCampaignInput{SessionID: sid})
	s.Require().NoError(err)
	s.Empty(out.Snapshot.CampaignID)
	s.Empty(out.Snapshot.Combatants)
	s.Equal(initiative.StateNotStarted, out.Snapshot.State)
}

func (s *OrchestratorTestSuite) TestSelectCampaignClearsCatalogInspectionAndDrag() {
	sid := s.loaded(s.combatant("c1", "Aria", 18, 1))

	s.mockCatalog.EXPECT().List(gomock.Any(), gomock.Any()).Return(&catalog.ListOutput{}, nil)
	_, err := s.orchestrator.LoadCatalog(s.ctx, &initiative.LoadCatalogInput{SessionID: sid})
	s.Require().NoError(err)
	_, err = s.orchestrator.InspectStatus(s.ctx, &initiative.InspectStatusInput{
		SessionID:    sid,
		StatusTypeID: initiative.FallbackIDPrefix + "bleeding",
	})
	s.Require().NoError(err)
	_, err = s.orchestrator.BeginDrag(s.ctx, &initiative.BeginDragInput{SessionID: sid, CombatantID: "c1"})
	s.Require().NoError(err)

	before := s.snapshot(sid)
	s.Len(before.Catalog, 4)
	s.True(before.CatalogFallback)
	s.NotNil(before.Inspected)
	s.Equal("c1", before.PendingDragID)

	s.expectInitialLoad("camp_2", nil)
	out, err := s.orchestrator.SelectCampaign(s.ctx, &initiative.SelectCampaignInput{SessionID: sid, CampaignID: "camp_2"})
	s.Require().NoError(err)

	snap := out.Snapshot
	s.Equal("camp_2", snap.CampaignID)
	s.Empty(snap.Combatants)
	s.Empty(snap.Catalog)
	s.False(snap.CatalogFallback)
	s.Nil(snap.Inspected)
	s.Empty(snap.PendingDragID)
}

func (s *OrchestratorTestSuite) TestOpenSessionLoadsStoredCombatants() {
	stored := []*entities.Combatant{s.combatant("c1", "Goblin 1", 12, 1), s.combatant("c2", "Goblin 2", 12, 2)}
	s.expectInitialLoad(testCampaignID, stored)
	s.mockStatuses.EXPECT().
		ListByCombatantIDs(gomock.Any(), combatants.ListByCombatantIDsInput{CombatantIDs: []string{"c1", "c2"}}).
		Return(&combatants.ListByCombatantIDsOutput{}, nil)

	opened, err := s.orchestrator.OpenSession(s.ctx, &initiative.OpenSessionInput{CampaignID: testCampaignID})
	s.Require().NoError(err)
	s.Require().NoError(opened.LoadErr)
	sid := opened.Snapshot.SessionID
	s.Equal([]string{"Goblin 1", "Goblin 2"}, names(opened.Snapshot))

	// stored combatants are enough to start
	_, err = s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)

	// new copies go after the stored maximum
	s.expectGoblin()
	var inserted []*entities.Combatant
	s.mockCombatants.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatants.CreateInput) (*combatants.CreateOutput, error) {
			inserted = clone(input.Combatants)
			return &combatants.CreateOutput{Combatants: input.Combatants}, nil
		})
	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ combatants.ListByCampaignInput) (*combatants.ListByCampaignOutput, error) {
			return &combatants.ListByCampaignOutput{Combatants: append(clone(stored), clone(inserted)...)}, nil
		})
	s.mockStatuses.EXPECT().
		ListByCombatantIDs(gomock.Any(), gomock.Any()).
		Return(&combatants.ListByCombatantIDsOutput{}, nil)

	out, err := s.orchestrator.Instantiate(s.ctx, &initiative.InstantiateInput{
		SessionID: sid,
		Kind:      entities.CharacterTypeNPC,
		EntryID:   "n1",
		Quantity:  2,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Created, 2)
	s.Equal(int32(3), out.Created[0].Position)
	s.Equal(int32(4), out.Created[1].Position)
	s.Len(out.Snapshot.Combatants, 4)
}

func (s *OrchestratorTestSuite) TestOpenSessionLoadFailureKeepsSessionOpen() {
	s.mockCombatants.EXPECT().
		ListByCampaign(gomock.Any(), combatants.ListByCampaignInput{CampaignID: testCampaignID}).
		Return(nil, errors.Unavailable("redis: connection refused"))

	out, err := s.orchestrator.OpenSession(s.ctx, &initiative.OpenSessionInput{CampaignID: testCampaignID})
	s.Require().NoError(err)
	s.Require().Error(out.LoadErr)
	s.Equal(errors.CodeUnavailable, errors.GetCode(out.LoadErr))
	s.Empty(out.Snapshot.Combatants)

	// the session exists and can retry
	s.Empty(s.snapshot(out.Snapshot.SessionID).Combatants)

	failures := s.notifications(notify.KindError)
	s.Require().Len(failures, 1)
	s.Equal(out.Snapshot.SessionID, failures[0].SessionID)
}

func (s *OrchestratorTestSuite) TestRemovingCombatantsKeepsTurnInRange() {
	sid := s.loaded(
		s.combatant("c1", "Aria", 18, 1),
		s.combatant("c2", "Goblin", 12, 2),
		s.combatant("c3", "Orc", 8, 3),
	)
	_, err := s.orchestrator.StartCombat(s.ctx, &initiative.StartCombatInput{SessionID: sid})
	s.Require().NoError(err)
	for i := 0; i < 2; i++ {
		_, err = s.orchestrator.AdvanceTurn(s.ctx, &initiative.AdvanceTurnInput{SessionID: sid})
		s.Require().NoError(err)
	}
	s.Equal("Orc", s.snapshot(sid).Active.Name)

	// the active last combatant leaves; the turn moves to the new last
	s.mockCombatants.EXPECT().Delete(gomock.Any(), combatants.DeleteInput{ID: "c3"}).Return(&combatants.DeleteOutput{}, nil)
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 1), s.combatant("c2", "Goblin", 12, 2)}, nil)
	out, err := s.orchestrator.RemoveCombatant(s.ctx, &initiative.RemoveCombatantInput{SessionID: sid, CombatantID: "c3", Confirmed: true})
	s.Require().NoError(err)
	s.Equal(2, out.Snapshot.CurrentTurnIndex)
	s.Require().NotNil(out.Snapshot.Active)
	s.Equal("Goblin", out.Snapshot.Active.Name)

	// with nobody left there is no turn to advance to
	s.mockCombatants.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&combatants.DeleteOutput{}, nil).Times(2)
	s.expectLoad([]*entities.Combatant{s.combatant("c1", "Aria", 18, 1)}, nil)
	s.expectLoad(nil, nil)
	for _, id := range []string{"c2", "c1"} {
		_, err = s.orchestrator.RemoveCombatant(s.ctx, &initiative.RemoveCombatantInput{SessionID: sid, CombatantID: id, Confirmed: true})
		s.Require().NoError(err)
	}

	snap := s.snapshot(sid)
	s.True(snap.Running)
	s.Zero(snap.CurrentTurnIndex)
	s.Nil(snap.Active)

	_, err = s.orchestrator.AdvanceTurn(s.ctx, &initiative.AdvanceTurnInput{SessionID: sid})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(1, s.snapshot(sid).RoundNumber)
}
