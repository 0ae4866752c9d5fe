package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	v1 "github.com/KirkDiggler/rpg-initiative/internal/handlers/http/v1"
	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
	initiativemock "github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative/mock"
)

const testSecret = "test-secret"

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *initiativemock.MockService
	bus         *notify.Bus
	routes      http.Handler
	ctx         context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = initiativemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	bus, err := notify.New(&notify.Config{EventBus: events.NewBus()})
	s.Require().NoError(err)
	s.bus = bus

	s.routes = s.newRoutes("")
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) newRoutes(secret string) http.Handler {
	h, err := v1.NewHandler(&v1.HandlerConfig{
		Service:       s.mockService,
		Notifications: s.bus,
		JWTSecret:     secret,
	})
	s.Require().NoError(err)
	return h.Routes()
}

func (s *HandlerTestSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.routes.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeBody(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst))
}

func snapshot(sid string) *initiative.Snapshot {
	return &initiative.Snapshot{
		SessionID:  sid,
		CampaignID: "camp_1",
		State:      initiative.StateNotStarted,
		Combatants: []*initiative.CombatantView{{
			Combatant: &entities.Combatant{ID: "c1", Name: "Aria", InitiativeValue: 18, Position: 1},
			Statuses:  []entities.ResolvedStatus{},
		}},
	}
}

func signed(secret, subject string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject})
	raw, err := token.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return raw
}

func (s *HandlerTestSuite) TestNewHandlerValidation() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestOpenSession() {
	s.mockService.EXPECT().
		OpenSession(gomock.Any(), &initiative.OpenSessionInput{CampaignID: "camp_1"}).
		Return(&initiative.OpenSessionOutput{Snapshot: snapshot("sess_1")}, nil)

	rec := s.do(http.MethodPost, "/v1/sessions", `{"campaign_id":"camp_1"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	s.decodeBody(rec, &body)
	s.Equal("sess_1", body["session_id"])
	s.Equal("not_started", body["state"])

	combatants := body["combatants"].([]any)
	s.Require().Len(combatants, 1)
	first := combatants[0].(map[string]any)
	s.Equal("Aria", first["name"])
	s.EqualValues(18, first["initiative_value"])
}

func (s *HandlerTestSuite) TestMalformedBody() {
	rec := s.do(http.MethodPost, "/v1/sessions", `{"campaign_id":`)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body map[string]any
	s.decodeBody(rec, &body)
	s.Equal(errors.CodeInvalidArgument.String(), body["code"])
}

func (s *HandlerTestSuite) TestErrorStatusMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{errors.FailedPrecondition("add combatants first"), http.StatusConflict},
		{errors.NotFound("session sess_x not found"), http.StatusNotFound},
		{errors.Unavailable("redis down"), http.StatusServiceUnavailable},
		{errors.Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		s.mockService.EXPECT().
			StartCombat(gomock.Any(), &initiative.StartCombatInput{SessionID: "sess_1"}).
			Return(nil, tc.err)

		rec := s.do(http.MethodPost, "/v1/sessions/sess_1/combat/start", "")
		s.Equal(tc.status, rec.Code)

		var body map[string]any
		s.decodeBody(rec, &body)
		s.Equal(errors.GetMessage(tc.err), body["message"])
	}
}

func (s *HandlerTestSuite) TestValidationFieldsReturned() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("drafts[0].name")

	s.mockService.EXPECT().
		AddCombatants(gomock.Any(), gomock.Any()).
		Return(nil, vb.Build())

	rec := s.do(http.MethodPost, "/v1/sessions/sess_1/combatants", `{"combatants":[{"name":""}]}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body struct {
		Code   string              `json:"code"`
		Fields map[string][]string `json:"fields"`
	}
	s.decodeBody(rec, &body)
	s.Equal(errors.CodeInvalidArgument.String(), body.Code)
	s.Equal([]string{"is required"}, body.Fields["drafts[0].name"])
}

func (s *HandlerTestSuite) TestAddCombatants() {
	s.mockService.EXPECT().
		AddCombatants(gomock.Any(), &initiative.AddCombatantsInput{
			SessionID: "sess_1",
			Drafts: []initiative.CombatantDraft{
				{Name: "Wolf", InitiativeValue: 14, CurrentHP: 11, MaxHP: 11, ArmorClass: 13},
			},
		}).
		Return(&initiative.AddCombatantsOutput{Snapshot: snapshot("sess_1")}, nil)

	rec := s.do(http.MethodPost, "/v1/sessions/sess_1/combatants",
		`{"combatants":[{"name":"Wolf","initiative_value":14,"current_hp":11,"max_hp":11,"armor_class":13}]}`)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerTestSuite) TestCombatActions() {
	s.mockService.EXPECT().
		AdvanceTurn(gomock.Any(), &initiative.AdvanceTurnInput{SessionID: "sess_1"}).
		Return(&initiative.AdvanceTurnOutput{Snapshot: snapshot("sess_1")}, nil)
	s.mockService.EXPECT().
		ResetCombat(gomock.Any(), &initiative.ResetCombatInput{SessionID: "sess_1"}).
		Return(&initiative.ResetCombatOutput{Snapshot: snapshot("sess_1")}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/sessions/sess_1/combat/advance", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/sessions/sess_1/combat/reset", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/v1/sessions/sess_1/combat/pause", "").Code)
}

func (s *HandlerTestSuite) TestRemoveCombatantPassesConfirmation() {
	s.mockService.EXPECT().
		RemoveCombatant(gomock.Any(), &initiative.RemoveCombatantInput{SessionID: "sess_1", CombatantID: "c1"}).
		Return(nil, errors.FailedPrecondition("removal must be confirmed"))
	s.mockService.EXPECT().
		RemoveCombatant(gomock.Any(), &initiative.RemoveCombatantInput{
			SessionID: "sess_1", CombatantID: "c1", Confirmed: true,
		}).
		Return(&initiative.RemoveCombatantOutput{Snapshot: snapshot("sess_1")}, nil)

	s.Equal(http.StatusConflict, s.do(http.MethodDelete, "/v1/sessions/sess_1/combatants/c1", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/v1/sessions/sess_1/combatants/c1?confirm=true", "").Code)
}

func (s *HandlerTestSuite) TestUpdateHP() {
	s.mockService.EXPECT().
		UpdateHP(gomock.Any(), &initiative.UpdateHPInput{SessionID: "sess_1", CombatantID: "c1", CurrentHP: -4}).
		Return(&initiative.UpdateHPOutput{Snapshot: snapshot("sess_1")}, nil)

	rec := s.do(http.MethodPut, "/v1/sessions/sess_1/combatants/c1/hp", `{"current_hp":-4}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestSelectCampaign() {
	s.mockService.EXPECT().
		SelectCampaign(gomock.Any(), &initiative.SelectCampaignInput{SessionID: "sess_1", CampaignID: "camp_2"}).
		Return(&initiative.SelectCampaignOutput{Snapshot: snapshot("sess_1")}, nil)

	rec := s.do(http.MethodPut, "/v1/sessions/sess_1/campaign", `{"campaign_id":"camp_2"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestDragAndDrop() {
	gomock.InOrder(
		s.mockService.EXPECT().
			BeginDrag(gomock.Any(), &initiative.BeginDragInput{SessionID: "sess_1", CombatantID: "c2"}).
			Return(&initiative.BeginDragOutput{}, nil),
		s.mockService.EXPECT().
			DropOn(gomock.Any(), &initiative.DropOnInput{SessionID: "sess_1", TargetID: "c1"}).
			Return(&initiative.DropOnOutput{Moved: true, Snapshot: snapshot("sess_1")}, nil),
	)

	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/v1/sessions/sess_1/drag", `{"combatant_id":"c2"}`).Code)

	rec := s.do(http.MethodPost, "/v1/sessions/sess_1/drop", `{"target_id":"c1"}`)
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Moved    bool `json:"moved"`
		Snapshot struct {
			SessionID string `json:"session_id"`
		} `json:"snapshot"`
	}
	s.decodeBody(rec, &body)
	s.True(body.Moved)
	s.Equal("sess_1", body.Snapshot.SessionID)
}

func (s *HandlerTestSuite) TestCatalogRoutes() {
	fallback := initiative.FallbackCatalog()
	s.mockService.EXPECT().
		LoadCatalog(gomock.Any(), &initiative.LoadCatalogInput{SessionID: "sess_1"}).
		Return(&initiative.LoadCatalogOutput{StatusTypes: fallback, Fallback: true}, nil)
	s.mockService.EXPECT().
		SearchStatuses(gomock.Any(), &initiative.SearchStatusesInput{SessionID: "sess_1", Query: "bleed"}).
		Return(&initiative.SearchStatusesOutput{StatusTypes: fallback[1:2]}, nil)
	s.mockService.EXPECT().
		InspectStatus(gomock.Any(), &initiative.InspectStatusInput{SessionID: "sess_1", StatusTypeID: fallback[0].ID}).
		Return(&initiative.InspectStatusOutput{Inspected: &fallback[0]}, nil)

	rec := s.do(http.MethodPost, "/v1/sessions/sess_1/catalog/load", "")
	s.Equal(http.StatusOK, rec.Code)
	var loaded struct {
		StatusTypes []entities.StatusType `json:"status_types"`
		Fallback    bool                  `json:"fallback"`
	}
	s.decodeBody(rec, &loaded)
	s.True(loaded.Fallback)
	s.Len(loaded.StatusTypes, 4)

	rec = s.do(http.MethodGet, "/v1/sessions/sess_1/catalog?q=bleed", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/v1/sessions/sess_1/catalog/inspect", `{"status_type_id":"`+fallback[0].ID+`"}`)
	s.Equal(http.StatusOK, rec.Code)
	var inspected struct {
		Inspected entities.StatusType `json:"inspected"`
	}
	s.decodeBody(rec, &inspected)
	s.Equal("Incapacitated", inspected.Inspected.Name)
}

func (s *HandlerTestSuite) TestAttachStatus() {
	duration := int32(2)
	s.mockService.EXPECT().
		AttachStatus(gomock.Any(), &initiative.AttachStatusInput{
			SessionID: "sess_1", CombatantID: "c1", StatusTypeID: "st_1", Duration: &duration,
		}).
		Return(&initiative.AttachStatusOutput{
			Annotation: &entities.StatusAnnotation{ID: "a1", CombatantID: "c1", StatusTypeID: "st_1", Duration: &duration},
			Snapshot:   snapshot("sess_1"),
		}, nil)

	rec := s.do(http.MethodPost, "/v1/sessions/sess_1/combatants/c1/statuses", `{"status_type_id":"st_1","duration":2}`)
	s.Equal(http.StatusCreated, rec.Code)

	// status type is checked before reaching the service
	rec = s.do(http.MethodPost, "/v1/sessions/sess_1/combatants/c1/statuses", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestDetachStatus() {
	s.mockService.EXPECT().
		DetachStatus(gomock.Any(), &initiative.DetachStatusInput{SessionID: "sess_1", AnnotationID: "a1"}).
		Return(&initiative.DetachStatusOutput{Snapshot: snapshot("sess_1")}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/v1/sessions/sess_1/statuses/a1", "").Code)
}

func (s *HandlerTestSuite) TestRosterRoutes() {
	s.mockService.EXPECT().
		ListAvailable(gomock.Any(), &initiative.ListAvailableInput{SessionID: "sess_1", Kind: entities.CharacterTypeNPC}).
		Return(&initiative.ListAvailableOutput{Entries: []entities.RosterEntry{{ID: "n1", Kind: entities.CharacterTypeNPC, Name: "Goblin"}}}, nil)
	s.mockService.EXPECT().
		Instantiate(gomock.Any(), &initiative.InstantiateInput{
			SessionID: "sess_1", Kind: entities.CharacterTypeNPC, EntryID: "n1", Quantity: 1,
		}).
		Return(&initiative.InstantiateOutput{Snapshot: snapshot("sess_1")}, nil)
	s.mockService.EXPECT().
		Instantiate(gomock.Any(), &initiative.InstantiateInput{
			SessionID: "sess_1", Kind: entities.CharacterTypeNPC, EntryID: "n1", Quantity: 3,
			RollInitiative: true, InitiativeBonus: 2,
		}).
		Return(&initiative.InstantiateOutput{Snapshot: snapshot("sess_1")}, nil)

	rec := s.do(http.MethodGet, "/v1/sessions/sess_1/roster/npc", "")
	s.Equal(http.StatusOK, rec.Code)
	var listed struct {
		Entries []entities.RosterEntry `json:"entries"`
	}
	s.decodeBody(rec, &listed)
	s.Require().Len(listed.Entries, 1)
	s.Equal("Goblin", listed.Entries[0].Name)

	// quantity defaults to one
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/v1/sessions/sess_1/roster/npc/n1/instantiate", "").Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/v1/sessions/sess_1/roster/npc/n1/instantiate",
		`{"quantity":3,"roll_initiative":true,"initiative_bonus":2}`).Code)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/sessions/sess_1/roster/monster", "").Code)
}

func (s *HandlerTestSuite) TestCloseSession() {
	s.mockService.EXPECT().
		CloseSession(gomock.Any(), &initiative.CloseSessionInput{SessionID: "sess_1"}).
		Return(&initiative.CloseSessionOutput{}, nil)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/v1/sessions/sess_1", "").Code)
}

func (s *HandlerTestSuite) TestAuthRequiresToken() {
	s.routes = s.newRoutes(testSecret)

	rec := s.do(http.MethodGet, "/v1/sessions/sess_1", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/v1/sessions/sess_1", "", "Authorization", "Bearer "+signed("wrong-secret", "gm_1"))
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/v1/sessions/sess_1", "", "Authorization", "Bearer "+signed(testSecret, ""))
	s.Equal(http.StatusUnauthorized, rec.Code)

	// health stays open
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)
}

func (s *HandlerTestSuite) TestAuthAcceptsValidToken() {
	s.routes = s.newRoutes(testSecret)
	s.mockService.EXPECT().
		GetSession(gomock.Any(), &initiative.GetSessionInput{SessionID: "sess_1"}).
		DoAndReturn(func(ctx context.Context, _ *initiative.GetSessionInput) (*initiative.GetSessionOutput, error) {
			subject, ok := v1.SubjectFromContext(ctx)
			s.True(ok)
			s.Equal("gm_1", subject)
			return &initiative.GetSessionOutput{Snapshot: snapshot("sess_1")}, nil
		}).Times(2)

	rec := s.do(http.MethodGet, "/v1/sessions/sess_1", "", "Authorization", "Bearer "+signed(testSecret, "gm_1"))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/v1/sessions/sess_1?access_token="+signed(testSecret, "gm_1"), "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestEventStream() {
	s.mockService.EXPECT().
		GetSession(gomock.Any(), &initiative.GetSessionInput{SessionID: "sess_1"}).
		Return(&initiative.GetSessionOutput{Snapshot: snapshot("sess_1")}, nil)

	server := httptest.NewServer(s.routes)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/sessions/sess_1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()
	s.Equal(http.StatusSwitchingProtocols, resp.StatusCode)

	s.bus.Notify(s.ctx, notify.Success("sess_other", "not for us"))
	s.bus.Notify(s.ctx, notify.Tick("sess_1", 3))

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var n notify.Notification
	s.Require().NoError(conn.ReadJSON(&n))
	s.Equal("sess_1", n.SessionID)
	s.Equal(notify.KindTick, n.Kind)
	s.EqualValues(3, n.ElapsedSeconds)
}

func (s *HandlerTestSuite) TestEventStreamUnknownSession() {
	s.mockService.EXPECT().
		GetSession(gomock.Any(), &initiative.GetSessionInput{SessionID: "nope"}).
		Return(nil, errors.NotFound("session nope not found"))

	server := httptest.NewServer(s.routes)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/sessions/nope/events"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
