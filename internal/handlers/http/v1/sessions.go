package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

type campaignRequest struct {
	CampaignID string `json:"campaign_id"`
}

type addCombatantsRequest struct {
	Combatants []initiative.CombatantDraft `json:"combatants"`
}

type hpRequest struct {
	CurrentHP int32 `json:"current_hp"`
}

type initiativeRequest struct {
	InitiativeValue int32 `json:"initiative_value"`
}

type dragRequest struct {
	CombatantID string `json:"combatant_id"`
}

type dropRequest struct {
	TargetID string `json:"target_id"`
}

type dropResponse struct {
	Moved    bool                 `json:"moved"`
	Snapshot *initiative.Snapshot `json:"snapshot"`
}

type attachStatusRequest struct {
	StatusTypeID string `json:"status_type_id"`
	Duration     *int32 `json:"duration,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type attachStatusResponse struct {
	Annotation *entities.StatusAnnotation `json:"annotation"`
	Snapshot   *initiative.Snapshot       `json:"snapshot"`
}

type catalogResponse struct {
	StatusTypes []entities.StatusType `json:"status_types"`
	Fallback    bool                  `json:"fallback"`
}

type inspectRequest struct {
	StatusTypeID string `json:"status_type_id"`
}

type inspectResponse struct {
	Inspected *entities.StatusType `json:"inspected"`
}

type rosterResponse struct {
	Entries []entities.RosterEntry `json:"entries"`
}

type instantiateRequest struct {
	Quantity        int   `json:"quantity"`
	RollInitiative  bool  `json:"roll_initiative"`
	InitiativeBonus int32 `json:"initiative_bonus"`
	InitiativeValue int32 `json:"initiative_value"`
}

type instantiateResponse struct {
	Created  []*entities.Combatant `json:"created"`
	Snapshot *initiative.Snapshot  `json:"snapshot"`
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.OpenSession(r.Context(), &initiative.OpenSessionInput{CampaignID: req.CampaignID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Snapshot)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.GetSession(r.Context(), &initiative.GetSessionInput{SessionID: mux.Vars(r)["sid"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.CloseSession(r.Context(), &initiative.CloseSessionInput{SessionID: mux.Vars(r)["sid"]})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selectCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.SelectCampaign(r.Context(), &initiative.SelectCampaignInput{
		SessionID:  mux.Vars(r)["sid"],
		CampaignID: req.CampaignID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Load(r.Context(), &initiative.LoadInput{SessionID: mux.Vars(r)["sid"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) addCombatants(w http.ResponseWriter, r *http.Request) {
	var req addCombatantsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.AddCombatants(r.Context(), &initiative.AddCombatantsInput{
		SessionID: mux.Vars(r)["sid"],
		Drafts:    req.Combatants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Snapshot)
}

func (h *Handler) removeCombatant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.service.RemoveCombatant(r.Context(), &initiative.RemoveCombatantInput{
		SessionID:   vars["sid"],
		CombatantID: vars["cid"],
		Confirmed:   r.URL.Query().Get("confirm") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) updateHP(w http.ResponseWriter, r *http.Request) {
	var req hpRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.service.UpdateHP(r.Context(), &initiative.UpdateHPInput{
		SessionID:   vars["sid"],
		CombatantID: vars["cid"],
		CurrentHP:   req.CurrentHP,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) updateInitiative(w http.ResponseWriter, r *http.Request) {
	var req initiativeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.service.UpdateInitiative(r.Context(), &initiative.UpdateInitiativeInput{
		SessionID:       vars["sid"],
		CombatantID:     vars["cid"],
		InitiativeValue: req.InitiativeValue,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) combat(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sid := vars["sid"]

	var (
		snap *initiative.Snapshot
		err  error
	)
	switch vars["action"] {
	case "start":
		var out *initiative.StartCombatOutput
		if out, err = h.service.StartCombat(r.Context(), &initiative.StartCombatInput{SessionID: sid}); err == nil {
			snap = out.Snapshot
		}
	case "advance":
		var out *initiative.AdvanceTurnOutput
		if out, err = h.service.AdvanceTurn(r.Context(), &initiative.AdvanceTurnInput{SessionID: sid}); err == nil {
			snap = out.Snapshot
		}
	default:
		var out *initiative.ResetCombatOutput
		if out, err = h.service.ResetCombat(r.Context(), &initiative.ResetCombatInput{SessionID: sid}); err == nil {
			snap = out.Snapshot
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) beginDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	_, err := h.service.BeginDrag(r.Context(), &initiative.BeginDragInput{
		SessionID:   mux.Vars(r)["sid"],
		CombatantID: req.CombatantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dropOn(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.DropOn(r.Context(), &initiative.DropOnInput{
		SessionID: mux.Vars(r)["sid"],
		TargetID:  req.TargetID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dropResponse{Moved: out.Moved, Snapshot: out.Snapshot})
}

func (h *Handler) loadCatalog(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.LoadCatalog(r.Context(), &initiative.LoadCatalogInput{SessionID: mux.Vars(r)["sid"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{StatusTypes: out.StatusTypes, Fallback: out.Fallback})
}

func (h *Handler) searchStatuses(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.SearchStatuses(r.Context(), &initiative.SearchStatusesInput{
		SessionID: mux.Vars(r)["sid"],
		Query:     r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{StatusTypes: out.StatusTypes})
}

func (h *Handler) inspectStatus(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.InspectStatus(r.Context(), &initiative.InspectStatusInput{
		SessionID:    mux.Vars(r)["sid"],
		StatusTypeID: req.StatusTypeID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inspectResponse{Inspected: out.Inspected})
}

func (h *Handler) attachStatus(w http.ResponseWriter, r *http.Request) {
	var req attachStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.StatusTypeID == "" {
		writeError(w, errors.InvalidArgument("status_type_id is required"))
		return
	}

	vars := mux.Vars(r)
	out, err := h.service.AttachStatus(r.Context(), &initiative.AttachStatusInput{
		SessionID:    vars["sid"],
		CombatantID:  vars["cid"],
		StatusTypeID: req.StatusTypeID,
		Duration:     req.Duration,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attachStatusResponse{Annotation: out.Annotation, Snapshot: out.Snapshot})
}

func (h *Handler) detachStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.service.DetachStatus(r.Context(), &initiative.DetachStatusInput{
		SessionID:    vars["sid"],
		AnnotationID: vars["aid"],
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Snapshot)
}

func (h *Handler) listAvailable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.service.ListAvailable(r.Context(), &initiative.ListAvailableInput{
		SessionID: vars["sid"],
		Kind:      entities.CharacterType(vars["kind"]),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{Entries: out.Entries})
}

func (h *Handler) instantiate(w http.ResponseWriter, r *http.Request) {
	req := instantiateRequest{Quantity: 1}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.service.Instantiate(r.Context(), &initiative.InstantiateInput{
		SessionID:       vars["sid"],
		Kind:            entities.CharacterType(vars["kind"]),
		EntryID:         vars["eid"],
		Quantity:        req.Quantity,
		RollInitiative:  req.RollInitiative,
		InitiativeBonus: req.InitiativeBonus,
		InitiativeValue: req.InitiativeValue,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, instantiateResponse{Created: out.Created, Snapshot: out.Snapshot})
}
