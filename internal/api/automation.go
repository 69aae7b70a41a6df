package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/officegrid/officegrid-core/internal/automation"
	"github.com/officegrid/officegrid-core/internal/events"
)

// ─── Request/Response Types ────────────────────────────────────────

// createRuleRequest is the request body for POST /automation/rules.
type createRuleRequest struct {
	Trigger     automation.TriggerType  `json:"trigger"`
	Condition   automation.Condition    `json:"condition"`
	Action      automation.ActionType   `json:"action"`
	Params      automation.ActionParams `json:"params"`
	Description string                  `json:"description"`
}

// injectMotionRequest is the request body for POST /automation/motion.
type injectMotionRequest struct {
	Area string `json:"area"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleListRules returns all automation rules in creation order.
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.rules.ListRules(r.Context())
	if err != nil {
		s.logger.Error("list rules failed", "error", err)
		writeInternalError(w, "failed to list rules")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rules": rules,
		"count": len(rules),
	})
}

// handleCreateRule creates a new automation rule. The rule is active
// immediately.
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	rule := &automation.Rule{
		Trigger:     req.Trigger,
		Condition:   req.Condition,
		Action:      req.Action,
		Params:      req.Params,
		Active:      true,
		Description: req.Description,
	}

	if err := s.rules.CreateRule(r.Context(), rule); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "rule_created", "rule", strconv.FormatInt(rule.ID, 10))
	writeJSON(w, http.StatusCreated, rule)
}

// handleToggleRule flips a rule between active and inactive.
func (s *Server) handleToggleRule(w http.ResponseWriter, r *http.Request) {
	id, ok := ruleID(w, r)
	if !ok {
		return
	}

	rule, err := s.rules.ToggleRule(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "rule_toggled", "rule", strconv.FormatInt(rule.ID, 10))
	writeJSON(w, http.StatusOK, rule)
}

// handleTestRule runs a rule's action directly, bypassing its trigger
// and active flag. Useful when commissioning a new rule.
func (s *Server) handleTestRule(w http.ResponseWriter, r *http.Request) {
	id, ok := ruleID(w, r)
	if !ok {
		return
	}

	if s.engine == nil {
		writeNotFound(w, "rule engine not configured")
		return
	}

	rule, err := s.engine.TestRule(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tested": rule,
	})
}

// handleDeleteRule permanently removes a rule.
func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := ruleID(w, r)
	if !ok {
		return
	}

	if err := s.rules.DeleteRule(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "rule_deleted", "rule", strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": id,
	})
}

// handleInjectMotion publishes a synthetic motion event on the
// facility bus, as if a motion sensor had reported. Admin only; used
// for exercising rules without physical sensors.
func (s *Server) handleInjectMotion(w http.ResponseWriter, r *http.Request) {
	var req injectMotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Area == "" {
		writeBadRequest(w, "area is required")
		return
	}

	if s.bus == nil {
		writeNotFound(w, "event bus not configured")
		return
	}

	published := s.bus.Publish(r.Context(), events.Motion(req.Area))

	writeJSON(w, http.StatusOK, map[string]any{
		"published": published,
		"area":      req.Area,
	})
}

// handleEnergySavings returns the accumulated energy savings totals.
func (s *Server) handleEnergySavings(w http.ResponseWriter, _ *http.Request) {
	if s.energy == nil {
		writeNotFound(w, "energy ledger not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.energy.Totals())
}

// ruleID parses the {id} path parameter. Writes a 400 and returns
// false on garbage.
func ruleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "rule id must be an integer")
		return 0, false
	}
	return id, true
}
