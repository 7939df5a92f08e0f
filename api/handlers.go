package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/services"

	log "github.com/sirupsen/logrus"
)

type enterRequest struct {
	Participant string `json:"participant"`
	FeePaid     int64  `json:"fee_paid"`
}

type enterResponse struct {
	EntryIndex  int   `json:"entry_index"`
	EntryCount  int   `json:"entry_count"`
	PooledValue int64 `json:"pooled_value"`
}

type roundResponse struct {
	State            entities.RoundState `json:"state"`
	EntryCount       int                 `json:"entry_count"`
	Entries          []string            `json:"entries,omitempty"`
	PooledValue      int64               `json:"pooled_value"`
	LastDrawTime     time.Time           `json:"last_draw_time"`
	PendingRequestID *string             `json:"pending_request_id,omitempty"`
}

type upkeepResponse struct {
	RequestID string `json:"request_id"`
}

type drawResponse struct {
	RequestID     string    `json:"request_id"`
	RandomWord    int64     `json:"random_word"`
	WinnerAddress string    `json:"winner_address"`
	WinnerIndex   int       `json:"winner_index"`
	PotAmount     int64     `json:"pot_amount"`
	EntryCount    int       `json:"entry_count"`
	CompletedAt   time.Time `json:"completed_at"`
}

type errorResponse struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	snapshot := s.raffle.Snapshot()
	writeJSON(w, http.StatusOK, roundResponse{
		State:            snapshot.State,
		EntryCount:       snapshot.EntryCount(),
		Entries:          snapshot.Entries,
		PooledValue:      snapshot.PooledValue,
		LastDrawTime:     snapshot.LastDrawTime,
		PendingRequestID: snapshot.PendingRequestID,
	})
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	var req enterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	if req.Participant == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "participant is required", nil)
		return
	}

	result, err := s.raffle.Enter(r.Context(), req.Participant, req.FeePaid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.metrics.RecordEntry()
	writeJSON(w, http.StatusCreated, enterResponse{
		EntryIndex:  result.EntryIndex,
		EntryCount:  result.EntryCount,
		PooledValue: result.PooledValue,
	})
}

func (s *Server) handlePerformUpkeep(w http.ResponseWriter, r *http.Request) {
	requestID, err := s.raffle.PerformUpkeep(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.metrics.RecordDrawStarted()
	writeJSON(w, http.StatusAccepted, upkeepResponse{RequestID: requestID})
}

func (s *Server) handleListDraws(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	records, err := s.raffle.ListDraws(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to list draws", nil)
		return
	}

	draws := make([]drawResponse, 0, len(records))
	for _, record := range records {
		draws = append(draws, drawResponse{
			RequestID:     record.RequestID,
			RandomWord:    record.RandomWord,
			WinnerAddress: record.WinnerAddress,
			WinnerIndex:   record.WinnerIndex,
			PotAmount:     record.PotAmount,
			EntryCount:    record.EntryCount,
			CompletedAt:   record.CompletedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"draws": draws})
}

// writeServiceError maps the service error taxonomy to HTTP statuses so
// callers can tell "not yet time" apart from provider or payout problems
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var notNeeded *services.UpkeepNotNeededError
	switch {
	case errors.Is(err, services.ErrInsufficientFee):
		writeError(w, http.StatusConflict, "insufficient_fee", err.Error(), nil)
	case errors.Is(err, services.ErrRoundNotOpen):
		writeError(w, http.StatusConflict, "round_not_open", err.Error(), nil)
	case errors.As(err, &notNeeded):
		writeError(w, http.StatusConflict, "upkeep_not_needed", err.Error(), map[string]any{
			"state":                notNeeded.State,
			"entry_count":          notNeeded.EntryCount,
			"pooled_value":         notNeeded.PooledValue,
			"time_since_last_draw": notNeeded.TimeSinceLastDraw.String(),
		})
	case errors.Is(err, services.ErrProviderUnavailable):
		writeError(w, http.StatusBadGateway, "provider_unavailable", err.Error(), nil)
	case errors.Is(err, services.ErrTransferFailed):
		writeError(w, http.StatusBadGateway, "transfer_failed", err.Error(), nil)
	default:
		log.WithError(err).Error("unexpected service error")
		writeError(w, http.StatusInternalServerError, "internal", "internal error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string, details map[string]any) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Kind:    kind,
		Details: details,
	})
}
