// ABOUTME: Request handlers for the crumb HTTP API.
// ABOUTME: Errors are JSON; bad input is 400 and store failures are 502.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/crumb/internal/achievements"
	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/level"
	"github.com/harperreed/crumb/internal/models"
	"go.uber.org/zap"
)

type handler struct {
	eng    *engine.Engine
	mealXP func(models.MealType) int64
	log    *zap.Logger
}

type levelResponse struct {
	XP          float64 `json:"xp"`
	NextLevelAt float64 `json:"next_level_at"`
	level.Progress
}

func newLevelResponse(xp float64) levelResponse {
	p := level.FromXP(xp)
	return levelResponse{XP: xp, NextLevelAt: level.CumulativeXPForLevel(p.Level), Progress: p}
}

type statsResponse struct {
	Stats *models.UserStats `json:"stats"`
	Level levelResponse     `json:"level"`
}

func (h *handler) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]achievements.Category{
		"categories": h.eng.Catalog().ByCategory(),
	})
}

func (h *handler) level(w http.ResponseWriter, r *http.Request) {
	xp, err := strconv.ParseFloat(chi.URLParam(r, "xp"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "xp must be a number")
		return
	}
	if err := level.CheckXP(xp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newLevelResponse(xp))
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.eng.GetUserStats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Stats: st, Level: newLevelResponse(float64(st.TotalXP))})
}

func (h *handler) logMeal(w http.ResponseWriter, r *http.Request) {
	var in models.MealInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	meal, err := in.MealLog(h.mealXP)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.eng.LogMeal(r.Context(), chi.URLParam(r, "userID"), meal)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) board(w http.ResponseWriter, r *http.Request) {
	b, err := h.eng.Board(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	var se *engine.StoreError
	switch {
	case errors.Is(err, engine.ErrInvalidMealLog):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &se):
		h.log.Error("store failure", zap.String("op", se.Op), zap.String("user_id", se.UserID), zap.Error(se.Err))
		writeError(w, http.StatusBadGateway, "storage unavailable")
	default:
		h.log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// writeJSON encodes v before sending headers so an encode failure is a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
