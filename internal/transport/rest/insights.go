package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

type insightsService interface {
	Overview(ctx context.Context, w domain.Window) (domain.Overview, error)
	Trends(ctx context.Context, days int) (domain.Trends, error)
}

// InsightsHandler serves the overview and trends endpoints.
type InsightsHandler struct {
	svc insightsService
	log *slog.Logger
}

// NewInsightsHandler creates an InsightsHandler.
func NewInsightsHandler(svc insightsService, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{svc: svc, log: logger.With("handler", "insights")}
}

type overviewResponse struct {
	Vitals struct {
		AvgHeartRate int `json:"avgHeartRate"`
		AvgBP        struct {
			Systolic  int `json:"systolic"`
			Diastolic int `json:"diastolic"`
		} `json:"avgBP"`
		AvgSpO2 int     `json:"avgSpO2"`
		AvgTemp float64 `json:"avgTemp"`
	} `json:"vitals"`
	Workouts struct {
		Sessions      int `json:"sessions"`
		TotalMinutes  int `json:"totalMinutes"`
		TotalCalories int `json:"totalCalories"`
	} `json:"workouts"`
	Sleep struct {
		Entries    int     `json:"entries"`
		AvgHours   float64 `json:"avgHours"`
		AvgQuality float64 `json:"avgQuality"`
	} `json:"sleep"`
	Nutrition struct {
		Days          int     `json:"days"`
		TotalCalories int     `json:"totalCalories"`
		AvgProtein    float64 `json:"avgProtein"`
		AvgCarbs      float64 `json:"avgCarbs"`
		AvgFat        float64 `json:"avgFat"`
	} `json:"nutrition"`
}

func toOverview(o domain.Overview) overviewResponse {
	var resp overviewResponse
	resp.Vitals.AvgHeartRate = o.Vitals.AvgHeartRate
	resp.Vitals.AvgBP.Systolic = o.Vitals.AvgBP.Systolic
	resp.Vitals.AvgBP.Diastolic = o.Vitals.AvgBP.Diastolic
	resp.Vitals.AvgSpO2 = o.Vitals.AvgSpO2
	resp.Vitals.AvgTemp = o.Vitals.AvgTemp

	resp.Workouts.Sessions = o.Workouts.Sessions
	resp.Workouts.TotalMinutes = o.Workouts.TotalMinutes
	resp.Workouts.TotalCalories = o.Workouts.TotalCalories

	resp.Sleep.Entries = o.Sleep.Entries
	resp.Sleep.AvgHours = o.Sleep.AvgHours
	resp.Sleep.AvgQuality = o.Sleep.AvgQuality

	resp.Nutrition.Days = o.Nutrition.Days
	resp.Nutrition.TotalCalories = o.Nutrition.TotalCalories
	resp.Nutrition.AvgProtein = o.Nutrition.AvgProtein
	resp.Nutrition.AvgCarbs = o.Nutrition.AvgCarbs
	resp.Nutrition.AvgFat = o.Nutrition.AvgFat
	return resp
}

type heartPoint struct {
	Day   string  `json:"day"`
	AvgHR float64 `json:"avgHR"`
	C     int     `json:"c"`
}

type sleepPoint struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

type workoutPoint struct {
	Day      string  `json:"day"`
	TotalMin float64 `json:"totalMin"`
}

type trendsResponse struct {
	Heart    []heartPoint   `json:"heart"`
	Sleep    []sleepPoint   `json:"sleep"`
	Workouts []workoutPoint `json:"workouts"`
}

func toTrends(t domain.Trends) trendsResponse {
	resp := trendsResponse{
		Heart:    make([]heartPoint, 0, len(t.Heart)),
		Sleep:    make([]sleepPoint, 0, len(t.Sleep)),
		Workouts: make([]workoutPoint, 0, len(t.Workouts)),
	}
	for _, p := range t.Heart {
		resp.Heart = append(resp.Heart, heartPoint{Day: p.Day, AvgHR: p.AvgHR, C: p.Count})
	}
	for _, p := range t.Sleep {
		resp.Sleep = append(resp.Sleep, sleepPoint(p))
	}
	for _, p := range t.Workouts {
		resp.Workouts = append(resp.Workouts, workoutPoint(p))
	}
	return resp
}

// Overview handles GET /api/insights/overview?from&to.
func (h *InsightsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Overview(r.Context(), window(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOverview(o))
}

// Trends handles GET /api/insights/trends?limit. A missing or malformed
// limit selects the default window.
func (h *InsightsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Trends(r.Context(), intParam(r.URL.Query().Get("limit")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrends(t))
}
