package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/DEEPML1818/MarineTrack-app-sub000/services"
)

// DefaultHazardRadiusNm applies to GET /hazards without radiusNm.
const DefaultHazardRadiusNm = 25.0

// Engine is what the transport needs from the route engine.
type Engine interface {
	CalculateRoute(ctx context.Context, req models.RouteRequest) (models.Route, error)
	ReportHazard(ctx context.Context, r models.HazardReport) (models.Hazard, error)
	QueryHazardsNear(ctx context.Context, point models.GeoPoint, radiusNm float64) ([]models.HazardHit, error)
	GetHazard(ctx context.Context, id string) (models.Hazard, error)
	VoteHazard(ctx context.Context, id string, dir models.VoteDirection) (bool, error)
	QueryTrafficHeatmap(ctx context.Context) ([]models.TrafficReport, error)
	ReportTraffic(ctx context.Context, in models.TrafficReportInput) (models.TrafficReport, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	CheckAdvisory(ctx context.Context, point models.GeoPoint) (models.Advisory, error)
	Stats() services.Stats
}

func CalculateRouteHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RouteRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		route, err := engine.CalculateRoute(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, route)
	}
}

func ReportHazardHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report models.HazardReport
		if err := decodeBody(r, &report); err != nil {
			writeError(w, err)
			return
		}
		h, err := engine.ReportHazard(r.Context(), report)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, h)
	}
}

func HazardsNearHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		point, err := queryPoint(r)
		if err != nil {
			writeError(w, err)
			return
		}
		radius, ok, err := queryFloat(r, "radiusNm")
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			radius = DefaultHazardRadiusNm
		}
		hits, err := engine.QueryHazardsNear(r.Context(), point, radius)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, hits)
	}
}

func GetHazardHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := engine.GetHazard(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	}
}

type voteRequest struct {
	Direction models.VoteDirection `json:"direction"`
}

type voteResponse struct {
	Success bool `json:"success"`
}

func VoteHazardHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req voteRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		ok, err := engine.VoteHazard(r.Context(), id, req.Direction)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeError(w, fmt.Errorf("%w: %s", models.ErrUnknownHazard, id))
			return
		}
		writeJSON(w, http.StatusOK, voteResponse{Success: true})
	}
}

func TrafficHeatmapHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := engine.QueryTrafficHeatmap(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reports)
	}
}

func ReportTrafficHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.TrafficReportInput
		if err := decodeBody(r, &in); err != nil {
			writeError(w, err)
			return
		}
		report, err := engine.ReportTraffic(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, report)
	}
}

func ZonesHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zones, err := engine.ListZones(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, zones)
	}
}

func AdvisoryHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		point, err := queryPoint(r)
		if err != nil {
			writeError(w, err)
			return
		}
		advisory, err := engine.CheckAdvisory(r.Context(), point)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, advisory)
	}
}

type healthResponse struct {
	Status string         `json:"status"`
	Stats  services.Stats `json:"stats"`
}

func HealthHandler(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Stats: engine.Stats()})
	}
}
