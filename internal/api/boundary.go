package api

import (
	"net/http"
	"strconv"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/metrics"
	"kiruna-explorer/internal/version"
)

// getBoundary：原样返回当前边界 GeoJSON；未加载时 503
func (s *Server) getBoundary(w http.ResponseWriter, r *http.Request) {
	b := s.boundary.Load()
	if b == nil {
		writeError(w, http.StatusServiceUnavailable, "boundary not loaded")
		return
	}
	w.Header().Set("content-type", "application/geo+json")
	w.Header().Set("x-boundary-name", b.name)
	_, _ = w.Write(b.raw)
}

// contains：点位是否在边界内（含边界）
func (s *Server) contains(w http.ResponseWriter, r *http.Request) {
	lat, okLat := queryFloat(r, "lat")
	lon, okLon := queryFloat(r, "lon")
	if !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "lat and lon are required numbers")
		return
	}
	region := s.region()
	if region == nil {
		writeError(w, http.StatusServiceUnavailable, "boundary not loaded")
		return
	}
	inside := region.Contains(geo.Point{Lat: lat, Lon: lon})
	metrics.ContainmentChecksTotal.WithLabelValues(strconv.FormatBool(inside)).Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"inside": inside})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"commit":   version.Commit,
		"boundary": s.boundary.Load() != nil,
	})
}
