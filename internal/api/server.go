// Package api exposes the ingest service's HTTP surface: latest frame and
// detection queries, per-frame statistics, a sensor command endpoint, and a
// quick-look detection chart.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/mmwave.report/internal/db"
	"github.com/banshee-data/mmwave.report/internal/mmwave"
	"github.com/banshee-data/mmwave.report/internal/serialmux"
	"github.com/banshee-data/mmwave.report/internal/units"
	"github.com/banshee-data/mmwave.report/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	m     serialmux.DataMuxInterface
	db    *db.DB
	units string
}

func NewServer(m serialmux.DataMuxInterface, db *db.DB, velocityUnits string) *Server {
	return &Server{
		m:     m,
		db:    db,
		units: velocityUnits,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthz)
	mux.HandleFunc("/command", s.sendCommandHandler)
	mux.HandleFunc("/api/frames/latest", s.showLatestFrame)
	mux.HandleFunc("/api/detections", s.listDetections)
	mux.HandleFunc("/api/stats/latest", s.showLatestStats)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/charts/detections", s.chartDetections)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	frames, err := s.db.FrameCount()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("database unavailable: %v", err))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"frames":  frames,
		"version": version.Version,
	})
}

func (s *Server) sendCommandHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	command := r.FormValue("command")
	if command == "" {
		http.Error(w, "Missing command", http.StatusBadRequest)
		return
	}

	if err := s.m.SendCommand(command); err != nil {
		http.Error(w, "Failed to send command", http.StatusInternalServerError)
		return
	}
	io.WriteString(w, "Command sent successfully")
}

// latestFrameResponse pairs the persisted frame metadata with its detections.
type latestFrameResponse struct {
	Frame      db.FrameRecord          `json:"frame"`
	Detections []mmwave.DetectedObject `json:"detections"`
	Units      string                  `json:"velocity_units"`
}

func (s *Server) showLatestFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rec, objects, err := s.db.LatestFrame()
	if errors.Is(err, sql.ErrNoRows) {
		s.writeJSONError(w, http.StatusNotFound, "No frames recorded yet")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve latest frame: %v", err))
		return
	}

	resp := latestFrameResponse{
		Frame:      rec,
		Detections: s.convertVelocities(objects),
		Units:      s.units,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write latest frame")
		return
	}
}

func (s *Server) listDetections(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 100 // default value
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 10000 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	objects, err := s.db.LatestDetections(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve detections: %v", err))
		return
	}

	if err := json.NewEncoder(w).Encode(s.convertVelocities(objects)); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write detections")
		return
	}
}

func (s *Server) showLatestStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rec, objects, err := s.db.LatestFrame()
	if errors.Is(err, sql.ErrNoRows) {
		s.writeJSONError(w, http.StatusNotFound, "No frames recorded yet")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve latest frame: %v", err))
		return
	}

	resp := map[string]any{
		"frame_number": rec.FrameNumber,
		"stats":        mmwave.Summarize(objects),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write stats")
		return
	}
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	config := map[string]interface{}{
		"velocity_units": s.units,
	}

	if err := json.NewEncoder(w).Encode(config); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write config")
		return
	}
}

// convertVelocities applies the configured unit conversion to each
// detection's radial velocity. Detections are stored in m/s.
func (s *Server) convertVelocities(objects []mmwave.DetectedObject) []mmwave.DetectedObject {
	if s.units == units.MPS {
		return objects
	}
	converted := make([]mmwave.DetectedObject, len(objects))
	for i, obj := range objects {
		obj.V = float32(units.ConvertVelocity(float64(obj.V), s.units))
		converted[i] = obj
	}
	return converted
}
