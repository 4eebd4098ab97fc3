package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	mvpbuild "github.com/alnah/go-mvpbuild"
	"github.com/alnah/go-mvpbuild/internal/store"
)

var errUnsupportedMedia = errors.New("content type must be application/json")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeSpec reads a PageSpec body. Unknown fields are rejected.
func decodeSpec(r *http.Request) (mvpbuild.PageSpec, error) {
	var spec mvpbuild.PageSpec
	if !isJSON(r) {
		return spec, errUnsupportedMedia
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return spec, err
	}
	if dec.More() {
		return spec, errors.New("trailing data after JSON body")
	}
	return spec, nil
}

// decodeStatus maps a body decoding error to 415, 413 or 400.
func decodeStatus(err error) int {
	if errors.Is(err, errUnsupportedMedia) {
		return http.StatusUnsupportedMediaType
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func resultStatus(res mvpbuild.ValidationResult) int {
	if res.IsValid {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	spec, err := decodeSpec(r)
	if err != nil {
		writeError(w, decodeStatus(err), "invalid request body: "+err.Error())
		return
	}

	res := s.builder.Build(r.Context(), spec)
	writeJSON(w, resultStatus(res), res)
}

func (s *Server) handlePutPage(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["ideaId"]

	spec, err := decodeSpec(r)
	if err != nil {
		writeError(w, decodeStatus(err), "invalid request body: "+err.Error())
		return
	}
	spec.IdeaID = ideaID

	res := s.builder.Build(r.Context(), spec)
	if !res.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	if err := s.store.Put(r.Context(), ideaID, res.HTML); err != nil {
		s.logger.Error("storing page failed", zap.String("ideaId", ideaID), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "could not store page")
		return
	}

	s.logger.Info("page published", zap.String("ideaId", ideaID), zap.Int("bytes", len(res.HTML)))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["ideaId"]

	html, err := s.store.Get(r.Context(), ideaID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no page for idea "+ideaID)
		return
	}
	if err != nil {
		s.logger.Error("loading page failed", zap.String("ideaId", ideaID), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "could not load page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["ideaId"]

	if err := s.store.Delete(r.Context(), ideaID); err != nil {
		s.logger.Error("deleting page failed", zap.String("ideaId", ideaID), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "could not delete page")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, decodeStatus(err), "invalid request body")
		return
	}

	ev, err := mvpbuild.ParseTrackingMessage(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := []zap.Field{
		zap.String("eventType", string(ev.Type)),
		zap.String("ideaId", ev.IdeaID),
		zap.Any("metadata", ev.Metadata),
	}
	if ev.MVPID != nil {
		fields = append(fields, zap.String("mvpId", *ev.MVPID))
	}
	s.logger.Info("tracking event", fields...)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// isJSON reports whether the request declares a JSON body. Missing
// Content-Type is accepted for curl convenience.
func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(strings.ToLower(ct), "application/json")
}
