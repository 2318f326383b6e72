package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	archivedto "ghostnote/internal/modules/archive/dto"
	archivein "ghostnote/internal/modules/archive/port/in"
	auditdto "ghostnote/internal/modules/audit/dto"
	auditin "ghostnote/internal/modules/audit/port/in"
	draftin "ghostnote/internal/modules/draft/port/in"
	strategydto "ghostnote/internal/modules/strategy/dto"
	wagerdto "ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/logging"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	drafts  draftin.Usecase
	wagers  wagerin.Usecase
	audits  auditin.Usecase
	archive archivein.Usecase
	logger  *zap.Logger
	router  chi.Router
}

func NewServer(drafts draftin.Usecase, wagers wagerin.Usecase, audits auditin.Usecase, archive archivein.Usecase, logger *zap.Logger) *Server {
	srv := &Server{
		drafts:  drafts,
		wagers:  wagers,
		audits:  audits,
		archive: archive,
		logger:  logging.OrNop(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", srv.handleHealth)
		r.Get("/drafts", srv.handleListDrafts)
		r.Get("/wagers", srv.handleListWagers)
		r.Post("/wagers", srv.handleSealWager)
		r.Get("/wagers/stats", srv.handleWagerStats)
		r.Post("/wagers/{wagerID}/audit", srv.handleAuditWager)
		r.Post("/archive", srv.handlePublish)
	})
	r.Get("/archive/{slug}", srv.handleGetArchive)
	r.Get("/s/{slug}", srv.handleGetArchive)

	srv.router = r
	return srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx ends, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", zap.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("HTTP API stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "ghostnote",
	})
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.drafts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleListWagers(w http.ResponseWriter, r *http.Request) {
	wagers, err := s.wagers.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wagers)
}

func (s *Server) handleWagerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.wagers.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type sealRequest struct {
	SessionID  *string `json:"session_id"`
	Prediction string  `json:"prediction"`
	Days       int     `json:"days"`
}

func (s *Server) handleSealWager(w http.ResponseWriter, r *http.Request) {
	req := sealRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	wager, err := s.wagers.Seal(r.Context(), wagerdto.SealInput{
		SessionID:  req.SessionID,
		Prediction: req.Prediction,
		Days:       req.Days,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, wager)
}

type auditRequest struct {
	FollowUp string `json:"follow_up"`
}

func (s *Server) handleAuditWager(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "wagerID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "wager id must be an integer"})
		return
	}
	req := auditRequest{}
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	out, err := s.audits.Audit(r.Context(), auditdto.AuditInput{WagerID: id, FollowUp: req.FollowUp})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type publishRequest struct {
	Content  strategydto.Content   `json:"content"`
	Analysis *strategydto.Analysis `json:"analysis"`
	Mode     string                `json:"mode"`
	Language string                `json:"language"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	req := publishRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	entry, err := s.archive.Publish(r.Context(), archivedto.PublishInput{
		Content:  req.Content,
		Analysis: req.Analysis,
		Mode:     req.Mode,
		Language: req.Language,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetArchive(w http.ResponseWriter, r *http.Request) {
	entry, err := s.archive.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAlreadyAudited):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
