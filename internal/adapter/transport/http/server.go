package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/dayanaadylkhanova/order-insights/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	log      *zap.Logger
	addr     string
	reports  service.ReportPort
	sessions service.SessionRegistry
	httpSrv  *http.Server
}

// NewServer wires the report API. metrics may be nil.
func NewServer(log *zap.Logger, addr string, reports service.ReportPort, sessions service.SessionRegistry, metrics http.Handler) *Server {
	s := &Server{log: log, addr: addr, reports: reports, sessions: sessions}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/reports", s.handleReport())
		r.Post("/sessions", s.handleOpenSession())
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleSessionState())
			r.Put("/range", s.handleSelectRange())
			r.Post("/refresh", s.handleRefresh())
			r.Delete("/", s.handleCloseSession())
		})
	})

	s.httpSrv = &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return s
}

func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// selectionRequest is the body of PUT /v1/sessions/{id}/range.
type selectionRequest struct {
	Range string `json:"range"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (q selectionRequest) selector() entity.RangeSelector {
	sel := entity.RangeSelector{ID: entity.RangeID(strings.TrimSpace(q.Range))}
	if q.Start != "" || q.End != "" {
		sel.Custom = &entity.CustomRange{Start: q.Start, End: q.End}
	}
	return sel
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := selectionRequest{Range: q.Get("range"), Start: q.Get("start"), End: q.Get("end")}
		if req.Range == "" {
			req.Range = string(entity.RangeToday)
		}
		snap, err := s.reports.GetReport(r.Context(), req.selector())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) handleOpenSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Open()
		writeJSON(w, http.StatusCreated, entity.SessionCreated{ID: sess.ID()})
	}
}

func (s *Server) handleSessionState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Lookup(chi.URLParam(r, "sessionID"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess.State())
	}
}

func (s *Server) handleSelectRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Lookup(chi.URLParam(r, "sessionID"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		var req selectionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
			return
		}
		st, err := sess.Select(r.Context(), req.selector())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Lookup(chi.URLParam(r, "sessionID"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		st, err := sess.Refresh(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleCloseSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Close(chi.URLParam(r, "sessionID")); err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
