package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	attendeeservice "gatehouse/contexts/campaign-editorial/attendee-service"
	attendeeerrors "gatehouse/contexts/campaign-editorial/attendee-service/domain/errors"
	accessresolution "gatehouse/contexts/identity-access/access-resolution"
	authhttp "gatehouse/contexts/identity-access/access-resolution/adapters/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "gatehouse/internal/platform/httpserver/docs"
)

// Server owns the route table. Every route except the skip list is wrapped
// by the authorization middleware, so protected handlers can assume a
// resolved AuthorizationContext on the request.
type Server struct {
	handler     http.Handler
	logger      *slog.Logger
	addr        string
	environment string
	attendees   attendeeservice.Module
	authz       accessresolution.Module
}

func New(
	authz accessresolution.Module,
	attendees attendeeservice.Module,
	logger *slog.Logger,
	addr string,
	environment string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if environment == "" {
		environment = "development"
	}

	s := &Server{
		logger:      logger,
		addr:        addr,
		environment: environment,
		attendees:   attendees,
		authz:       authz,
	}
	s.handler = authz.Middleware.Wrap(s.routes())
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

// Handler exposes the wrapped route table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/attendees", s.handleListAttendees)
	mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/attendees/search", s.handleSearchAttendee)
	mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}/event-summary", s.handleEventSummary)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.environment,
		"timestamp":   timestamp(),
	})
}

func (s *Server) handleListAttendees(w http.ResponseWriter, r *http.Request) {
	auth, ok := authhttp.AuthorizationFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "Access denied")
		return
	}

	query := r.URL.Query()
	offset := 0
	if raw := query.Get("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "skip must be a non-negative integer")
			return
		}
		offset = parsed
	}
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	resp, err := s.attendees.Handler.ListAttendeesHandler(r.Context(), auth, r.PathValue("campaign_id"), offset, limit)
	if err != nil {
		s.writeAttendeeError(w, r, err, "ATTENDEES_RETRIEVAL_ERROR", "Failed to retrieve attendees")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchAttendee(w http.ResponseWriter, r *http.Request) {
	auth, ok := authhttp.AuthorizationFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "Access denied")
		return
	}

	resp, err := s.attendees.Handler.FindAttendeeByEmailHandler(r.Context(), auth, r.PathValue("campaign_id"), r.URL.Query().Get("email"))
	if err != nil {
		s.writeAttendeeError(w, r, err, "SEARCH_ERROR", "Failed to search attendee")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventSummary(w http.ResponseWriter, r *http.Request) {
	auth, ok := authhttp.AuthorizationFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "Access denied")
		return
	}

	resp, err := s.attendees.Handler.EventSummaryHandler(r.Context(), auth, r.PathValue("campaign_id"))
	if err != nil {
		s.writeAttendeeError(w, r, err, "SUMMARY_ERROR", "Failed to retrieve event summary")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAttendeeError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string, fallbackMessage string) {
	switch {
	case errors.Is(err, attendeeerrors.ErrInvalidCampaignID):
		writeError(w, http.StatusBadRequest, "INVALID_CAMPAIGN_ID", "Invalid campaign ID")
	case errors.Is(err, attendeeerrors.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid parameters or attendee not found")
	case errors.Is(err, attendeeerrors.ErrAttendeeNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Invalid parameters or attendee not found")
	case errors.Is(err, attendeeerrors.ErrCampaignNotVisible):
		writeError(w, http.StatusUnauthorized, "AUTH_ERROR", "Access denied")
	default:
		s.logger.Error("attendee request failed",
			"event", "attendee_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}
}

type errorDetail struct {
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    *string `json:"code"`
}

type errorEnvelope struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	ErrorCode string        `json:"error_code"`
	Details   []errorDetail `json:"details"`
	Timestamp string        `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorEnvelope{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Details:   []errorDetail{{Message: message}},
		Timestamp: timestamp(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}
