package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/blackzarifa/feedback-board/internal/auth"
	"github.com/blackzarifa/feedback-board/internal/identity"
	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Store is the persistence surface the HTTP layer needs. *db.SharedDB
// implements it.
type Store interface {
	CreateVote(ctx context.Context, feedbackID string, voter identity.Requester) (*models.Vote, error)
	RemoveVote(ctx context.Context, feedbackID string, voter identity.Requester) error
	FindUserVotes(ctx context.Context, feedbackIDs []string, voter identity.Requester) ([]models.Vote, error)

	CreateFeedback(ctx context.Context, req models.FeedbackReq) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error)
	GetFeedback(ctx context.Context, id string) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id, companyID string, upd models.FeedbackUpdate) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id, companyID string) error

	ListCompanies(ctx context.Context, name string) ([]models.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)

	CreateUser(ctx context.Context, user *models.User, passwd string) error
	Authenticate(ctx context.Context, email string, passwd string) (*models.User, error)

	Ping(ctx context.Context) error
}

type Routes struct {
	store  Store
	issuer *auth.Issuer
}

// ErrBadRequest carries a message meant for the client. Cause is logged,
// Motivation is sent.
type ErrBadRequest struct {
	Cause      error
	Motivation string
}

func (e *ErrBadRequest) Error() string {
	if e.Cause == nil {
		return e.Motivation
	}
	return e.Cause.Error()
}
func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

var ErrUnauthorized = errors.New("unauthorized")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func NewRouter(config *models.EnvConfig, store Store, issuer *auth.Issuer, log zerolog.Logger) chi.Router {
	routes := &Routes{store: store, issuer: issuer}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(hlog.NewHandler(log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Send()
	}))
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(middleware.Recoverer)
	r.Use(CORS(config.CORSOrigin))
	if config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(config.RequestTimeout))
	}
	r.Use(routes.WithClaims)

	r.Get("/health", routes.GetHealth)
	r.Route("/auth", routes.AuthRouter)
	r.Route("/company", routes.CompanyRouter)
	r.Route("/feedback", routes.FeedbackRouter)
	r.Route("/votes", routes.VotesRouter)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		routes.HandleErr(w, r, models.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (routes *Routes) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := routes.store.Ping(r.Context()); err != nil {
		hlog.FromRequest(r).Error().
			Str("request_id", middleware.GetReqID(r.Context())).
			Err(err).
			Msg("database unreachable")
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleErr maps err to a status code and writes the JSON error body.
// Unexpected errors are logged and reported as 500 without details.
func (routes *Routes) HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	var badReq *ErrBadRequest
	switch {
	case errors.As(err, &badReq):
		msg := badReq.Motivation
		if msg == "" {
			msg = badReq.Error()
		}
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidCategory),
		errors.Is(err, models.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrBadCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrEmailAlreadyUsed),
		errors.Is(err, models.ErrSlugAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		// middleware.Timeout writes the 504 once the handler returns.
		hlog.FromRequest(r).Warn().
			Str("request_id", middleware.GetReqID(r.Context())).
			Err(err).
			Msg("request timed out")
	default:
		hlog.FromRequest(r).Error().
			Str("request_id", middleware.GetReqID(r.Context())).
			Err(err).
			Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The status line is already out, nothing useful to do on failure.
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrBadRequest{Cause: err, Motivation: "malformed JSON body"}
	}
	return nil
}
