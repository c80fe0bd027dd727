package routes

import (
	"net/http"
	"strings"

	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/blackzarifa/feedback-board/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (routes *Routes) FeedbackRouter(r chi.Router) {
	r.Post("/", routes.PostFeedback)
	r.Get("/", routes.ListFeedback)

	specific := r.With(routes.FeedbackIDCtx)
	specific.Get("/{feedbackID}", routes.GetFeedback)
	specific.With(routes.RequireAdmin).Patch("/{feedbackID}", routes.PatchFeedback)
	specific.With(routes.RequireAdmin).Delete("/{feedbackID}", routes.DeleteFeedback)
}

// FeedbackIDCtx rejects malformed ids before they reach the database.
func (routes *Routes) FeedbackIDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.ValidateUUID(chi.URLParam(r, "feedbackID")) {
			routes.HandleErr(w, r, &ErrBadRequest{Motivation: "id must be a UUID"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (routes *Routes) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackReq
	if err := decodeJSON(r, &req); err != nil {
		routes.HandleErr(w, r, err)
		return
	}

	feedback, err := routes.store.CreateFeedback(r.Context(), req)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

func (routes *Routes) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.FeedbackFilter{
		CompanyID: q.Get("companyId"),
		Status:    q.Get("status"),
		Category:  q.Get("category"),
		Search:    strings.TrimSpace(q.Get("search")),
	}
	if filter.CompanyID != "" && !utils.ValidateUUID(filter.CompanyID) {
		routes.HandleErr(w, r, &ErrBadRequest{Motivation: "companyId must be a UUID"})
		return
	}
	if filter.Status != "" {
		if _, err := models.ParseStatus(filter.Status); err != nil {
			routes.HandleErr(w, r, err)
			return
		}
	}
	if filter.Category != "" {
		if _, err := models.ParseCategory(filter.Category); err != nil {
			routes.HandleErr(w, r, err)
			return
		}
	}

	items, err := routes.store.ListFeedback(r.Context(), filter)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (routes *Routes) GetFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := routes.store.GetFeedback(r.Context(), chi.URLParam(r, "feedbackID"))
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (routes *Routes) PatchFeedback(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)
	var upd models.FeedbackUpdate
	if err := decodeJSON(r, &upd); err != nil {
		routes.HandleErr(w, r, err)
		return
	}

	feedback, err := routes.store.UpdateFeedback(r.Context(), chi.URLParam(r, "feedbackID"), claims.CompanyID, upd)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (routes *Routes) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)
	err := routes.store.DeleteFeedback(r.Context(), chi.URLParam(r, "feedbackID"), claims.CompanyID)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
