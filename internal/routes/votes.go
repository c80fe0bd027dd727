package routes

import (
	"fmt"
	"net/http"

	"github.com/blackzarifa/feedback-board/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (routes *Routes) VotesRouter(r chi.Router) {
	r.Post("/", routes.PostVote)
	r.Get("/user-votes", routes.GetUserVotes)
	r.Delete("/{feedbackID}", routes.DeleteVote)
}

type voteReq struct {
	FeedbackID string `json:"feedbackId"`
}

func (routes *Routes) PostVote(w http.ResponseWriter, r *http.Request) {
	var req voteReq
	if err := decodeJSON(r, &req); err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	if !utils.ValidateUUID(req.FeedbackID) {
		routes.HandleErr(w, r, &ErrBadRequest{Motivation: "feedbackId must be a UUID"})
		return
	}

	vote, err := routes.store.CreateVote(r.Context(), req.FeedbackID, requester(r))
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

func (routes *Routes) DeleteVote(w http.ResponseWriter, r *http.Request) {
	feedbackID := chi.URLParam(r, "feedbackID")
	if !utils.ValidateUUID(feedbackID) {
		routes.HandleErr(w, r, &ErrBadRequest{Motivation: "feedbackId must be a UUID"})
		return
	}

	err := routes.store.RemoveVote(r.Context(), feedbackID, requester(r))
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUserVotes lists the caller's votes among ?feedbackIds=a,b,c.
func (routes *Routes) GetUserVotes(w http.ResponseWriter, r *http.Request) {
	ids := utils.SplitIDs(r.URL.Query().Get("feedbackIds"))
	for _, id := range ids {
		if !utils.ValidateUUID(id) {
			routes.HandleErr(w, r, &ErrBadRequest{
				Motivation: fmt.Sprintf("feedbackIds: %q is not a UUID", id),
			})
			return
		}
	}

	votes, err := routes.store.FindUserVotes(r.Context(), ids, requester(r))
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
