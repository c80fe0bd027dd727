package routes

import (
	"net/http"

	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/go-chi/chi/v5"
)

func (routes *Routes) AuthRouter(r chi.Router) {
	r.Post("/login", routes.PostLogin)
	r.With(routes.RequireAdmin).Post("/register", routes.PostRegister)
	r.With(routes.RequireAdmin).Get("/me", routes.GetMe)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	credentials
	CompanyID string `json:"companyId"`
}

type loginRes struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

const minPasswordLen = 8

func (routes *Routes) PostLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		routes.HandleErr(w, r, err)
		return
	}

	user, err := routes.store.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	routes.writeSession(w, r, http.StatusOK, user)
}

// PostRegister lets an admin add another admin to their own company. The
// company always comes from the caller's token.
func (routes *Routes) PostRegister(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)
	var req registerReq
	if err := decodeJSON(r, &req); err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	if len(req.Password) < minPasswordLen {
		routes.HandleErr(w, r, &ErrBadRequest{Motivation: "password must be at least 8 characters"})
		return
	}

	if req.CompanyID != "" && req.CompanyID != claims.CompanyID {
		routes.HandleErr(w, r, models.ErrNotOwner)
		return
	}

	user := &models.User{Email: req.Email, CompanyID: claims.CompanyID}
	err := routes.store.CreateUser(r.Context(), user, req.Password)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (routes *Routes) writeSession(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := routes.issuer.Sign(user)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, status, loginRes{AccessToken: token, User: user})
}

func (routes *Routes) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"id":        claims.UserID,
		"email":     claims.Email,
		"companyId": claims.CompanyID,
	})
}
