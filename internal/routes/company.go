package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (routes *Routes) CompanyRouter(r chi.Router) {
	r.Get("/", routes.ListCompanies)
	r.Get("/{slug}", routes.GetCompany)
}

// ListCompanies backs the board picker, optionally filtered by ?name=.
func (routes *Routes) ListCompanies(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	companies, err := routes.store.ListCompanies(r.Context(), name)
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (routes *Routes) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := routes.store.GetCompanyBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		routes.HandleErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}
