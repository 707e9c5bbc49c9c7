/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"yamdb/internal/permission"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

// NewRouter wires every route of the API under /api/v1.
// Reads are open, writes go through the class level permission gates. The
// instance level rules (author/moderator/admin on reviews and comments) are
// applied in the services, once the target has been loaded.
func NewRouter(h Handlers, m *Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.LogRequests)
	r.Use(m.Authenticate)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Authentication routes
	api.HandleFunc("/auth/signup", h.Auth.SignUp).Methods("POST")
	api.HandleFunc("/auth/token", h.Auth.Token).Methods("POST")

	// Catalog routes
	api.HandleFunc("/categories", h.Category.List).Methods("GET")
	api.HandleFunc("/categories", m.Gate(permission.ActionCreate, permission.ResourceCategory, h.Category.Create)).Methods("POST")
	api.HandleFunc("/categories/{slug}", m.Gate(permission.ActionModify, permission.ResourceCategory, h.Category.Delete)).Methods("DELETE")

	api.HandleFunc("/genres", h.Genre.List).Methods("GET")
	api.HandleFunc("/genres", m.Gate(permission.ActionCreate, permission.ResourceGenre, h.Genre.Create)).Methods("POST")
	api.HandleFunc("/genres/{slug}", m.Gate(permission.ActionModify, permission.ResourceGenre, h.Genre.Delete)).Methods("DELETE")

	api.HandleFunc("/titles", h.Title.List).Methods("GET")
	api.HandleFunc("/titles", m.Gate(permission.ActionCreate, permission.ResourceTitle, h.Title.Create)).Methods("POST")
	api.HandleFunc("/titles/{id}", h.Title.Get).Methods("GET")
	api.HandleFunc("/titles/{id}", m.Gate(permission.ActionModify, permission.ResourceTitle, h.Title.Patch)).Methods("PATCH")
	api.HandleFunc("/titles/{id}", m.Gate(permission.ActionModify, permission.ResourceTitle, h.Title.Delete)).Methods("DELETE")

	// Review routes
	api.HandleFunc("/titles/{title_id}/reviews", h.Review.List).Methods("GET")
	api.HandleFunc("/titles/{title_id}/reviews", m.Gate(permission.ActionCreate, permission.ResourceReview, h.Review.Create)).Methods("POST")
	api.HandleFunc("/titles/{title_id}/reviews/{id}", h.Review.Get).Methods("GET")
	api.HandleFunc("/titles/{title_id}/reviews/{id}", m.RequireAuthenticated(h.Review.Patch)).Methods("PATCH")
	api.HandleFunc("/titles/{title_id}/reviews/{id}", m.RequireAuthenticated(h.Review.Delete)).Methods("DELETE")

	// Comment routes
	api.HandleFunc("/titles/{title_id}/reviews/{review_id}/comments", h.Comment.List).Methods("GET")
	api.HandleFunc("/titles/{title_id}/reviews/{review_id}/comments", m.Gate(permission.ActionCreate, permission.ResourceComment, h.Comment.Create)).Methods("POST")
	api.HandleFunc("/titles/{title_id}/reviews/{review_id}/comments/{id}", h.Comment.Get).Methods("GET")
	api.HandleFunc("/titles/{title_id}/reviews/{review_id}/comments/{id}", m.RequireAuthenticated(h.Comment.Patch)).Methods("PATCH")
	api.HandleFunc("/titles/{title_id}/reviews/{review_id}/comments/{id}", m.RequireAuthenticated(h.Comment.Delete)).Methods("DELETE")

	// User routes. /users/me must be registered before /users/{username}.
	api.HandleFunc("/users/me", m.RequireAuthenticated(h.User.Me)).Methods("GET")
	api.HandleFunc("/users/me", m.RequireAuthenticated(h.User.PatchMe)).Methods("PATCH")
	api.HandleFunc("/users/me", m.RequireAuthenticated(h.User.DeleteMe)).Methods("DELETE")

	api.HandleFunc("/users", m.Gate(permission.ActionRead, permission.ResourceAccount, h.User.List)).Methods("GET")
	api.HandleFunc("/users", m.Gate(permission.ActionCreate, permission.ResourceAccount, h.User.Create)).Methods("POST")
	api.HandleFunc("/users/{username}", m.Gate(permission.ActionRead, permission.ResourceAccount, h.User.Get)).Methods("GET")
	api.HandleFunc("/users/{username}", m.Gate(permission.ActionModify, permission.ResourceAccount, h.User.Patch)).Methods("PATCH")
	api.HandleFunc("/users/{username}", m.Gate(permission.ActionModify, permission.ResourceAccount, h.User.Delete)).Methods("DELETE")

	return r
}
