/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"yamdb/internal/entity"
	"yamdb/internal/service"

	"github.com/gorilla/mux"
)

// UserHandler covers the admin user surface and the /users/me self profile.
// The admin gate is applied by the router, /me only needs an authenticated caller.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userRequest struct {
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (req userRequest) patch() service.UserPatch {
	patch := service.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		patch.Role = &role
	}
	return patch
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Search(r.URL.Query().Get("search"), pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request userRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	var email string
	if request.Email != nil {
		email = *request.Email
	}
	var role entity.Role
	if request.Role != nil {
		role = entity.Role(*request.Role)
	}

	user, err := h.userService.Create(request.Username, email, role, request.patch())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByUsername(mux.Vars(r)["username"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var request userRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userService.Update(mux.Vars(r)["username"], request.patch())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(mux.Vars(r)["username"]); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, identityFrom(r))
}

// PatchMe updates the caller's own profile. The role field of the payload is
// ignored here, a user cannot change his own role.
func (h *UserHandler) PatchMe(w http.ResponseWriter, r *http.Request) {
	var request userRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userService.UpdateProfile(identityFrom(r), request.patch())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteMe is not a thing: accounts are removed by admins only.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "method not allowed"})
}
