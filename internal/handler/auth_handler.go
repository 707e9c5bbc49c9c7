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

	"yamdb/internal/service"
)

// AuthHandler covers the two public endpoints of the registration flow:
// asking for a confirmation code and trading it for a token.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp registers (or re-registers) a user and emails him a confirmation code.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authService.SignUp(request.Username, request.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"email":    user.Email,
		"username": user.Username,
	})
}

// Token exchanges a confirmation code for a signed bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username         string `json:"username"`
		ConfirmationCode string `json:"confirmation_code"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	signed, err := h.authService.IssueToken(request.Username, request.ConfirmationCode)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": signed})
}
