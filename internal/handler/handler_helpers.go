/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"yamdb/internal/apperr"
	"yamdb/internal/entity"
	"yamdb/internal/repository"

	"github.com/gorilla/mux"
)

type contextKey string

const userContextKey contextKey = "user"

// identityFrom returns the authenticated user of the request, nil for anonymous callers.
func identityFrom(r *http.Request) *entity.User {
	u, _ := r.Context().Value(userContextKey).(*entity.User)
	return u
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the error taxonomy onto HTTP. Validation field errors
// serialize as a field-keyed map, everything else as a single detail message.
func respondError(w http.ResponseWriter, err error) {
	var fields apperr.Fields
	if errors.As(err, &fields) {
		respondJSON(w, http.StatusBadRequest, fields)
		return
	}

	status := http.StatusInternalServerError
	detail := "internal server error"
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		detail = err.Error()
	case apperr.KindConflict:
		status = http.StatusConflict
		detail = err.Error()
	case apperr.KindNotFound:
		status = http.StatusNotFound
		detail = err.Error()
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		detail = err.Error()
	case apperr.KindForbidden:
		status = http.StatusForbidden
		detail = err.Error()
	}
	respondJSON(w, status, map[string]string{"detail": detail})
}

func decodeJSON(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return apperr.Validation("malformed request body")
	}
	return nil
}

// pathID extracts a numeric path variable, 404 semantics on garbage since the
// resource a non-number names can not exist.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFound("not found")
	}
	return uint(id), nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageFrom reads the page/page_size query params into offsets for the repositories.
func pageFrom(r *http.Request) repository.Page {
	page := 1
	size := defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
			if size > maxPageSize {
				size = maxPageSize
			}
		}
	}

	return repository.Page{Offset: (page - 1) * size, Limit: size}
}
