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
	"strconv"

	"yamdb/internal/apperr"
	"yamdb/internal/repository"
	"yamdb/internal/service"
)

// TitleHandler serves the titles of the catalog.
type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// List retrieves titles. The genre/category/name/year query params are ANDed together.
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.TitleFilter{
		Genre:    query.Get("genre"),
		Category: query.Get("category"),
		Name:     query.Get("name"),
	}
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, apperr.Invalid("year", "must be a number"))
			return
		}
		filter.Year = &year
	}

	titles, err := h.titleService.List(filter, pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, titles)
}

func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	title, err := h.titleService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, title)
}

type titleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request titleRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	input := service.TitleInput{Genres: request.Genre}
	if request.Name != nil {
		input.Name = *request.Name
	}
	if request.Year != nil {
		input.Year = *request.Year
	}
	if request.Description != nil {
		input.Description = *request.Description
	}
	if request.Category != nil {
		input.Category = *request.Category
	}

	title, err := h.titleService.Create(input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, title)
}

func (h *TitleHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var request titleRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	patch := service.TitlePatch{
		Name:        request.Name,
		Year:        request.Year,
		Description: request.Description,
		Category:    request.Category,
	}
	if request.Genre != nil {
		patch.Genres = &request.Genre
	}

	title, err := h.titleService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, title)
}

func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.titleService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
