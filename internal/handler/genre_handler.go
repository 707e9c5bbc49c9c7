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

	"github.com/gorilla/mux"
)

// GenreHandler mirrors the category one, on the genre collection.
type GenreHandler struct {
	catalogService service.CatalogService
}

func NewGenreHandler(catalogService service.CatalogService) *GenreHandler {
	return &GenreHandler{catalogService: catalogService}
}

func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalogService.SearchGenres(r.URL.Query().Get("search"), pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	genre, err := h.catalogService.CreateGenre(request.Name, request.Slug)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, genre)
}

func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteGenre(mux.Vars(r)["slug"]); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
