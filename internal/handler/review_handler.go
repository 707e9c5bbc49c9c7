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
	"time"

	"yamdb/internal/entity"
	"yamdb/internal/service"
)

// ReviewHandler serves the reviews nested under a title.
type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Reviews go out with the author flattened to its username.
type reviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func toReviewResponse(review *entity.Review) reviewResponse {
	resp := reviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
	if review.Author != nil {
		resp.Author = review.Author.Username
	}
	return resp
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, err := pathID(r, "title_id")
	if err != nil {
		respondError(w, err)
		return
	}
	reviews, err := h.reviewService.List(titleID, pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, err := pathID(r, "title_id")
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	review, err := h.reviewService.Get(titleID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, err := pathID(r, "title_id")
	if err != nil {
		respondError(w, err)
		return
	}
	var request struct {
		Text  string `json:"text"`
		Score int    `json:"score"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewService.Create(identityFrom(r), titleID, request.Score, request.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (h *ReviewHandler) Patch(w http.ResponseWriter, r *http.Request) {
	titleID, err := pathID(r, "title_id")
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var request struct {
		Text  *string `json:"text"`
		Score *int    `json:"score"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewService.Update(identityFrom(r), titleID, id, service.ReviewPatch{
		Text:  request.Text,
		Score: request.Score,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, err := pathID(r, "title_id")
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.reviewService.Delete(identityFrom(r), titleID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
