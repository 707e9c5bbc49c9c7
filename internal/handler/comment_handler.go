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

// CommentHandler serves the comments nested under a review.
type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func toCommentResponse(comment *entity.Comment) commentResponse {
	resp := commentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Username
	}
	return resp
}

// commentPath pulls the three ids every comment route carries.
func commentPath(r *http.Request, withID bool) (titleID, reviewID, id uint, err error) {
	if titleID, err = pathID(r, "title_id"); err != nil {
		return
	}
	if reviewID, err = pathID(r, "review_id"); err != nil {
		return
	}
	if withID {
		id, err = pathID(r, "id")
	}
	return
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, err := commentPath(r, false)
	if err != nil {
		respondError(w, err)
		return
	}
	comments, err := h.commentService.List(titleID, reviewID, pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, id, err := commentPath(r, true)
	if err != nil {
		respondError(w, err)
		return
	}
	comment, err := h.commentService.Get(titleID, reviewID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, err := commentPath(r, false)
	if err != nil {
		respondError(w, err)
		return
	}
	var request struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	comment, err := h.commentService.Create(identityFrom(r), titleID, reviewID, request.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, id, err := commentPath(r, true)
	if err != nil {
		respondError(w, err)
		return
	}
	var request struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, err)
		return
	}

	comment, err := h.commentService.Update(identityFrom(r), titleID, reviewID, id, request.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, id, err := commentPath(r, true)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.commentService.Delete(identityFrom(r), titleID, reviewID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
