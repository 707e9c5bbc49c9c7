/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"

	"yamdb/internal/apperr"
	"yamdb/internal/entity"
	"yamdb/internal/permission"
	"yamdb/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service for the comments under a review. Symmetric to the reviews, minus
// the score and the uniqueness rule.
type CommentService interface {
	Create(author *entity.User, titleID, reviewID uint, text string) (*entity.Comment, error)    // Posts a comment under the review
	Get(titleID, reviewID, id uint) (*entity.Comment, error)                                     // Retrieves one comment of the review
	List(titleID, reviewID uint, page repository.Page) ([]*entity.Comment, error)                // Retrieves the comments of the review, newest first
	Update(actor *entity.User, titleID, reviewID, id uint, text string) (*entity.Comment, error) // Text update, actor must be admin, moderator or the author
	Delete(actor *entity.User, titleID, reviewID, id uint) error                                 // Removal, same rule as Update
}

type commentService struct {
	commentRepository repository.CommentRepository
	reviewRepository  repository.ReviewRepository // Only to resolve the owning review
	logger            *zap.Logger
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository, logger *zap.Logger) CommentService {
	return &commentService{
		commentRepository: commentRepo,
		reviewRepository:  reviewRepo,
		logger:            logger,
	}
}

// resolveReview checks that the review exists under the title of the URL.
func (s *commentService) resolveReview(titleID, reviewID uint) (*entity.Review, error) {
	review, err := s.reviewRepository.GetByID(titleID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("review not found")
	}
	return review, err
}

func (s *commentService) Create(author *entity.User, titleID, reviewID uint, text string) (*entity.Comment, error) {
	if err := permission.Err(permission.Decide(permission.Snapshot(author, false), permission.ActionCreate, permission.ResourceComment)); err != nil {
		return nil, err
	}

	review, err := s.resolveReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperr.Invalid("text", "this field is required")
	}

	comment := &entity.Comment{
		ReviewID: review.ID,
		AuthorID: author.ID,
		Text:     text,
		Author:   author,
	}
	if err := s.commentRepository.Create(comment); err != nil {
		return nil, err
	}
	s.logger.Info("created comment", zap.Uint("review", review.ID), zap.String("author", author.Username))
	return comment, nil
}

func (s *commentService) Get(titleID, reviewID, id uint) (*entity.Comment, error) {
	if _, err := s.resolveReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepository.GetByID(reviewID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("comment not found")
	}
	return comment, err
}

func (s *commentService) List(titleID, reviewID uint, page repository.Page) ([]*entity.Comment, error) {
	if _, err := s.resolveReview(titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepository.ListByReview(reviewID, page)
}

func (s *commentService) Update(actor *entity.User, titleID, reviewID, id uint, text string) (*entity.Comment, error) {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	snap := permission.Snapshot(actor, actor != nil && comment.AuthorID == actor.ID)
	if err := permission.Err(permission.Decide(snap, permission.ActionModify, permission.ResourceComment)); err != nil {
		return nil, err
	}

	if text == "" {
		return nil, apperr.Invalid("text", "must not be empty")
	}
	comment.Text = text
	if err := s.commentRepository.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(actor *entity.User, titleID, reviewID, id uint) error {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return err
	}

	snap := permission.Snapshot(actor, actor != nil && comment.AuthorID == actor.ID)
	if err := permission.Err(permission.Decide(snap, permission.ActionModify, permission.ResourceComment)); err != nil {
		return err
	}

	return s.commentRepository.Delete(comment)
}
