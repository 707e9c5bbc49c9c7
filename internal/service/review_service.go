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

// ReviewPatch carries the optional fields of a partial update.
type ReviewPatch struct {
	Text  *string
	Score *int
}

// Service for the reviews of a title. This is where the one-review-per-title
// rule and the instance level permissions are enforced: the actor is always
// passed in, so the policy engine can be consulted with the real ownership.
type ReviewService interface {
	Create(author *entity.User, titleID uint, score int, text string) (*entity.Review, error) // Posts the author's single review of the title
	Get(titleID, id uint) (*entity.Review, error)                                             // Retrieves one review of the title
	List(titleID uint, page repository.Page) ([]*entity.Review, error)                        // Retrieves the reviews of the title, newest first
	Update(actor *entity.User, titleID, id uint, patch ReviewPatch) (*entity.Review, error)   // Partial update, actor must be admin, moderator or the author
	Delete(actor *entity.User, titleID, id uint) error                                        // Removal, same rule as Update
}

type reviewService struct {
	reviewRepository repository.ReviewRepository
	titleRepository  repository.TitleRepository // Only to resolve the owning title
	logger           *zap.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepo,
		titleRepository:  titleRepo,
		logger:           logger,
	}
}

func (s *reviewService) Create(author *entity.User, titleID uint, score int, text string) (*entity.Review, error) {
	if err := permission.Err(permission.Decide(permission.Snapshot(author, false), permission.ActionCreate, permission.ResourceReview)); err != nil {
		return nil, err
	}

	if ok, err := s.titleRepository.Exists(titleID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFound("title not found")
	}

	if err := validateScore(score); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperr.Invalid("text", "this field is required")
	}

	// Pre-check for a friendly message. The unique index below is what
	// actually holds under concurrent submissions.
	if exists, err := s.reviewRepository.ExistsByTitleAndAuthor(titleID, author.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Conflict("you have already reviewed this title")
	}

	review := &entity.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Score:    score,
		Text:     text,
		Author:   author,
	}
	if err := s.reviewRepository.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against another request of the same author.
			return nil, apperr.Conflict("you have already reviewed this title")
		}
		return nil, err
	}
	s.logger.Info("created review", zap.Uint("title", titleID), zap.String("author", author.Username))
	return review, nil
}

func (s *reviewService) Get(titleID, id uint) (*entity.Review, error) {
	review, err := s.reviewRepository.GetByID(titleID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("review not found")
	}
	return review, err
}

func (s *reviewService) List(titleID uint, page repository.Page) ([]*entity.Review, error) {
	if ok, err := s.titleRepository.Exists(titleID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFound("title not found")
	}
	return s.reviewRepository.ListByTitle(titleID, page)
}

func (s *reviewService) Update(actor *entity.User, titleID, id uint, patch ReviewPatch) (*entity.Review, error) {
	// Existence first: you cannot moderate a review that isn't there.
	review, err := s.Get(titleID, id)
	if err != nil {
		return nil, err
	}

	snap := permission.Snapshot(actor, actor != nil && review.AuthorID == actor.ID)
	if err := permission.Err(permission.Decide(snap, permission.ActionModify, permission.ResourceReview)); err != nil {
		return nil, err
	}

	if patch.Score != nil {
		if err := validateScore(*patch.Score); err != nil {
			return nil, err
		}
		review.Score = *patch.Score
	}
	if patch.Text != nil {
		if *patch.Text == "" {
			return nil, apperr.Invalid("text", "must not be empty")
		}
		review.Text = *patch.Text
	}

	if err := s.reviewRepository.Save(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(actor *entity.User, titleID, id uint) error {
	review, err := s.Get(titleID, id)
	if err != nil {
		return err
	}

	snap := permission.Snapshot(actor, actor != nil && review.AuthorID == actor.ID)
	if err := permission.Err(permission.Decide(snap, permission.ActionModify, permission.ResourceReview)); err != nil {
		return err
	}

	return s.reviewRepository.Delete(review)
}
