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
	"math"

	"yamdb/internal/apperr"
	"yamdb/internal/entity"
	"yamdb/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TitleInput is the full payload of a title creation.
type TitleInput struct {
	Name        string
	Year        int
	Description string
	Category    string   // Slug of an existing category
	Genres      []string // Slugs of existing genres
}

// TitlePatch carries the optional fields of a partial update. Nil means "leave it alone".
type TitlePatch struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

// Service for the titles of the catalog. Every title handed out has its
// rating annotated: the rounded mean of the review scores, or nil with no
// reviews. It is computed on read, never stored, so it can't go stale.
type TitleService interface {
	Create(input TitleInput) (*entity.Title, error)                                 // Inserts a title, resolving category and genre slugs
	Get(id uint) (*entity.Title, error)                                             // Retrieves one title with its rating
	List(filter repository.TitleFilter, page repository.Page) ([]*entity.Title, error) // Retrieves titles matching the filter, with ratings
	Update(id uint, patch TitlePatch) (*entity.Title, error)                        // Partial update
	Delete(id uint) error                                                           // Removes the title and its reviews
}

type titleService struct {
	titleRepository    repository.TitleRepository
	categoryRepository repository.CategoryRepository
	genreRepository    repository.GenreRepository
	reviewRepository   repository.ReviewRepository // Only for the score aggregation
	logger             *zap.Logger
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	logger *zap.Logger,
) TitleService {
	return &titleService{
		titleRepository:    titleRepo,
		categoryRepository: categoryRepo,
		genreRepository:    genreRepo,
		reviewRepository:   reviewRepo,
		logger:             logger,
	}
}

func (s *titleService) Create(input TitleInput) (*entity.Title, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(input.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(input.Genres)
	if err != nil {
		return nil, err
	}

	title := &entity.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Genres:      genres,
	}
	if category != nil {
		title.CategoryID = &category.ID
		title.Category = category
	}
	if err := s.titleRepository.Create(title); err != nil {
		return nil, err
	}
	s.logger.Info("created title", zap.Uint("id", title.ID), zap.String("name", title.Name))
	return title, nil
}

func (s *titleService) Get(id uint) (*entity.Title, error) {
	title, err := s.titleRepository.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("title not found")
	} else if err != nil {
		return nil, err
	}
	if err := s.annotateRatings(title); err != nil {
		return nil, err
	}
	return title, nil
}

func (s *titleService) List(filter repository.TitleFilter, page repository.Page) ([]*entity.Title, error) {
	titles, err := s.titleRepository.List(filter, page)
	if err != nil {
		return nil, err
	}
	if err := s.annotateRatings(titles...); err != nil {
		return nil, err
	}
	return titles, nil
}

func (s *titleService) Update(id uint, patch TitlePatch) (*entity.Title, error) {
	title, err := s.titleRepository.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("title not found")
	} else if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if err := validateYear(*patch.Year); err != nil {
			return nil, err
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.Category != nil {
		category, err := s.resolveCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			title.CategoryID = nil
			title.Category = nil
		} else {
			title.CategoryID = &category.ID
			title.Category = category
		}
	}
	if patch.Genres != nil {
		genres, err := s.resolveGenres(*patch.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titleRepository.Save(title); err != nil {
		return nil, err
	}
	if err := s.annotateRatings(title); err != nil {
		return nil, err
	}
	return title, nil
}

func (s *titleService) Delete(id uint) error {
	err := s.titleRepository.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("title not found")
	}
	return err
}

// resolveCategory maps a slug onto its category. An empty slug means "no category".
func (s *titleService) resolveCategory(slug string) (*entity.Category, error) {
	if slug == "" {
		return nil, nil
	}
	category, err := s.categoryRepository.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Invalid("category", "no category with this slug")
	}
	return category, err
}

func (s *titleService) resolveGenres(slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepository.GetBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, apperr.Invalid("genre", "one or more genre slugs do not exist")
	}
	return genres, nil
}

// annotateRatings fills Rating for the given titles with one grouped query.
func (s *titleService) annotateRatings(titles ...*entity.Title) error {
	ids := make([]uint, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	averages, err := s.reviewRepository.AverageScoresByTitle(ids)
	if err != nil {
		return err
	}
	for _, t := range titles {
		if avg, ok := averages[t.ID]; ok {
			rating := roundScore(avg)
			t.Rating = &rating
		} else {
			t.Rating = nil
		}
	}
	return nil
}

// roundScore rounds the mean half away from zero: [8,9] gives 9, [7,8] gives 8.
func roundScore(avg float64) int {
	return int(math.Round(avg))
}
