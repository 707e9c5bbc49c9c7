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
	"yamdb/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service for categories and genres. The two behave identically (slug-keyed,
// searchable, create and delete only), so they share one service.
type CatalogService interface {
	CreateCategory(name, slug string) (*entity.Category, error)                    // Inserts a category, slugs are unique
	SearchCategories(query string, page repository.Page) ([]*entity.Category, error) // Retrieves categories by name/slug substring
	DeleteCategory(slug string) error                                              // Removes a category, its titles lose it but survive

	CreateGenre(name, slug string) (*entity.Genre, error)                    // Inserts a genre, slugs are unique
	SearchGenres(query string, page repository.Page) ([]*entity.Genre, error) // Retrieves genres by name/slug substring
	DeleteGenre(slug string) error                                           // Removes a genre and its title associations
}

type catalogService struct {
	categoryRepository repository.CategoryRepository
	genreRepository    repository.GenreRepository
	logger             *zap.Logger
}

func NewCatalogService(categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		categoryRepository: categoryRepo,
		genreRepository:    genreRepo,
		logger:             logger,
	}
}

func (s *catalogService) CreateCategory(name, slug string) (*entity.Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepository.GetBySlug(slug); err == nil {
		return nil, apperr.Conflict("a category with this slug already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &entity.Category{Name: name, Slug: slug}
	if err := s.categoryRepository.Create(category); err != nil {
		return nil, err
	}
	s.logger.Info("created category", zap.String("slug", slug))
	return category, nil
}

func (s *catalogService) SearchCategories(query string, page repository.Page) ([]*entity.Category, error) {
	return s.categoryRepository.Search(query, page)
}

func (s *catalogService) DeleteCategory(slug string) error {
	err := s.categoryRepository.DeleteBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("category not found")
	}
	return err
}

func (s *catalogService) CreateGenre(name, slug string) (*entity.Genre, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if _, err := s.genreRepository.GetBySlug(slug); err == nil {
		return nil, apperr.Conflict("a genre with this slug already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := &entity.Genre{Name: name, Slug: slug}
	if err := s.genreRepository.Create(genre); err != nil {
		return nil, err
	}
	s.logger.Info("created genre", zap.String("slug", slug))
	return genre, nil
}

func (s *catalogService) SearchGenres(query string, page repository.Page) ([]*entity.Genre, error) {
	return s.genreRepository.Search(query, page)
}

func (s *catalogService) DeleteGenre(slug string) error {
	err := s.genreRepository.DeleteBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("genre not found")
	}
	return err
}
