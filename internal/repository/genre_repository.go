/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"yamdb/internal/entity"

	"gorm.io/gorm"
)

// Genres mirror categories: slug-addressed, admin managed, open reads.
type GenreRepository interface {
	Create(genre *entity.Genre) error                         // Inserts a genre
	GetBySlug(slug string) (*entity.Genre, error)             // Retrieves the genre with the given slug
	GetBySlugs(slugs []string) ([]*entity.Genre, error)       // Retrieves all the genres with the given slugs, used when creating a title
	Search(query string, page Page) ([]*entity.Genre, error)  // Retrieves the genres whose name or slug contains the query, ordered by name
	DeleteBySlug(slug string) error                           // Removes the genre and its join rows. Titles themselves are untouched
}

// Implementation of the repository using a SQLite DB
type SQLiteGenreRepository struct {
	db *gorm.DB
}

func NewSQLiteGenreRepository(db *gorm.DB) GenreRepository {
	return &SQLiteGenreRepository{db}
}

func (repo *SQLiteGenreRepository) Create(genre *entity.Genre) error {
	return repo.db.Create(genre).Error
}

func (repo *SQLiteGenreRepository) GetBySlug(slug string) (*entity.Genre, error) {
	var genre entity.Genre
	if err := repo.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (repo *SQLiteGenreRepository) GetBySlugs(slugs []string) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	err := repo.db.Where("slug IN ?", slugs).Find(&genres).Error
	return genres, err
}

func (repo *SQLiteGenreRepository) Search(query string, page Page) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	q := repo.db.Order("name")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR slug LIKE ?", like, like)
	}
	err := q.Offset(page.Offset).Limit(page.Limit).Find(&genres).Error
	return genres, err
}

func (repo *SQLiteGenreRepository) DeleteBySlug(slug string) error {
	res := repo.db.Where("slug = ?", slug).Delete(&entity.Genre{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
