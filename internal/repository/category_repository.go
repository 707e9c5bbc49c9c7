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

// Categories are slug-addressed, so everything here goes through the slug.
type CategoryRepository interface {
	Create(category *entity.Category) error                    // Inserts a category
	GetBySlug(slug string) (*entity.Category, error)           // Retrieves the category with the given slug
	Search(query string, page Page) ([]*entity.Category, error) // Retrieves the categories whose name or slug contains the query, ordered by name
	DeleteBySlug(slug string) error                            // Removes the category. Titles inside it are kept, their category just becomes absent
}

// Implementation of the repository using a SQLite DB
type SQLiteCategoryRepository struct {
	db *gorm.DB
}

func NewSQLiteCategoryRepository(db *gorm.DB) CategoryRepository {
	return &SQLiteCategoryRepository{db}
}

func (repo *SQLiteCategoryRepository) Create(category *entity.Category) error {
	return repo.db.Create(category).Error
}

func (repo *SQLiteCategoryRepository) GetBySlug(slug string) (*entity.Category, error) {
	var category entity.Category
	if err := repo.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (repo *SQLiteCategoryRepository) Search(query string, page Page) ([]*entity.Category, error) {
	var categories []*entity.Category
	q := repo.db.Order("name")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR slug LIKE ?", like, like)
	}
	err := q.Offset(page.Offset).Limit(page.Limit).Find(&categories).Error
	return categories, err
}

func (repo *SQLiteCategoryRepository) DeleteBySlug(slug string) error {
	res := repo.db.Where("slug = ?", slug).Delete(&entity.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
