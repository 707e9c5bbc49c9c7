/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"strings"

	"yamdb/internal/entity"

	"gorm.io/gorm"
)

// TitleFilter carries the optional list predicates. All the set ones are ANDed together.
type TitleFilter struct {
	Category string // Exact slug of the category
	Genre    string // Exact slug of one of the genres
	Name     string // Substring of the name, case insensitive
	Year     *int   // Exact release year
}

// Titles are the center of the catalog. Reads always come back with the
// category and the genres preloaded, the rating is annotated by the service.
type TitleRepository interface {
	Create(title *entity.Title) error                          // Inserts a title with its genre associations
	GetByID(id uint) (*entity.Title, error)                    // Retrieves a title with category and genres
	List(filter TitleFilter, page Page) ([]*entity.Title, error) // Retrieves the titles matching every set predicate, ordered by name
	Save(title *entity.Title) error                            // Persists changes on a loaded title, genre associations included
	Delete(id uint) error                                      // Removes the title and, by cascade, its reviews
	Exists(id uint) (bool, error)                              // Cheap existence probe, used before touching reviews
}

// Implementation of the repository using a SQLite DB
type SQLiteTitleRepository struct {
	db *gorm.DB
}

func NewSQLiteTitleRepository(db *gorm.DB) TitleRepository {
	return &SQLiteTitleRepository{db}
}

func (repo *SQLiteTitleRepository) Create(title *entity.Title) error {
	return repo.db.Create(title).Error
}

func (repo *SQLiteTitleRepository) GetByID(id uint) (*entity.Title, error) {
	var title entity.Title
	err := repo.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (repo *SQLiteTitleRepository) List(filter TitleFilter, page Page) ([]*entity.Title, error) {
	var titles []*entity.Title

	q := repo.db.Model(&entity.Title{}).
		Preload("Category").
		Preload("Genres").
		Order("titles.name")

	if filter.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}

	err := q.Offset(page.Offset).Limit(page.Limit).Find(&titles).Error
	return titles, err
}

func (repo *SQLiteTitleRepository) Save(title *entity.Title) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(title).Association("Genres").Replace(title.Genres); err != nil {
			return err
		}
		return tx.Save(title).Error
	})
}

func (repo *SQLiteTitleRepository) Delete(id uint) error {
	res := repo.db.Delete(&entity.Title{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *SQLiteTitleRepository) Exists(id uint) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.Title{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
