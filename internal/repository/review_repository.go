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

// Reviews live under a title: every read is scoped by the title id, so a
// review of another title can never leak through a crafted URL.
type ReviewRepository interface {
	Create(review *entity.Review) error                         // Inserts a review. The unique index on (title, author) is the real one-per-title guard
	GetByID(titleID, id uint) (*entity.Review, error)           // Retrieves the review with the given id under the given title, author preloaded
	ListByTitle(titleID uint, page Page) ([]*entity.Review, error) // Retrieves the reviews of a title, newest first
	Save(review *entity.Review) error                           // Persists changes on a loaded review
	Delete(review *entity.Review) error                         // Removes the review and, by cascade, its comments

	ExistsByTitleAndAuthor(titleID, authorID uint) (bool, error) // Pre-check for the one-review-per-title rule, only there for a friendlier error

	AverageScoresByTitle(titleIDs []uint) (map[uint]float64, error) // Mean score per title, titles without reviews are simply absent from the map
}

// Implementation of the repository using a SQLite DB
type SQLiteReviewRepository struct {
	db *gorm.DB
}

func NewSQLiteReviewRepository(db *gorm.DB) ReviewRepository {
	return &SQLiteReviewRepository{db}
}

func (repo *SQLiteReviewRepository) Create(review *entity.Review) error {
	return repo.db.Create(review).Error
}

func (repo *SQLiteReviewRepository) GetByID(titleID, id uint) (*entity.Review, error) {
	var review entity.Review
	err := repo.db.Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (repo *SQLiteReviewRepository) ListByTitle(titleID uint, page Page) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := repo.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&reviews).Error
	return reviews, err
}

func (repo *SQLiteReviewRepository) Save(review *entity.Review) error {
	return repo.db.Save(review).Error
}

func (repo *SQLiteReviewRepository) Delete(review *entity.Review) error {
	return repo.db.Delete(review).Error
}

func (repo *SQLiteReviewRepository) ExistsByTitleAndAuthor(titleID, authorID uint) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteReviewRepository) AverageScoresByTitle(titleIDs []uint) (map[uint]float64, error) {
	if len(titleIDs) == 0 {
		return map[uint]float64{}, nil
	}

	var rows []struct {
		TitleID uint
		Avg     float64
	}
	err := repo.db.Model(&entity.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	averages := make(map[uint]float64, len(rows))
	for _, row := range rows {
		averages[row.TitleID] = row.Avg
	}
	return averages, nil
}
