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

// Comments live under a review, same scoping idea as reviews under a title.
type CommentRepository interface {
	Create(comment *entity.Comment) error                            // Inserts a comment
	GetByID(reviewID, id uint) (*entity.Comment, error)              // Retrieves the comment with the given id under the given review, author preloaded
	ListByReview(reviewID uint, page Page) ([]*entity.Comment, error) // Retrieves the comments of a review, newest first
	Save(comment *entity.Comment) error                              // Persists changes on a loaded comment
	Delete(comment *entity.Comment) error                            // Removes the comment
}

// Implementation of the repository using a SQLite DB
type SQLiteCommentRepository struct {
	db *gorm.DB
}

func NewSQLiteCommentRepository(db *gorm.DB) CommentRepository {
	return &SQLiteCommentRepository{db}
}

func (repo *SQLiteCommentRepository) Create(comment *entity.Comment) error {
	return repo.db.Create(comment).Error
}

func (repo *SQLiteCommentRepository) GetByID(reviewID, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	err := repo.db.Preload("Author").
		Where("review_id = ?", reviewID).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (repo *SQLiteCommentRepository) ListByReview(reviewID uint, page Page) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := repo.db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("pub_date DESC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&comments).Error
	return comments, err
}

func (repo *SQLiteCommentRepository) Save(comment *entity.Comment) error {
	return repo.db.Save(comment).Error
}

func (repo *SQLiteCommentRepository) Delete(comment *entity.Comment) error {
	return repo.db.Delete(comment).Error
}
