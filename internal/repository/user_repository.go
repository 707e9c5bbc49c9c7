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
	"gorm.io/gorm/clause"
)

// This repository is used to manipulate the users of the platform.
// Lookups by username are the norm, since the API addresses users that way.
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user in the repository
	Save(user *entity.User) error   // Persists changes done on an already loaded user

	GetByID(id uint) (*entity.User, error)                // Retrieves the user with the given id
	GetByUsername(username string) (*entity.User, error)  // Retrieves the user with the given username
	GetForExchange(username string) (*entity.User, error) // Retrieves the user with its confirmation secret, hence, used for the token exchange

	HasOtherWithEmail(email, username string) (bool, error)    // Does a DIFFERENT user (not `username`) already hold this email?
	HasOtherWithUsername(username, email string) (bool, error) // Does a DIFFERENT user (not `email`) already hold this username?

	Search(query string, page Page) ([]*entity.User, error) // Retrieves the users whose username contains the query, ordered by username

	DeleteByUsername(username string) error // Removes the user and, by cascade, everything he wrote

	SetSecret(userID uint, hash string) error // Overwrites (or creates) the confirmation secret of the user
	ClearSecret(userID uint) error            // Drops the confirmation secret, making the emailed code unusable
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return repo.db.Create(user).Error
}

func (repo *SQLiteUserRepository) Save(user *entity.User) error {
	return repo.db.Save(user).Error
}

func (repo *SQLiteUserRepository) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := repo.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetForExchange(username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Preload("Secret").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) HasOtherWithEmail(email, username string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.User{}).
		Where("email = ? AND username <> ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteUserRepository) HasOtherWithUsername(username, email string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.User{}).
		Where("username = ? AND email <> ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteUserRepository) Search(query string, page Page) ([]*entity.User, error) {
	var users []*entity.User
	q := repo.db.Order("username")
	if query != "" {
		q = q.Where("username LIKE ?", "%"+query+"%")
	}
	err := q.Offset(page.Offset).Limit(page.Limit).Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) DeleteByUsername(username string) error {
	res := repo.db.Where("username = ?", username).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *SQLiteUserRepository) SetSecret(userID uint, hash string) error {
	secret := entity.ConfirmationSecret{UserID: userID, Hash: hash}
	return repo.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hash"}),
	}).Create(&secret).Error
}

func (repo *SQLiteUserRepository) ClearSecret(userID uint) error {
	return repo.db.Where("user_id = ?", userID).Delete(&entity.ConfirmationSecret{}).Error
}
