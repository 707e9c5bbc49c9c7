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

// UserPatch carries the optional fields of a partial update. Nil means "leave it alone".
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *entity.Role // Honored only on the admin surface, never through the self profile
}

// Service used for the admin user surface and the self profile
type UserService interface {
	Create(username, email string, role entity.Role, patch UserPatch) (*entity.User, error) // Admin creation of a user, role included
	GetByUsername(username string) (*entity.User, error)                                    // Retrieves a single user
	Search(query string, page repository.Page) ([]*entity.User, error)                      // Retrieves users by username substring
	Update(username string, patch UserPatch) (*entity.User, error)                          // Admin partial update, role changes allowed
	Delete(username string) error                                                           // Removes a user and everything he wrote

	UpdateProfile(user *entity.User, patch UserPatch) (*entity.User, error) // Self update. The role field is silently dropped here
}

type userService struct {
	userRepository repository.UserRepository
	logger         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepository: userRepo,
		logger:         logger,
	}
}

func (s *userService) Create(username, email string, role entity.Role, patch UserPatch) (*entity.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.Invalid("role", "must be one of user, moderator, admin")
	}

	if taken, err := s.userRepository.HasOtherWithEmail(email, username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("a user with this email already exists")
	}
	if _, err := s.userRepository.GetByUsername(username); err == nil {
		return nil, apperr.Conflict("a user with this username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &entity.User{Username: username, Email: email, Role: role}
	applyPatch(user, patch, false)
	if err := s.userRepository.Create(user); err != nil {
		return nil, err
	}
	s.logger.Info("admin created user", zap.String("username", username), zap.String("role", string(role)))
	return user, nil
}

func (s *userService) GetByUsername(username string) (*entity.User, error) {
	user, err := s.userRepository.GetByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	return user, err
}

func (s *userService) Search(query string, page repository.Page) ([]*entity.User, error) {
	return s.userRepository.Search(query, page)
}

func (s *userService) Update(username string, patch UserPatch) (*entity.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.validatePatch(user, patch, true); err != nil {
		return nil, err
	}
	applyPatch(user, patch, true)
	if err := s.userRepository.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(username string) error {
	err := s.userRepository.DeleteByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}

func (s *userService) UpdateProfile(user *entity.User, patch UserPatch) (*entity.User, error) {
	// Role is excluded from the writable set on purpose: a user must not be
	// able to escalate himself through his own profile. No error, the field
	// is just ignored, the rest of the patch still applies.
	if err := s.validatePatch(user, patch, false); err != nil {
		return nil, err
	}
	applyPatch(user, patch, false)
	if err := s.userRepository.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) validatePatch(user *entity.User, patch UserPatch, allowRole bool) error {
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return err
		}
		if taken, err := s.userRepository.HasOtherWithEmail(*patch.Email, user.Username); err != nil {
			return err
		} else if taken {
			return apperr.Conflict("a user with this email already exists")
		}
	}
	if allowRole && patch.Role != nil && !patch.Role.Valid() {
		return apperr.Invalid("role", "must be one of user, moderator, admin")
	}
	return nil
}

func applyPatch(user *entity.User, patch UserPatch, allowRole bool) {
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if allowRole && patch.Role != nil {
		user.Role = *patch.Role
	}
}
