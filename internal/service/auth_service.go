/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"yamdb/internal/apperr"
	"yamdb/internal/entity"
	"yamdb/internal/mailer"
	"yamdb/internal/repository"
	"yamdb/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service used for the sign-up and token exchange phases
type AuthService interface {
	SignUp(username, email string) (*entity.User, error) // Creates (or reuses) the user, regenerates its confirmation code and emails it
	IssueToken(username, code string) (string, error)    // Exchanges a valid confirmation code for a signed bearer token
}

type authService struct {
	userRepository repository.UserRepository // Repository for users and their secrets
	tokens         *token.Manager            // Issues the bearer tokens
	mail           mailer.Sender             // Carries the confirmation codes out of band
	logger         *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, mail mailer.Sender, logger *zap.Logger) AuthService {
	return &authService{
		userRepository: userRepo,
		tokens:         tokens,
		mail:           mail,
		logger:         logger,
	}
}

// SignUp is idempotent on the same (username, email) pair: the user is reused
// and only the confirmation code changes. A partial collision with a different
// user (same email other username, or the reverse) is rejected instead.
func (a *authService) SignUp(username, email string) (*entity.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if taken, err := a.userRepository.HasOtherWithEmail(email, username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Invalid("email", "a user with this email already exists")
	}
	if taken, err := a.userRepository.HasOtherWithUsername(username, email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Invalid("username", "a user with this username already exists")
	}

	user, err := a.userRepository.GetByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &entity.User{Username: username, Email: email, Role: entity.RoleUser}
		if err := a.userRepository.Create(user); err != nil {
			return nil, err
		}
		a.logger.Info("registered new user", zap.String("username", username))
	} else if err != nil {
		return nil, err
	}

	code, err := newConfirmationCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := a.userRepository.SetSecret(user.ID, string(hash)); err != nil {
		return nil, err
	}

	subject, body := mailer.ConfirmationMessage(code)
	if err := a.mail.Send(user.Email, subject, body); err != nil {
		a.logger.Error("could not send the confirmation code", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	return user, nil
}

// IssueToken verifies the code against the stored secret and, on match,
// consumes the secret and signs a token bound to the user's id.
func (a *authService) IssueToken(username, code string) (string, error) {
	if username == "" || !usernamePattern.MatchString(username) {
		return "", apperr.Invalid("username", "may contain only letters, digits and @ . + - _")
	}

	user, err := a.userRepository.GetForExchange(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.NotFound("user not found")
	} else if err != nil {
		return "", err
	}

	if user.Secret.Hash == "" {
		// Either never requested or already spent. Same answer either way,
		// no point in telling an attacker which one it was.
		return "", apperr.Validation("invalid confirmation code")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Secret.Hash), []byte(code)); err != nil {
		return "", apperr.Validation("invalid confirmation code")
	}

	if err := a.userRepository.ClearSecret(user.ID); err != nil {
		return "", err
	}

	signed, err := a.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	a.logger.Info("issued token", zap.String("username", username))
	return signed, nil
}

// newConfirmationCode returns 16 random bytes, hex encoded (32 characters).
func newConfirmationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
