/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/permission"
	"yamdb/internal/repository"
	"yamdb/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware bundles the cross cutting request plumbing: logging,
// authentication and the class level permission gates.
type Middleware struct {
	tokens         *token.Manager
	userRepository repository.UserRepository
	logger         *zap.Logger
}

func NewMiddleware(tokens *token.Manager, userRepo repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:         tokens,
		userRepository: userRepo,
		logger:         logger,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LogRequests logs one line per request, tagged with a fresh request id.
func (m *Middleware) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.logger.Info("request",
			zap.String("request_id", uuid.New().String()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// Authenticate resolves the Bearer token, if any, into the request identity.
// No token means an anonymous request and the handlers decide what that is
// worth. A token that is present but bad is rejected right here.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondError(w, apperr.Unauthorized("invalid authorization header"))
			return
		}

		userID, err := m.tokens.Verify(raw)
		if err != nil {
			respondError(w, apperr.Unauthorized("invalid or expired token"))
			return
		}
		user, err := m.userRepository.GetByID(userID)
		if err != nil {
			// Token can outlive its user (account deleted by an admin).
			respondError(w, apperr.Unauthorized("invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated blocks anonymous callers.
func (m *Middleware) RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identityFrom(r) == nil {
			respondError(w, apperr.Unauthorized("authentication credentials were not provided"))
			return
		}
		next(w, r)
	}
}

// Gate applies the class level rule for (action, resource) before the handler
// runs. Instance level rules run later, in the services, once the target is loaded.
func (m *Middleware) Gate(action permission.Action, resource permission.Resource, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := permission.Snapshot(identityFrom(r), false)
		if err := permission.Err(permission.Decide(snap, action, resource)); err != nil {
			respondError(w, err)
			return
		}
		next(w, r)
	}
}
