/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yamdb/internal/entity"
	"yamdb/internal/repository"
	"yamdb/internal/service"
	"yamdb/internal/token"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testMailbox struct {
	body string
}

func (m *testMailbox) Send(to, subject, body string) error {
	m.body = body
	return nil
}

func (m *testMailbox) code(t *testing.T) string {
	t.Helper()
	idx := strings.LastIndex(m.body, ": ")
	require.Greater(t, idx, 0)
	return m.body[idx+2:]
}

type apiFixture struct {
	router *mux.Router
	db     *gorm.DB
	mail   *testMailbox
}

// newAPIFixture stands up the whole stack against a private in-memory
// database, wired exactly like the server wires it.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.ConfirmationSecret{},
		&entity.Category{},
		&entity.Genre{},
		&entity.Title{},
		&entity.Review{},
		&entity.Comment{},
	))

	logger := zap.NewNop()
	userRepo := repository.NewSQLiteUserRepository(db)
	categoryRepo := repository.NewSQLiteCategoryRepository(db)
	genreRepo := repository.NewSQLiteGenreRepository(db)
	titleRepo := repository.NewSQLiteTitleRepository(db)
	reviewRepo := repository.NewSQLiteReviewRepository(db)
	commentRepo := repository.NewSQLiteCommentRepository(db)

	tokens := token.NewManager("test-secret", time.Hour)
	mail := &testMailbox{}

	handlers := Handlers{
		Auth:     NewAuthHandler(service.NewAuthService(userRepo, tokens, mail, logger)),
		User:     NewUserHandler(service.NewUserService(userRepo, logger)),
		Category: NewCategoryHandler(service.NewCatalogService(categoryRepo, genreRepo, logger)),
		Genre:    NewGenreHandler(service.NewCatalogService(categoryRepo, genreRepo, logger)),
		Title:    NewTitleHandler(service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, logger)),
		Review:   NewReviewHandler(service.NewReviewService(reviewRepo, titleRepo, logger)),
		Comment:  NewCommentHandler(service.NewCommentService(commentRepo, reviewRepo, logger)),
	}

	return &apiFixture{
		router: NewRouter(handlers, NewMiddleware(tokens, userRepo, logger)),
		db:     db,
		mail:   mail,
	}
}

// do runs one request through the router. A non-empty token goes into the
// Authorization header, a non-nil body is sent as JSON.
func (f *apiFixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

// signUp walks the full registration flow and hands back a usable bearer token.
func (f *apiFixture) signUp(t *testing.T, username string) string {
	t.Helper()

	rec := f.do(t, "POST", "/api/v1/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, "POST", "/api/v1/auth/token", "", map[string]string{
		"username":          username,
		"confirmation_code": f.mail.code(t),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// promote flips a user's role straight in the database, the way an operator would.
func (f *apiFixture) promote(t *testing.T, username string, role entity.Role) {
	t.Helper()
	require.NoError(t, f.db.Model(&entity.User{}).
		Where("username = ?", username).
		Update("role", role).Error)
}

func TestSignUpAndTokenFlow(t *testing.T) {
	f := newAPIFixture(t)

	bearer := f.signUp(t, "frodo")

	rec := f.do(t, "GET", "/api/v1/users/me", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeBody(t, rec, &me)
	assert.Equal(t, "frodo", me.Username)
	assert.Equal(t, "user", me.Role)
}

func TestMeRequiresAuthentication(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, "GET", "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteMeIsNotAllowed(t *testing.T) {
	f := newAPIFixture(t)
	bearer := f.signUp(t, "frodo")

	rec := f.do(t, "DELETE", "/api/v1/users/me", bearer, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCategoryWritesAreGated(t *testing.T) {
	f := newAPIFixture(t)
	payload := map[string]string{"name": "Movies", "slug": "movies"}

	// Anonymous: must log in first
	rec := f.do(t, "POST", "/api/v1/categories", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Plain user: known but not allowed
	bearer := f.signUp(t, "frodo")
	rec = f.do(t, "POST", "/api/v1/categories", bearer, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin: goes through. The token predates the promotion and still works,
	// the role is read from the user record on every request.
	f.promote(t, "frodo", entity.RoleAdmin)
	rec = f.do(t, "POST", "/api/v1/categories", bearer, payload)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reads stay open
	rec = f.do(t, "GET", "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserSurfaceIsAdminOnly(t *testing.T) {
	f := newAPIFixture(t)

	bearer := f.signUp(t, "frodo")
	rec := f.do(t, "GET", "/api/v1/users", bearer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.promote(t, "frodo", entity.RoleAdmin)
	rec = f.do(t, "GET", "/api/v1/users", bearer, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, "POST", "/api/v1/users", bearer, map[string]string{
		"username": "sam",
		"email":    "sam@example.com",
		"role":     "moderator",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, "GET", "/api/v1/users/sam", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sam struct {
		Role string `json:"role"`
	}
	decodeBody(t, rec, &sam)
	assert.Equal(t, "moderator", sam.Role)
}

func TestReviewFlowEndToEnd(t *testing.T) {
	f := newAPIFixture(t)

	admin := f.signUp(t, "elrond")
	f.promote(t, "elrond", entity.RoleAdmin)

	rec := f.do(t, "POST", "/api/v1/titles", admin, map[string]any{
		"name": "The Green Mile",
		"year": 1999,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var title struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &title)

	// Two users post their reviews
	frodo := f.signUp(t, "frodo")
	rec = f.do(t, "POST", fmt.Sprintf("/api/v1/titles/%d/reviews", title.ID), frodo, map[string]any{
		"text": "a fine piece of work", "score": 8,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var review struct {
		ID     uint   `json:"id"`
		Author string `json:"author"`
	}
	decodeBody(t, rec, &review)
	assert.Equal(t, "frodo", review.Author)

	sam := f.signUp(t, "sam")
	rec = f.do(t, "POST", fmt.Sprintf("/api/v1/titles/%d/reviews", title.ID), sam, map[string]any{
		"text": "even better on a rewatch", "score": 9,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// A second review by the same author conflicts
	rec = f.do(t, "POST", fmt.Sprintf("/api/v1/titles/%d/reviews", title.ID), frodo, map[string]any{
		"text": "changed my mind", "score": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The title now carries the rounded mean of 8 and 9
	rec = f.do(t, "GET", fmt.Sprintf("/api/v1/titles/%d", title.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Rating *int `json:"rating"`
	}
	decodeBody(t, rec, &got)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 9, *got.Rating)

	// Sam cannot touch frodo's review, a moderator can
	rec = f.do(t, "DELETE", fmt.Sprintf("/api/v1/titles/%d/reviews/%d", title.ID, review.ID), sam, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	gandalf := f.signUp(t, "gandalf")
	f.promote(t, "gandalf", entity.RoleModerator)
	rec = f.do(t, "DELETE", fmt.Sprintf("/api/v1/titles/%d/reviews/%d", title.ID, review.ID), gandalf, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCommentFlowEndToEnd(t *testing.T) {
	f := newAPIFixture(t)

	admin := f.signUp(t, "elrond")
	f.promote(t, "elrond", entity.RoleAdmin)

	rec := f.do(t, "POST", "/api/v1/titles", admin, map[string]any{"name": "X", "year": 2000})
	require.Equal(t, http.StatusCreated, rec.Code)
	var title struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &title)

	frodo := f.signUp(t, "frodo")
	rec = f.do(t, "POST", fmt.Sprintf("/api/v1/titles/%d/reviews", title.ID), frodo, map[string]any{
		"text": "text", "score": 7,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var review struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &review)

	base := fmt.Sprintf("/api/v1/titles/%d/reviews/%d/comments", title.ID, review.ID)

	rec = f.do(t, "POST", base, "", map[string]string{"text": "anonymous opinion"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sam := f.signUp(t, "sam")
	rec = f.do(t, "POST", base, sam, map[string]string{"text": "well said"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment struct {
		ID     uint   `json:"id"`
		Author string `json:"author"`
	}
	decodeBody(t, rec, &comment)
	assert.Equal(t, "sam", comment.Author)

	rec = f.do(t, "GET", base, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, "PATCH", fmt.Sprintf("%s/%d", base, comment.ID), frodo, map[string]string{"text": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, "PATCH", fmt.Sprintf("%s/%d", base, comment.ID), sam, map[string]string{"text": "well said indeed"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidationErrorsAreFieldKeyed(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "POST", "/api/v1/auth/signup", "", map[string]string{
		"username": "me",
		"email":    "me@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	decodeBody(t, rec, &fields)
	assert.Contains(t, fields, "username")
}

func TestUnknownTitleIs404(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "GET", "/api/v1/titles/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, "GET", "/api/v1/titles/9999/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
