/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"fmt"
	"testing"

	"yamdb/internal/apperr"
	"yamdb/internal/entity"
	"yamdb/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewFixture struct {
	db      *gorm.DB
	reviews ReviewService
	title   *entity.Title
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	db := newTestDB(t)

	title := &entity.Title{Name: "The Green Mile", Year: 1999}
	require.NoError(t, db.Create(title).Error)

	return &reviewFixture{
		db: db,
		reviews: NewReviewService(
			repository.NewSQLiteReviewRepository(db),
			repository.NewSQLiteTitleRepository(db),
			testLogger(),
		),
		title: title,
	}
}

func (f *reviewFixture) user(t *testing.T, username string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Role:     role,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)

	review, err := f.reviews.Create(author, f.title.ID, 8, "a fine piece of work")
	require.NoError(t, err)
	assert.Equal(t, 8, review.Score)
	assert.Equal(t, author.ID, review.AuthorID)
	assert.False(t, review.PubDate.IsZero())
}

func TestCreateReviewRequiresAuthentication(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.Create(nil, f.title.ID, 8, "text")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)

	_, err := f.reviews.Create(author, 9999, 8, "text")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateReviewValidatesInput(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)

	for _, score := range []int{0, -1, 11} {
		_, err := f.reviews.Create(author, f.title.ID, score, "text")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "score %d", score)
	}

	_, err := f.reviews.Create(author, f.title.ID, 5, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSecondReviewOfSameTitleConflicts(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)

	_, err := f.reviews.Create(author, f.title.ID, 8, "first thoughts")
	require.NoError(t, err)

	_, err = f.reviews.Create(author, f.title.ID, 3, "changed my mind")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A different user still gets to post his own
	other := f.user(t, "sam", entity.RoleUser)
	_, err = f.reviews.Create(other, f.title.ID, 6, "decent")
	assert.NoError(t, err)
}

func TestUpdateReviewPermissions(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)
	stranger := f.user(t, "gollum", entity.RoleUser)
	moderator := f.user(t, "gandalf", entity.RoleModerator)

	review, err := f.reviews.Create(author, f.title.ID, 8, "first thoughts")
	require.NoError(t, err)

	newText := "on reflection"
	_, err = f.reviews.Update(stranger, f.title.ID, review.ID, ReviewPatch{Text: &newText})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.reviews.Update(nil, f.title.ID, review.ID, ReviewPatch{Text: &newText})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	updated, err := f.reviews.Update(author, f.title.ID, review.ID, ReviewPatch{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)

	score := 2
	updated, err = f.reviews.Update(moderator, f.title.ID, review.ID, ReviewPatch{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Score)

	badScore := 42
	_, err = f.reviews.Update(author, f.title.ID, review.ID, ReviewPatch{Score: &badScore})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateMissingReviewIsNotFoundBeforeForbidden(t *testing.T) {
	f := newReviewFixture(t)
	stranger := f.user(t, "gollum", entity.RoleUser)

	text := "text"
	_, err := f.reviews.Update(stranger, f.title.ID, 9999, ReviewPatch{Text: &text})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteReviewPermissions(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)
	stranger := f.user(t, "gollum", entity.RoleUser)
	admin := f.user(t, "elrond", entity.RoleAdmin)

	review, err := f.reviews.Create(author, f.title.ID, 8, "first thoughts")
	require.NoError(t, err)

	err = f.reviews.Delete(stranger, f.title.ID, review.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, f.reviews.Delete(admin, f.title.ID, review.ID))

	_, err = f.reviews.Get(f.title.ID, review.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListReviews(t *testing.T) {
	f := newReviewFixture(t)
	page := repository.Page{Limit: 50}

	_, err := f.reviews.List(9999, page)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	for i, username := range []string{"frodo", "sam", "merry"} {
		author := f.user(t, username, entity.RoleUser)
		_, err := f.reviews.Create(author, f.title.ID, 5+i, "text")
		require.NoError(t, err)
	}

	reviews, err := f.reviews.List(f.title.ID, page)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	reviews, err = f.reviews.List(f.title.ID, repository.Page{Offset: 2, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewIsScopedToItsTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := f.user(t, "frodo", entity.RoleUser)

	other := &entity.Title{Name: "Another One", Year: 2001}
	require.NoError(t, f.db.Create(other).Error)

	review, err := f.reviews.Create(author, f.title.ID, 8, "text")
	require.NoError(t, err)

	// Reaching the review through the wrong title is a 404
	_, err = f.reviews.Get(other.ID, review.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
