/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"testing"

	"yamdb/internal/apperr"
	"yamdb/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) CatalogService {
	t.Helper()
	db := newTestDB(t)
	return NewCatalogService(
		repository.NewSQLiteCategoryRepository(db),
		repository.NewSQLiteGenreRepository(db),
		testLogger(),
	)
}

func TestCreateCategory(t *testing.T) {
	catalog := newCatalogService(t)

	category, err := catalog.CreateCategory("Movies", "movies")
	require.NoError(t, err)
	assert.Equal(t, "movies", category.Slug)

	// Same slug again
	_, err = catalog.CreateCategory("Films", "movies")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateCategoryValidatesSlug(t *testing.T) {
	catalog := newCatalogService(t)

	for _, slug := range []string{"", "has spaces", "ill*gal"} {
		_, err := catalog.CreateCategory("Movies", slug)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "slug %q", slug)
	}
}

func TestSearchCategories(t *testing.T) {
	catalog := newCatalogService(t)
	page := repository.Page{Limit: 50}

	_, err := catalog.CreateCategory("Movies", "movies")
	require.NoError(t, err)
	_, err = catalog.CreateCategory("Books", "books")
	require.NoError(t, err)

	found, err := catalog.SearchCategories("mov", page)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "movies", found[0].Slug)

	found, err = catalog.SearchCategories("", page)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestDeleteCategory(t *testing.T) {
	catalog := newCatalogService(t)

	_, err := catalog.CreateCategory("Movies", "movies")
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteCategory("movies"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(catalog.DeleteCategory("movies")))
}

func TestGenresBehaveLikeCategories(t *testing.T) {
	catalog := newCatalogService(t)
	page := repository.Page{Limit: 50}

	_, err := catalog.CreateGenre("Drama", "drama")
	require.NoError(t, err)

	_, err = catalog.CreateGenre("More Drama", "drama")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	found, err := catalog.SearchGenres("dra", page)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, catalog.DeleteGenre("drama"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(catalog.DeleteGenre("drama")))
}
