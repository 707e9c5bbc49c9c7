/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

// Category a title belongs to (e.g. "Movies", "Books"). Slug-addressed, admin managed.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"-"`                        // Unique identifier, kept out of the API (slug is the key there)
	Name string `gorm:"size:256;not null;index" json:"name"`        // Human readable name
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`   // URL-safe unique key
}

// Genre of a title (e.g. "Comedy"). A title can have many, a genre belongs to many titles.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"-"`                        // Unique identifier, kept out of the API (slug is the key there)
	Name string `gorm:"size:256;not null;index" json:"name"`        // Human readable name
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`   // URL-safe unique key
}

// Title is a single piece of content of the catalog (a film, a book...). Users review titles.
type Title struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                // Unique identifier
	Name        string `gorm:"size:256;not null;index" json:"name"` // Name of the work
	Year        int    `gorm:"not null" json:"year"`                // Release year, between 0 and the current one
	Description string `gorm:"default:''" json:"description"`

	CategoryID *uint     `json:"-"`                                                                     // Nullable on purpose: deleting a category must not delete its titles
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"category"`                          // Category the title belongs to, may be absent
	Genres     []*Genre  `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE" json:"genre"`       // Genres of the title, through the title_genres join table

	Rating *int `gorm:"-" json:"rating"` // Rounded mean of the review scores, nil when there are no reviews. Never stored, computed on read.
}
