/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Review of a title, written by a user. One per (title, author) pair:
// the unique index is the real enforcement, the services only pre-check it for a nicer error.
type Review struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TitleID uint `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"` // Title this review is about
	AuthorID uint `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"` // User that wrote it

	Title  *Title `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Deleting the title deletes its reviews
	Author *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Deleting the author deletes its reviews

	Score   int       `gorm:"not null;check:score >= 1 AND score <= 10" json:"score"` // Mark given to the title, 1 to 10
	Text    string    `gorm:"not null" json:"text"`                                   // Actual content of the review
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"`                   // Time of publication
}

// Comment left by a user under a review. No uniqueness here, a user can comment as much as he wants.
type Comment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ReviewID uint `gorm:"not null;index" json:"-"` // Review this comment is under
	AuthorID uint `gorm:"not null;index" json:"-"` // User that wrote it

	Review *Review `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Deleting the review deletes its comments
	Author *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Deleting the author deletes its comments

	Text    string    `gorm:"not null" json:"text"`                 // Actual content of the comment
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"` // Time of publication
}
