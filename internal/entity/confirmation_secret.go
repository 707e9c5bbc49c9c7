/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

// Just the ID of a user with the hash of its confirmation code.
// It's stored in a different table so that even when doing SELECT * on a user, the hash is untouched.
// The record is cleared once the code has been exchanged for a token, so each code works only once.
type ConfirmationSecret struct {
	UserID uint   `gorm:"primaryKey" json:"-"`        // ID of the user
	Hash   string `gorm:"not null;index" json:"-"`    // Hash of the emailed code. (Currently calculated with BCrypt, already salted, default cost used)
}
