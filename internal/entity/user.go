/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

// Role of a user inside the platform. It decides what the user can do beyond its own content.
type Role string

const (
	RoleUser      Role = "user"      // Regular user, can post reviews and comments
	RoleModerator Role = "moderator" // Can edit and delete reviews and comments of everyone
	RoleAdmin     Role = "admin"     // Full control, manages the catalog and the users
)

// Valid reports whether the role is one of the three known ones.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// User entity for the review platform
type User struct {
	ID        uint   `gorm:"primaryKey" json:"-"`                          // Unique identifier
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"` // Unique handle, pattern restricted
	Email     string `gorm:"uniqueIndex;size:254;not null" json:"email"`    // Unique email the confirmation code is sent to
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `json:"bio"`                                          // Free text the user writes about himself
	Role      Role   `gorm:"size:20;not null;default:user" json:"role"`    // One of user, moderator, admin
	Superuser bool   `gorm:"not null;default:false" json:"-"`              // Set out of band, grants admin rights regardless of Role

	Secret ConfirmationSecret `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Hash of the last emailed confirmation code
}
