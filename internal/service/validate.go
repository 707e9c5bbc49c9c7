/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"yamdb/internal/apperr"
)

// Input validation shared by the services. Everything here runs before any
// mutation, so a rejected request leaves the store untouched.

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	maxNameLen     = 256
	maxSlugLen     = 50
)

// validateUsername enforces the handle rules: pattern restricted, length capped
// and "me" reserved in any casing (it's the path of the self-profile endpoint).
func validateUsername(username string) error {
	if username == "" {
		return apperr.Invalid("username", "this field is required")
	}
	if len(username) > maxUsernameLen {
		return apperr.Invalid("username", "must be at most 150 characters")
	}
	if strings.EqualFold(username, "me") {
		return apperr.Invalid("username", "username 'me' is reserved")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Invalid("username", "may contain only letters, digits and @ . + - _")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.Invalid("email", "this field is required")
	}
	if len(email) > maxEmailLen {
		return apperr.Invalid("email", "must be at most 254 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Invalid("email", "enter a valid email address")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return apperr.Invalid("slug", "this field is required")
	}
	if len(slug) > maxSlugLen {
		return apperr.Invalid("slug", "must be at most 50 characters")
	}
	if !slugPattern.MatchString(slug) {
		return apperr.Invalid("slug", "may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apperr.Invalid("name", "this field is required")
	}
	if len(name) > maxNameLen {
		return apperr.Invalid("name", "must be at most 256 characters")
	}
	return nil
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return apperr.Invalid("score", "must be between 1 and 10")
	}
	return nil
}

func validateYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return apperr.Invalid("year", "must be between 0 and the current year")
	}
	return nil
}
