/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"strings"
	"testing"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/repository"
	"yamdb/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *captureSender, *token.Manager) {
	t.Helper()
	userRepo := repository.NewSQLiteUserRepository(newTestDB(t))
	tokens := token.NewManager("test-secret", time.Hour)
	mail := &captureSender{}
	return NewAuthService(userRepo, tokens, mail, testLogger()), mail, tokens
}

// codeFrom digs the confirmation code out of the captured mail body.
func codeFrom(t *testing.T, mail *captureSender) string {
	t.Helper()
	idx := strings.LastIndex(mail.body, ": ")
	require.Greater(t, idx, 0, "mail body carries no code: %q", mail.body)
	return mail.body[idx+2:]
}

func TestSignUpCreatesUserAndMailsCode(t *testing.T) {
	auth, mail, _ := newAuthService(t)

	user, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)
	assert.Equal(t, "frodo", user.Username)
	assert.Equal(t, 1, mail.sent)
	assert.Equal(t, "frodo@shire.me", mail.to)
	assert.Len(t, codeFrom(t, mail), 32)
}

func TestSignUpReusesUserAndRotatesCode(t *testing.T) {
	auth, mail, tokens := newAuthService(t)

	first, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)
	firstCode := codeFrom(t, mail)

	second, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, mail.sent)

	// The first code died with the second sign-up
	_, err = auth.IssueToken("frodo", firstCode)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	raw, err := auth.IssueToken("frodo", codeFrom(t, mail))
	require.NoError(t, err)
	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
}

func TestSignUpRejectsReservedUsername(t *testing.T) {
	auth, _, _ := newAuthService(t)

	for _, username := range []string{"me", "Me", "ME", "mE"} {
		_, err := auth.SignUp(username, "someone@example.com")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "username %q", username)
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	auth, _, _ := newAuthService(t)

	_, err := auth.SignUp("has spaces", "someone@example.com")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = auth.SignUp("", "someone@example.com")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = auth.SignUp("frodo", "not-an-address")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = auth.SignUp(strings.Repeat("a", 151), "someone@example.com")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSignUpRejectsPartialCollisions(t *testing.T) {
	auth, _, _ := newAuthService(t)

	_, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)

	// Same email, different username
	_, err = auth.SignUp("sam", "frodo@shire.me")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Same username, different email
	_, err = auth.SignUp("frodo", "other@shire.me")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSignUpFailsWhenMailFails(t *testing.T) {
	auth, mail, _ := newAuthService(t)
	mail.fail = true

	_, err := auth.SignUp("frodo", "frodo@shire.me")
	assert.Error(t, err)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	auth, _, _ := newAuthService(t)

	_, err := auth.IssueToken("nobody", "whatever")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestIssueTokenWrongCode(t *testing.T) {
	auth, _, _ := newAuthService(t)

	_, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)

	_, err = auth.IssueToken("frodo", "definitely-wrong")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestConfirmationCodeIsSingleUse(t *testing.T) {
	auth, mail, _ := newAuthService(t)

	_, err := auth.SignUp("frodo", "frodo@shire.me")
	require.NoError(t, err)
	code := codeFrom(t, mail)

	_, err = auth.IssueToken("frodo", code)
	require.NoError(t, err)

	// The secret was consumed by the successful exchange
	_, err = auth.IssueToken("frodo", code)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
