/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package mailer delivers the confirmation codes. The platform only ever
// sends one kind of message, so the surface is a single Send.
package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Sender delivers a plain text message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// ConfirmationMessage builds the subject and body carrying the code.
func ConfirmationMessage(code string) (subject, body string) {
	return "YaMDb confirmation code", fmt.Sprintf("Your confirmation code: %s", code)
}

// SMTPSender sends real mail through a plain SMTP relay.
type SMTPSender struct {
	addr string    // host:port of the relay
	from string    // Sender address on the envelope and the From header
	auth smtp.Auth // Nil when the relay needs no authentication
}

func NewSMTPSender(addr, from, username, password, host string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, to, subject, body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

// LogSender just logs the message instead of sending it. Used in development,
// where reading the code off the server log is good enough.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.logger.Info("outgoing mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
