package app

import (
	"strings"

	"museworks_backend/internal/email"
	"museworks_backend/internal/logger"
)

// LogEmailProvider используется, когда SMTP отключен: письма только логируются.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(e *email.Email) error {
	logger.Info("email suppressed (smtp disabled)",
		"to", strings.Join(e.To, ","),
		"subject", e.Subject,
	)
	return nil
}

func (m *LogEmailProvider) Validate() error { return nil }
