// ABOUTME: Contact form validation, duplicate suppression, and submission.
// ABOUTME: The last submission is remembered in session storage for five minutes.
package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitforge/internal/cache"
	"github.com/harperreed/fitforge/internal/models"
)

const (
	// DedupWindow is how long an identical email and subject pair is refused.
	DedupWindow = 5 * time.Minute
	// MinMessageLength is the shortest accepted message, in characters.
	MinMessageLength = 10
)

// ErrDuplicate is returned for a resubmission inside DedupWindow.
var ErrDuplicate = errors.New("this message was already sent, please wait a few minutes")

// Submitter posts a contact message.
type Submitter interface {
	SubmitContact(ctx context.Context, msg models.ContactMessage) error
}

type lastSubmission struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// Form sends contact messages.
type Form struct {
	api    Submitter
	cache  *cache.Cache
	logger *log.Logger
}

// NewForm creates a contact form.
func NewForm(client Submitter, c *cache.Cache, logger *log.Logger) *Form {
	return &Form{api: client, cache: c, logger: logger}
}

// Validate checks every field locally.
func Validate(msg models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" {
		return models.Invalid("name", "is required")
	}
	if strings.TrimSpace(msg.Email) == "" {
		return models.Invalid("email", "is required")
	}
	if addr, err := mail.ParseAddress(msg.Email); err != nil || addr.Address != strings.TrimSpace(msg.Email) {
		return models.Invalid("email", "is not a valid address")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return models.Invalid("subject", "is required")
	}
	if len([]rune(strings.TrimSpace(msg.Message))) < MinMessageLength {
		return models.Invalid("message", "must be at least 10 characters")
	}
	return nil
}

// Submit validates, refuses duplicates, and sends the message.
func (f *Form) Submit(ctx context.Context, msg models.ContactMessage) error {
	msg = normalize(msg)
	if err := Validate(msg); err != nil {
		return err
	}

	var last lastSubmission
	found, err := f.cache.Get(ctx, cache.KeyLastContact, &last)
	if err != nil {
		f.logger.Debug("read last contact", "err", err)
	}
	if found && strings.EqualFold(last.Email, msg.Email) && last.Subject == msg.Subject {
		return ErrDuplicate
	}

	if err := f.api.SubmitContact(ctx, msg); err != nil {
		return err
	}

	record := lastSubmission{Email: msg.Email, Subject: msg.Subject}
	if err := f.cache.Set(ctx, cache.KeyLastContact, record, DedupWindow); err != nil {
		f.logger.Warn("store last contact", "err", err)
	}
	return nil
}

func normalize(msg models.ContactMessage) models.ContactMessage {
	return models.ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}
}
