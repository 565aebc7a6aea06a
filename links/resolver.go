package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/basit/pdf-proxy/models"
)

var (
	ErrNotFound = errors.New("link not found")
	ErrExpired  = errors.New("link expired")
)

// Resolver looks up links by token and enforces their expiry.
type Resolver struct {
	db  *gorm.DB
	now func() time.Time
}

// NewResolver returns a Resolver reading from db. A nil now uses time.Now.
func NewResolver(db *gorm.DB, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{db: db, now: now}
}

// Resolve returns the link for token. An expired link is returned together
// with ErrExpired so callers can still log against it.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query link: %w", err)
	}

	expires, err := ParseExpiry(link.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if r.now().UTC().After(expires) {
		return &link, ErrExpired
	}
	return &link, nil
}

var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseExpiry parses an ISO-8601 instant. A trailing "Z" means UTC and values
// without a zone are taken as UTC.
func ParseExpiry(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid expires_at %q", value)
}
