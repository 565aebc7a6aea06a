package audit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/basit/pdf-proxy/models"
)

// MaxUserAgentLength caps the stored user agent, in characters.
const MaxUserAgentLength = 500

// RequestMeta holds the request observables copied into every event.
type RequestMeta struct {
	IP        string
	UserAgent string
	At        time.Time
}

// RequestMetaFrom prefers X-Forwarded-For over the connection address.
func RequestMetaFrom(r *http.Request, at time.Time) RequestMeta {
	ip := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
	}
	return RequestMeta{
		IP:        ip,
		UserAgent: truncate(r.UserAgent(), MaxUserAgentLength),
		At:        at.UTC(),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Logger appends view and download events.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) LogView(ctx context.Context, link *models.Link, meta RequestMeta) error {
	event := models.ViewEvent{
		Token:          link.Token,
		TrackingID:     link.TrackingID,
		DealID:         link.DealID,
		LenderName:     link.LenderName,
		RecipientEmail: link.RecipientEmail,
		IP:             meta.IP,
		UserAgent:      truncate(meta.UserAgent, MaxUserAgentLength),
		ViewedAt:       meta.At,
	}
	if err := l.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("insert view event: %w", err)
	}
	return nil
}

func (l *Logger) LogDownload(ctx context.Context, link *models.Link, meta RequestMeta) error {
	event := models.DownloadEvent{
		Token:          link.Token,
		TrackingID:     link.TrackingID,
		DealID:         link.DealID,
		LenderName:     link.LenderName,
		RecipientEmail: link.RecipientEmail,
		IP:             meta.IP,
		UserAgent:      truncate(meta.UserAgent, MaxUserAgentLength),
		DownloadedAt:   meta.At,
	}
	if err := l.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("insert download event: %w", err)
	}
	return nil
}
