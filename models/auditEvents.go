package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewEvent records one visit to a link's landing page.
type ViewEvent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token          string    `gorm:"index;not null"`
	TrackingID     *string
	DealID         *string
	LenderName     *string
	RecipientEmail *string
	IP             string `gorm:"column:ip"`
	UserAgent      string `gorm:"size:500"`
	ViewedAt       time.Time
}

func (ViewEvent) TableName() string {
	return "pdf_views"
}

func (e *ViewEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// DownloadEvent records one successful file delivery.
type DownloadEvent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token          string    `gorm:"index;not null"`
	TrackingID     *string
	DealID         *string
	LenderName     *string
	RecipientEmail *string
	IP             string `gorm:"column:ip"`
	UserAgent      string `gorm:"size:500"`
	DownloadedAt   time.Time
}

func (DownloadEvent) TableName() string {
	return "pdf_downloads"
}

func (e *DownloadEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
