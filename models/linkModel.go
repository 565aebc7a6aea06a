package models

// Link is a shareable download link. Rows are created by the deal tooling
// upstream; this service only reads them.
type Link struct {
	Token          string  `gorm:"primaryKey" json:"token"`
	PdfPath        string  `gorm:"column:pdf_path;not null" json:"pdf_path"`
	ExpiresAt      string  `gorm:"column:expires_at;not null" json:"expires_at"`
	Filename       *string `json:"filename,omitempty"`
	LenderName     *string `json:"lender_name,omitempty"`
	DealID         *string `json:"deal_id,omitempty"`
	TrackingID     *string `json:"tracking_id,omitempty"`
	RecipientEmail *string `json:"recipient_email,omitempty"`
}

func (Link) TableName() string {
	return "pdf_links"
}

// Lender returns the lender name or "" when the column is NULL.
func (l *Link) Lender() string {
	return deref(l.LenderName)
}

func (l *Link) Recipient() string {
	return deref(l.RecipientEmail)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
