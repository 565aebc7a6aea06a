package web

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"io"

	qrcode "github.com/skip2/go-qrcode"
)

//go:embed html/*.html
var pages embed.FS

var templates = template.Must(template.ParseFS(pages, "html/*.html"))

// DocsPage is the data behind the landing page.
type DocsPage struct {
	Token       string
	Lender      string
	DownloadURL string
	QRCode      template.URL
}

// NewDocsPage fills in the QR code for downloadURL. A QR failure leaves the
// page without an image.
func NewDocsPage(token, lender, downloadURL string) DocsPage {
	page := DocsPage{Token: token, Lender: lender, DownloadURL: downloadURL}
	if png, err := qrcode.Encode(downloadURL, qrcode.Medium, 256); err == nil {
		page.QRCode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}
	return page
}

// RenderDocsPage writes the landing page. Nothing is written to w on error.
func RenderDocsPage(w io.Writer, page DocsPage) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "docs.html", page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
