package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/basit/pdf-proxy/models"
)

func TestDownloadFilename(t *testing.T) {
	cases := []struct {
		name string
		link models.Link
		want string
	}{
		{name: "explicit filename", link: models.Link{Filename: strPtr("term-sheet.pdf"), LenderName: strPtr("Acme")}, want: "term-sheet.pdf"},
		{name: "empty filename falls back to lender", link: models.Link{Filename: strPtr(""), LenderName: strPtr("Acme")}, want: "Acme.pdf"},
		{name: "lender", link: models.Link{LenderName: strPtr("Acme")}, want: "Acme.pdf"},
		{name: "nothing", link: models.Link{}, want: "document.pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DownloadFilename(&tc.link))
		})
	}
}
