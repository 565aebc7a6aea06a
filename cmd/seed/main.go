// Command seed uploads a local PDF and creates a link for it, for local
// development against SQLite or a staging database.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/basit/pdf-proxy/initializers"
	"github.com/basit/pdf-proxy/models"
)

var (
	lender    string
	dealID    string
	recipient string
	filename  string
	ttl       time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seed <file.pdf>",
		Short:         "Upload a PDF and print a download link for it",
		Args:          cobra.ExactArgs(1),
		RunE:          runSeed,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVar(&lender, "lender", "", "lender name shown on the landing page")
	rootCmd.Flags().StringVar(&dealID, "deal", "", "deal id")
	rootCmd.Flags().StringVar(&recipient, "recipient", "", "recipient email")
	rootCmd.Flags().StringVar(&filename, "filename", "", "download filename (defaults to <lender>.pdf)")
	rootCmd.Flags().DurationVar(&ttl, "ttl", 7*24*time.Hour, "how long the link stays valid")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		return err
	}
	if err := initializers.InitLogger(cfg.LogLevel, true); err != nil {
		return err
	}

	db, err := initializers.ConnectToDatabase(cfg.DBURL)
	if err != nil {
		return err
	}
	store, err := initializers.InitStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	token := shortuuid.New()
	path := fmt.Sprintf("%s/%s", token, filepath.Base(args[0]))
	if err := store.Upload(cmd.Context(), path, f, "application/pdf"); err != nil {
		return err
	}

	trackingID := shortuuid.New()
	link := models.Link{
		Token:      token,
		PdfPath:    path,
		ExpiresAt:  time.Now().UTC().Add(ttl).Format(time.RFC3339),
		TrackingID: &trackingID,
	}
	link.Filename = optional(filename)
	link.LenderName = optional(lender)
	link.DealID = optional(dealID)
	link.RecipientEmail = optional(recipient)

	if err := db.WithContext(cmd.Context()).Create(&link).Error; err != nil {
		return fmt.Errorf("create link: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = "http://localhost:" + cfg.Port
	}
	log.Info().Str("token", token).Str("path", path).Str("expires_at", link.ExpiresAt).Msg("link created")
	fmt.Printf("%s/docs/%s\n", base, token)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
