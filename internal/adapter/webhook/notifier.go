// Package webhook delivers fulfillment notifications to an external
// endpoint over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wishwell/donate-backend/internal/config"
)

// donationDateLayout is the human-readable format the notification
// template expects, e.g. "Aug 28, 2026".
const donationDateLayout = "Jan 2, 2006"

// OrderedNotification carries everything the agency contact needs to
// place the order for a donated wish item.
type OrderedNotification struct {
	AgencyEmail  string    `json:"agencyEmail"`
	AgencyName   string    `json:"agencyName"`
	ChildName    string    `json:"childName"`
	ItemName     string    `json:"itemName"`
	ItemPriceUSD string    `json:"itemPrice"`
	DonationDate time.Time `json:"-"`
	Address      string    `json:"address"`
}

// Notifier posts notifications as JSON to a configured webhook URL.
// An empty URL disables delivery entirely.
type Notifier struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

// New creates a notifier from config. A nil-safe, always-usable value
// is returned even when notifications are disabled.
func New(cfg config.NotifyConfig, log *slog.Logger) *Notifier {
	return &Notifier{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With("component", "webhook"),
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// SendOrdered delivers a donation-ordered notification. Failures are
// returned for the caller to log; delivery is never retried here.
func (n *Notifier) SendOrdered(ctx context.Context, note OrderedNotification) error {
	if !n.Enabled() {
		n.log.Debug("webhook disabled, dropping notification",
			slog.String("agency_email", note.AgencyEmail))
		return nil
	}

	body, err := json.Marshal(struct {
		OrderedNotification
		DonationDate string `json:"donationDate"`
	}{
		OrderedNotification: note,
		DonationDate:        note.DonationDate.Format(donationDateLayout),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification endpoint returned %s", resp.Status)
	}

	n.log.Info("ordered notification delivered",
		slog.String("agency_email", note.AgencyEmail),
		slog.String("item", note.ItemName),
	)
	return nil
}
