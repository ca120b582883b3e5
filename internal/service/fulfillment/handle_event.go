package fulfillment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wishwell/donate-backend/internal/adapter/webhook"
	"github.com/wishwell/donate-backend/internal/domain"
)

// HandleEvent classifies one change event and reconciles on a match.
// It never reports failure upstream: anything unresolvable is logged and
// the event dropped, so a bad event can never take the listener down.
// Delivery is at-least-once, so a redelivered ordered event is deduped
// against the donation's current status.
func (r *Reconciler) HandleEvent(ctx context.Context, ev domain.ChangeEvent) {
	switch {
	case ev.IsOrdered():
		r.handleOrdered(ctx, ev)
	case ev.IsPublished():
		r.handlePublished(ctx, ev)
	}
}

func (r *Reconciler) handleOrdered(ctx context.Context, ev domain.ChangeEvent) {
	log := r.log.With(slog.String("wishcard_id", ev.WishCardID.String()))

	card, err := r.cards.GetByIDWithAgency(ctx, ev.WishCardID)
	if err != nil {
		log.WarnContext(ctx, "ordered event dropped: wishcard unresolvable",
			slog.String("error", err.Error()))
		return
	}

	manager, err := r.users.GetByID(ctx, card.Agency.AccountManagerID)
	if err != nil {
		log.WarnContext(ctx, "ordered event dropped: account manager unresolvable",
			slog.String("agency_id", card.AgencyID.String()),
			slog.String("error", err.Error()))
		return
	}

	donation, err := r.donations.GetByWishCardID(ctx, ev.WishCardID)
	if err != nil {
		log.WarnContext(ctx, "ordered event dropped: no linked donation",
			slog.String("error", err.Error()))
		return
	}

	if donation.Status == domain.DonationStatusOrdered {
		log.DebugContext(ctx, "donation already ordered, skipping")
		return
	}

	updated, err := r.donations.UpdateStatus(ctx, donation.ID, domain.DonationStatusOrdered)
	if err != nil {
		log.WarnContext(ctx, "donation status update failed",
			slog.String("donation_id", donation.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	note := webhook.OrderedNotification{
		AgencyEmail:  manager.Email,
		AgencyName:   card.Agency.Name,
		ChildName:    card.ChildFirstName,
		ItemName:     card.WishItemName,
		ItemPriceUSD: formatPrice(card.WishItemPrice),
		DonationDate: updated.DonationDate,
		Address:      card.Agency.Address.MailingAddress(),
	}
	if err := r.notifier.SendOrdered(ctx, note); err != nil {
		log.WarnContext(ctx, "ordered notification failed",
			slog.String("agency_email", manager.Email),
			slog.String("error", err.Error()))
		return
	}

	log.InfoContext(ctx, "ordered transition reconciled",
		slog.String("donation_id", updated.ID.String()),
		slog.String("agency_email", manager.Email),
	)
}

// handlePublished is a defined extension point. Publishing currently
// needs no reconciliation.
func (r *Reconciler) handlePublished(ctx context.Context, ev domain.ChangeEvent) {
	r.log.DebugContext(ctx, "published transition observed",
		slog.String("wishcard_id", ev.WishCardID.String()))
}

// formatPrice renders cents as a dollar amount, e.g. 4999 -> "49.99".
func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
