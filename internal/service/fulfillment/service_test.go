package fulfillment

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/adapter/webhook"
	"github.com/wishwell/donate-backend/internal/domain"
)

type fixture struct {
	cardID     uuid.UUID
	managerID  uuid.UUID
	donationID uuid.UUID

	cards     *cardRepoMock
	users     *userRepoMock
	donations *donationRepoMock
	notifier  *notifierMock
}

// newFixture wires a reconciler whose collaborators all resolve: the
// card exists with its agency, the manager exists, and a confirmed
// donation is linked.
func newFixture() *fixture {
	f := &fixture{
		cardID:     uuid.New(),
		managerID:  uuid.New(),
		donationID: uuid.New(),
	}

	agencyID := uuid.New()
	f.cards = &cardRepoMock{
		GetByIDWithAgencyFunc: func(_ context.Context, id uuid.UUID) (*domain.WishCard, error) {
			return &domain.WishCard{
				ID:             id,
				AgencyID:       agencyID,
				ChildFirstName: "Sam",
				WishItemName:   "Bike",
				WishItemPrice:  4999,
				Status:         domain.WishCardStatusOrdered,
				Agency: &domain.Agency{
					ID:               agencyID,
					Name:             "Helping Hands",
					AccountManagerID: f.managerID,
					Address: domain.Address{
						Street1: "1 Main St",
						City:    "Springfield",
						State:   "IL",
						Zipcode: "62701",
					},
				},
			}, nil
		},
	}
	f.users = &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "manager@agency.org"}, nil
		},
	}
	f.donations = &donationRepoMock{
		GetByWishCardIDFunc: func(_ context.Context, wishCardID uuid.UUID) (*domain.Donation, error) {
			return &domain.Donation{
				ID:           f.donationID,
				WishCardID:   wishCardID,
				Amount:       4999,
				Status:       domain.DonationStatusConfirmed,
				DonationDate: time.Date(2024, time.December, 24, 15, 0, 0, 0, time.UTC),
			}, nil
		},
		UpdateStatusFunc: func(_ context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error) {
			return &domain.Donation{
				ID:           id,
				Status:       status,
				DonationDate: time.Date(2024, time.December, 24, 15, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	f.notifier = &notifierMock{}
	return f
}

func (f *fixture) reconciler() *Reconciler {
	return NewReconciler(slog.Default(), f.cards, f.users, f.donations, f.notifier)
}

func orderedEvent(cardID uuid.UUID) domain.ChangeEvent {
	return domain.ChangeEvent{
		Operation:     domain.ChangeOpUpdate,
		WishCardID:    cardID,
		UpdatedFields: map[string]string{"status": "ordered"},
	}
}

func TestHandleEvent_OrderedTransition(t *testing.T) {
	t.Parallel()

	f := newFixture()
	r := f.reconciler()

	r.HandleEvent(context.Background(), orderedEvent(f.cardID))

	updates := f.donations.UpdateStatusCalls()
	if len(updates) != 1 {
		t.Fatalf("UpdateStatus calls: got %d, want 1", len(updates))
	}
	if updates[0] != domain.DonationStatusOrdered {
		t.Errorf("status: got %s, want ordered", updates[0])
	}

	sends := f.notifier.SendCalls()
	if len(sends) != 1 {
		t.Fatalf("notifications: got %d, want exactly 1", len(sends))
	}
	note := sends[0]
	if note.AgencyEmail != "manager@agency.org" {
		t.Errorf("agency email: got %q", note.AgencyEmail)
	}
	if note.AgencyName != "Helping Hands" {
		t.Errorf("agency name: got %q", note.AgencyName)
	}
	if note.ChildName != "Sam" {
		t.Errorf("child name: got %q", note.ChildName)
	}
	if note.ItemName != "Bike" {
		t.Errorf("item name: got %q", note.ItemName)
	}
	if note.ItemPriceUSD != "49.99" {
		t.Errorf("item price: got %q, want 49.99", note.ItemPriceUSD)
	}
	if note.Address != "1 Main St Springfield 62701 IL" {
		t.Errorf("address: got %q", note.Address)
	}
}

func TestHandleEvent_IgnoresOtherTransitions(t *testing.T) {
	t.Parallel()

	f := newFixture()
	r := f.reconciler()

	events := []domain.ChangeEvent{
		{Operation: domain.ChangeOpUpdate, WishCardID: f.cardID, UpdatedFields: map[string]string{"status": "draft"}},
		{Operation: domain.ChangeOpUpdate, WishCardID: f.cardID, UpdatedFields: map[string]string{"child_story": "new"}},
		{Operation: domain.ChangeOpInsert, WishCardID: f.cardID, UpdatedFields: map[string]string{}},
		{Operation: domain.ChangeOpDelete, WishCardID: f.cardID, UpdatedFields: map[string]string{}},
	}
	for _, ev := range events {
		r.HandleEvent(context.Background(), ev)
	}

	if n := len(f.donations.UpdateStatusCalls()); n != 0 {
		t.Errorf("UpdateStatus calls: got %d, want 0", n)
	}
	if n := len(f.notifier.SendCalls()); n != 0 {
		t.Errorf("notifications: got %d, want 0", n)
	}
}

func TestHandleEvent_PublishedIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture()
	r := f.reconciler()

	r.HandleEvent(context.Background(), domain.ChangeEvent{
		Operation:     domain.ChangeOpUpdate,
		WishCardID:    f.cardID,
		UpdatedFields: map[string]string{"status": "published"},
	})

	if n := len(f.donations.UpdateStatusCalls()); n != 0 {
		t.Errorf("UpdateStatus calls: got %d, want 0", n)
	}
	if n := len(f.notifier.SendCalls()); n != 0 {
		t.Errorf("notifications: got %d, want 0", n)
	}
}

func TestHandleEvent_UnresolvableWishCardDropped(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.cards.GetByIDWithAgencyFunc = func(_ context.Context, id uuid.UUID) (*domain.WishCard, error) {
		return nil, domain.ErrNotFound
	}
	r := f.reconciler()

	// Must not panic and must not touch the donation.
	r.HandleEvent(context.Background(), orderedEvent(f.cardID))

	if n := len(f.donations.UpdateStatusCalls()); n != 0 {
		t.Errorf("UpdateStatus calls: got %d, want 0", n)
	}
	if n := len(f.notifier.SendCalls()); n != 0 {
		t.Errorf("notifications: got %d, want 0", n)
	}
}

func TestHandleEvent_NoLinkedDonationDropped(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.donations.GetByWishCardIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Donation, error) {
		return nil, domain.ErrNotFound
	}
	r := f.reconciler()

	r.HandleEvent(context.Background(), orderedEvent(f.cardID))

	if n := len(f.notifier.SendCalls()); n != 0 {
		t.Errorf("notifications: got %d, want 0", n)
	}
}

func TestHandleEvent_RedeliveryDeduped(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.donations.GetByWishCardIDFunc = func(_ context.Context, wishCardID uuid.UUID) (*domain.Donation, error) {
		return &domain.Donation{
			ID:         f.donationID,
			WishCardID: wishCardID,
			Status:     domain.DonationStatusOrdered,
		}, nil
	}
	r := f.reconciler()

	r.HandleEvent(context.Background(), orderedEvent(f.cardID))

	if n := len(f.donations.UpdateStatusCalls()); n != 0 {
		t.Errorf("UpdateStatus calls on redelivery: got %d, want 0", n)
	}
	if n := len(f.notifier.SendCalls()); n != 0 {
		t.Errorf("notifications on redelivery: got %d, want 0", n)
	}
}

func TestHandleEvent_NotificationFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.notifier.SendOrderedFunc = func(_ context.Context, _ webhook.OrderedNotification) error {
		return errors.New("endpoint unreachable")
	}
	r := f.reconciler()

	// Must not panic; the donation update has already happened by the
	// time delivery fails.
	r.HandleEvent(context.Background(), orderedEvent(f.cardID))

	if n := len(f.donations.UpdateStatusCalls()); n != 1 {
		t.Errorf("UpdateStatus calls: got %d, want 1", n)
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cents int64
		want  string
	}{
		{4999, "49.99"},
		{100, "1.00"},
		{5, "0.05"},
		{1000000, "10000.00"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.cents); got != tt.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
