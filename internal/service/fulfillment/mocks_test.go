package fulfillment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/adapter/webhook"
	"github.com/wishwell/donate-backend/internal/domain"
)

type cardRepoMock struct {
	GetByIDWithAgencyFunc func(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
}

func (m *cardRepoMock) GetByIDWithAgency(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	return m.GetByIDWithAgencyFunc(ctx, id)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type donationRepoMock struct {
	mu sync.Mutex

	GetByWishCardIDFunc func(ctx context.Context, wishCardID uuid.UUID) (*domain.Donation, error)
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error)

	updateStatusCalls []domain.DonationStatus
}

func (m *donationRepoMock) GetByWishCardID(ctx context.Context, wishCardID uuid.UUID) (*domain.Donation, error) {
	return m.GetByWishCardIDFunc(ctx, wishCardID)
}

func (m *donationRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error) {
	m.mu.Lock()
	m.updateStatusCalls = append(m.updateStatusCalls, status)
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *donationRepoMock) UpdateStatusCalls() []domain.DonationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateStatusCalls
}

type notifierMock struct {
	mu sync.Mutex

	SendOrderedFunc func(ctx context.Context, note webhook.OrderedNotification) error

	sendCalls []webhook.OrderedNotification
}

func (m *notifierMock) SendOrdered(ctx context.Context, note webhook.OrderedNotification) error {
	m.mu.Lock()
	m.sendCalls = append(m.sendCalls, note)
	m.mu.Unlock()
	if m.SendOrderedFunc != nil {
		return m.SendOrderedFunc(ctx, note)
	}
	return nil
}

func (m *notifierMock) SendCalls() []webhook.OrderedNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}
