package wishcard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
)

// cardRepoMock implements cardRepo with per-method function fields and
// call tracking.
type cardRepoMock struct {
	mu sync.Mutex

	CreateFunc         func(ctx context.Context, card *domain.WishCard) (*domain.WishCard, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	ListByAgencyIDFunc func(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error)
	ListViewableFunc   func(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error)
	ListAllFunc        func(ctx context.Context) ([]*domain.WishCard, error)
	ListByStatusFunc   func(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error)
	ListByItemNameFunc func(ctx context.Context, itemName string, status domain.WishCardStatus) ([]*domain.WishCard, error)
	SearchFunc         func(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, params domain.WishCardUpdateParams) (*domain.WishCard, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error

	AcquireLockFunc     func(ctx context.Context, id, userID uuid.UUID, until time.Time) (*domain.WishCard, error)
	ReleaseLockFunc     func(ctx context.Context, id uuid.UUID) (*domain.WishCard, error)
	GetLockedByUserFunc func(ctx context.Context, userID uuid.UUID) (*domain.WishCard, error)

	createCalls      int
	updateCalls      int
	deleteCalls      int
	acquireLockCalls []acquireLockCall
	releaseLockCalls int
	searchCalls      []domain.WishCardSearchOptions
}

type acquireLockCall struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Until  time.Time
}

func (m *cardRepoMock) Create(ctx context.Context, card *domain.WishCard) (*domain.WishCard, error) {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	return m.CreateFunc(ctx, card)
}

func (m *cardRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *cardRepoMock) ListByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.WishCard, error) {
	return m.ListByAgencyIDFunc(ctx, agencyID)
}

func (m *cardRepoMock) ListViewable(ctx context.Context, includeDonated bool) ([]*domain.WishCard, error) {
	return m.ListViewableFunc(ctx, includeDonated)
}

func (m *cardRepoMock) ListAll(ctx context.Context) ([]*domain.WishCard, error) {
	return m.ListAllFunc(ctx)
}

func (m *cardRepoMock) ListByStatus(ctx context.Context, status domain.WishCardStatus) ([]*domain.WishCard, error) {
	return m.ListByStatusFunc(ctx, status)
}

func (m *cardRepoMock) ListByItemName(ctx context.Context, itemName string, status domain.WishCardStatus) ([]*domain.WishCard, error) {
	return m.ListByItemNameFunc(ctx, itemName, status)
}

func (m *cardRepoMock) Search(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, opts)
	m.mu.Unlock()
	return m.SearchFunc(ctx, opts)
}

func (m *cardRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.WishCardUpdateParams) (*domain.WishCard, error) {
	m.mu.Lock()
	m.updateCalls++
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, params)
}

func (m *cardRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls++
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *cardRepoMock) AcquireLock(ctx context.Context, id, userID uuid.UUID, until time.Time) (*domain.WishCard, error) {
	m.mu.Lock()
	m.acquireLockCalls = append(m.acquireLockCalls, acquireLockCall{ID: id, UserID: userID, Until: until})
	m.mu.Unlock()
	return m.AcquireLockFunc(ctx, id, userID, until)
}

func (m *cardRepoMock) ReleaseLock(ctx context.Context, id uuid.UUID) (*domain.WishCard, error) {
	m.mu.Lock()
	m.releaseLockCalls++
	m.mu.Unlock()
	return m.ReleaseLockFunc(ctx, id)
}

func (m *cardRepoMock) GetLockedByUser(ctx context.Context, userID uuid.UUID) (*domain.WishCard, error) {
	return m.GetLockedByUserFunc(ctx, userID)
}

func (m *cardRepoMock) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *cardRepoMock) UpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *cardRepoMock) DeleteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}

func (m *cardRepoMock) AcquireLockCalls() []acquireLockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquireLockCalls
}

func (m *cardRepoMock) ReleaseLockCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseLockCalls
}

func (m *cardRepoMock) SearchCalls() []domain.WishCardSearchOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// agencyRepoMock implements agencyRepo.
type agencyRepoMock struct {
	GetByManagerIDFunc func(ctx context.Context, managerID uuid.UUID) (*domain.Agency, error)
}

func (m *agencyRepoMock) GetByManagerID(ctx context.Context, managerID uuid.UUID) (*domain.Agency, error) {
	return m.GetByManagerIDFunc(ctx, managerID)
}
