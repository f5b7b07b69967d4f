// Package testutil provides in-memory implementations of the billing
// repositories and the mandate gateway for use case tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

// TxRunner runs fn directly. Calls counts invocations.
type TxRunner struct {
	mu    sync.Mutex
	Calls int
}

func (r *TxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()
	return fn(ctx)
}

// MockSubscriptionRepository keys subscriptions by tenant id.
type MockSubscriptionRepository struct {
	mu     sync.RWMutex
	subs   map[string]*subscription.Subscription
	nextID uint

	// Error injection for testing
	GetError    error
	UpdateError error
	ListError   error
	Updates     int
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{subs: make(map[string]*subscription.Subscription)}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub.ID() == 0 {
		m.nextID++
		if err := sub.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.subs[sub.TenantID()] = sub
	return nil
}

func (m *MockSubscriptionRepository) GetByTenantID(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.subs[tenantID], nil
}

func (m *MockSubscriptionRepository) GetByExternalID(ctx context.Context, externalID string) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, sub := range m.subs {
		if id := sub.ExternalID(); id != nil && *id == externalID {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.subs[sub.TenantID()]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	m.subs[sub.TenantID()] = sub
	m.Updates++
	return nil
}

func (m *MockSubscriptionRepository) ListReconcileCandidates(ctx context.Context, provider vo.PaymentProvider, now time.Time) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*subscription.Subscription
	for _, sub := range m.subs {
		if sub.PaymentProvider() != provider || sub.ExternalID() == nil {
			continue
		}
		lapsed := sub.Status() == vo.StatusActive && sub.CurrentPeriodEnd().Before(now)
		if sub.Status() == vo.StatusPastDue || lapsed {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepository) CountByStatus(ctx context.Context) (map[vo.SubscriptionStatus]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[vo.SubscriptionStatus]int64)
	for _, sub := range m.subs {
		out[sub.Status()]++
	}
	return out, nil
}

// MockTenantRepository is an in-memory tenant.Repository.
type MockTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*tenant.Tenant

	GetError          error
	UpdateStatusError error
	StatusUpdates     int
}

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{tenants: make(map[string]*tenant.Tenant)}
}

func (m *MockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tenants {
		if existing.Slug() == t.Slug() {
			return tenant.ErrSlugTaken
		}
	}
	m.tenants[t.ID()] = t
	return nil
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.tenants[id], nil
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if t.Slug() == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*tenant.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTenantRepository) UpdateStatus(ctx context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.tenants[t.ID()] = t
	m.StatusUpdates++
	return nil
}

func (m *MockTenantRepository) CountByStatus(ctx context.Context) (map[tenant.Status]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[tenant.Status]int64)
	for _, t := range m.tenants {
		out[t.Status()]++
	}
	return out, nil
}

// MockPlanRepository is an in-memory subscription.PlanRepository.
type MockPlanRepository struct {
	mu     sync.RWMutex
	plans  map[uint]*subscription.Plan
	nextID uint
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{plans: make(map[uint]*subscription.Plan)}
}

func (m *MockPlanRepository) Create(ctx context.Context, p *subscription.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.plans[p.ID()] = p
	return nil
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plans[id], nil
}

func (m *MockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*subscription.Plan, 0, len(m.plans))
	for id := uint(1); id <= m.nextID; id++ {
		p, ok := m.plans[id]
		if !ok || (activeOnly && !p.IsActive()) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// MockUserRepository is an in-memory user.Repository with a unique email.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*user.User
	nextID uint

	CreateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*user.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.users {
		if existing.Email().String() == u.Email().String() {
			return user.ErrEmailTaken
		}
	}
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role authorization.UserRole) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, u := range m.users {
		if u.Role() == role {
			n++
		}
	}
	return n, nil
}

// MockMandateGateway answers from function fields.
type MockMandateGateway struct {
	CreateMandateFunc func(ctx context.Context, req paymentgateway.CreateMandateRequest) (*paymentgateway.Mandate, error)
	GetMandateFunc    func(ctx context.Context, mandateID string) (*paymentgateway.Mandate, error)

	mu         sync.Mutex
	FetchedIDs []string
}

func (m *MockMandateGateway) CreateMandate(ctx context.Context, req paymentgateway.CreateMandateRequest) (*paymentgateway.Mandate, error) {
	if m.CreateMandateFunc != nil {
		return m.CreateMandateFunc(ctx, req)
	}
	return &paymentgateway.Mandate{ID: "mandate-" + req.TenantID, Status: "pending", ExternalReference: req.TenantID}, nil
}

func (m *MockMandateGateway) GetMandate(ctx context.Context, mandateID string) (*paymentgateway.Mandate, error) {
	m.mu.Lock()
	m.FetchedIDs = append(m.FetchedIDs, mandateID)
	m.mu.Unlock()
	if m.GetMandateFunc != nil {
		return m.GetMandateFunc(ctx, mandateID)
	}
	return nil, paymentgateway.ErrMandateNotFound
}
