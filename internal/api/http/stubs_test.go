package http

import (
	"context"
	"sync"
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
)

type stubUsers struct {
	mu        sync.Mutex
	users     map[int64]*domain.User
	idLookups int
	emailErr  error
	nextID    int64
}

func (r *stubUsers) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	for _, u := range r.users {
		if u.Email == email && u.Active {
			clone := *u
			return &clone, nil
		}
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUsers) FindActiveByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idLookups++
	if u, ok := r.users[id]; ok && u.Active {
		clone := *u
		return &clone, nil
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUsers) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return persistence.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUsers) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	if err := r.Create(ctx, user); err != nil {
		if err == persistence.ErrDuplicate {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *stubUsers) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return persistence.ErrNoRows
	}
	u.Active = active
	return nil
}

func (r *stubUsers) CountActive(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Active {
			n++
		}
	}
	return n, nil
}

type stubProducts struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
}

func (r *stubProducts) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if filter.Status == nil || p.Status == *filter.Status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, persistence.ErrNoRows
}

func (r *stubProducts) GetActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusActive {
		return nil, persistence.ErrNoRows
	}
	return p, nil
}

func (r *stubProducts) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = time.Now()
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProducts) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return persistence.ErrNoRows
	}
	clone := *product
	clone.CreatedAt = existing.CreatedAt
	if clone.Status == "" {
		clone.Status = existing.Status
	}
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProducts) SetStatus(_ context.Context, id int64, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return persistence.ErrNoRows
	}
	p.Status = status
	return nil
}

func (r *stubProducts) CountActive(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.Status == domain.StatusActive {
			n++
		}
	}
	return n, nil
}

type stubClients struct{}

func (stubClients) List(context.Context) ([]domain.Client, error) { return []domain.Client{}, nil }
func (stubClients) GetByID(context.Context, int64) (*domain.Client, error) {
	return nil, persistence.ErrNoRows
}
func (stubClients) Create(context.Context, *domain.Client) error { return persistence.ErrDuplicate }
func (stubClients) Update(context.Context, *domain.Client) error { return persistence.ErrNoRows }
func (stubClients) SetStatus(context.Context, int64, domain.Status) error {
	return persistence.ErrNoRows
}
func (stubClients) Stats(context.Context) (*domain.ClientStats, error) {
	return &domain.ClientStats{
		Total:          3,
		NewLast30Days:  1,
		ByBusinessType: []domain.BusinessTypeCount{{BusinessType: "Restaurante", Count: 2}, {BusinessType: "Hotel", Count: 1}},
	}, nil
}

type stubLeads struct {
	mu    sync.Mutex
	leads []domain.Lead
}

func (r *stubLeads) List(context.Context) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Lead{}, r.leads...), nil
}

func (r *stubLeads) GetByID(_ context.Context, id int64) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			clone := l
			return &clone, nil
		}
	}
	return nil, persistence.ErrNoRows
}

func (r *stubLeads) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.ID = int64(len(r.leads) + 1)
	lead.CreatedAt = time.Now()
	r.leads = append(r.leads, *lead)
	return nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
