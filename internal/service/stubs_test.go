package service

import (
	"context"
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
)

// stubUserRepo is an in-memory UserRepository keyed by id.
type stubUserRepo struct {
	users   map[int64]*domain.User
	nextID  int64
	err     error
	lookups int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[int64]*domain.User), nextID: 100}
	for _, u := range users {
		clone := *u
		repo.users[u.ID] = &clone
	}
	return repo
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email && u.Active {
			clone := *u
			return &clone, nil
		}
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUserRepo) FindActiveByID(_ context.Context, id int64) (*domain.User, error) {
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok && u.Active {
		clone := *u
		return &clone, nil
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, persistence.ErrNoRows
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, r.err
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
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

func (r *stubUserRepo) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	if err := r.Create(ctx, user); err != nil {
		if err == persistence.ErrDuplicate {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return persistence.ErrNoRows
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) CountActive(context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Active {
			n++
		}
	}
	return n, r.err
}
