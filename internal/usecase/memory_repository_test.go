package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
)

// memoryLeadRepository behaves like a store with a unique index on email, so
// the use cases can be exercised end to end without a database.
type memoryLeadRepository struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newMemoryLeadRepository(seed ...*entity.Lead) *memoryLeadRepository {
	r := &memoryLeadRepository{leads: make(map[string]*entity.Lead)}
	for _, l := range seed {
		r.leads[l.ID] = l
	}
	return r
}

func (r *memoryLeadRepository) Create(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.Email == lead.Email {
			return entity.ErrEmailAlreadyExists
		}
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *memoryLeadRepository) FindByEmail(_ context.Context, email string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.Email == email {
			cp := *l
			return &cp, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (r *memoryLeadRepository) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memoryLeadRepository) List(_ context.Context, skip, limit int) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		cp := *l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	if skip >= len(all) {
		return []*entity.Lead{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryLeadRepository) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.leads {
		if !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memoryLeadRepository) SetFlag(_ context.Context, id string, flag entity.LeadFlag, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return entity.ErrLeadNotFound
	}
	switch flag {
	case entity.FlagWhatsAppJoined:
		l.WhatsAppJoined = true
	case entity.FlagEbookSent:
		l.EbookSent = true
	default:
		return entity.ErrInvalidFlag
	}
	l.UpdatedAt = at
	return nil
}

func (r *memoryLeadRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return entity.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *memoryLeadRepository) Ping(context.Context) error { return nil }
