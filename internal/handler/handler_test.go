package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/repository"
)

// memStore is an in-memory RegistrationStore used by the handler tests.
type memStore struct {
	mu        sync.Mutex
	seq       uint64
	regs      map[uint64]*model.Registration
	createErr []error // queued errors returned by Create before succeeding
}

func newMemStore() *memStore {
	return &memStore{regs: make(map[uint64]*model.Registration)}
}

func (s *memStore) Create(_ context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.createErr) > 0 {
		err := s.createErr[0]
		s.createErr = s.createErr[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range s.regs {
		if existing.RegistrationID == reg.RegistrationID {
			return repository.ErrDuplicateRegID
		}
	}
	s.seq++
	reg.ID = s.seq
	reg.CreatedAt = time.Now().UTC()
	reg.UpdatedAt = reg.CreatedAt
	cp := *reg
	s.regs[reg.ID] = &cp
	return nil
}

func (s *memStore) Get(_ context.Context, id uint64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (s *memStore) ListAll(_ context.Context) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Registration, 0, len(s.regs))
	for _, reg := range s.regs {
		out = append(out, *reg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memStore) SetVerified(_ context.Context, id uint64, verified bool) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	reg.Verified = verified
	reg.UpdatedAt = time.Now().UTC()
	cp := *reg
	return &cp, nil
}

// memEvents records published events.
type memEvents struct {
	mu       sync.Mutex
	created  []queue.RegistrationCreatedEvent
	verified []queue.RegistrationVerifiedEvent
}

func (e *memEvents) RegistrationCreated(_ context.Context, ev queue.RegistrationCreatedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, ev)
	return nil
}

func (e *memEvents) RegistrationVerified(_ context.Context, ev queue.RegistrationVerifiedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.verified = append(e.verified, ev)
	return nil
}
