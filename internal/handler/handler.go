// Package handler implements the HTTP endpoints: public registration
// submission, admin login and the admin-only verification, listing, ticket
// and export operations.
package handler

import (
	"context"

	"github.com/cache2k25/registration-backend/internal/middleware"
	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/storage"
	"github.com/cache2k25/registration-backend/internal/ticket"
)

// RegistrationStore is the slice of the repository the registration
// endpoints need.  *repository.RegistrationRepo satisfies it; tests use an
// in-memory fake.
type RegistrationStore interface {
	Create(ctx context.Context, reg *model.Registration) error
	Get(ctx context.Context, id uint64) (*model.Registration, error)
	ListAll(ctx context.Context) ([]model.Registration, error)
	SetVerified(ctx context.Context, id uint64, verified bool) (*model.Registration, error)
}

// EventPublisher publishes registration lifecycle events.  Publishing is
// best-effort: handlers log nothing extra and never fail a request over it,
// the publisher already logs its own errors.
type EventPublisher interface {
	RegistrationCreated(ctx context.Context, ev queue.RegistrationCreatedEvent) error
	RegistrationVerified(ctx context.Context, ev queue.RegistrationVerifiedEvent) error
}

// RegistrationHandler bundles the dependencies of the registration
// endpoints.  Uploader, Events and Cache may be nil; the corresponding
// behavior (proof upload, event publishing, listing cache) is skipped.
type RegistrationHandler struct {
	Store    RegistrationStore
	Uploader storage.ProofUploader
	Renderer ticket.Renderer
	Events   EventPublisher
	Cache    *middleware.RedisCache
}

// NewRegistrationHandler wires up a RegistrationHandler.
func NewRegistrationHandler(store RegistrationStore, up storage.ProofUploader, r ticket.Renderer, ev EventPublisher, cache *middleware.RedisCache) *RegistrationHandler {
	return &RegistrationHandler{Store: store, Uploader: up, Renderer: r, Events: ev, Cache: cache}
}
