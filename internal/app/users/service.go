// Package users keeps notification subscribers.
package users

import (
	"context"
	"fmt"
	"log/slog"

	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

const key = "users"

// Service coordinates subscriber updates against a document store.
type Service struct {
	doc    *store.Doc[[]domainusers.User]
	logger *slog.Logger
}

// NewService constructs a users Service.
func NewService(backend store.Backend, logger *slog.Logger) *Service {
	return &Service{
		doc:    store.NewDoc(backend, key, func() []domainusers.User { return []domainusers.User{} }),
		logger: logger,
	}
}

// AddUser replaces any stored user with the same id. The user is only retained when it can
// receive notifications (see domainusers.User.Valid); otherwise the stored entry is dropped. It
// reports whether the user was retained.
func (s *Service) AddUser(ctx context.Context, u domainusers.User) (bool, error) {
	all, err := s.doc.Read(ctx)
	if err != nil {
		return false, err
	}
	updated := make([]domainusers.User, 0, len(all)+1)
	for _, existing := range all {
		if existing.ID != u.ID {
			updated = append(updated, existing)
		}
	}
	retained := u.Valid()
	if retained {
		updated = append(updated, u)
	}
	if err := s.doc.Write(ctx, updated); err != nil {
		return false, fmt.Errorf("store users: %w", err)
	}
	logging.Info(s.logger, "user updated",
		slog.String(logging.FieldUserID, u.ID),
		slog.Bool("retained", retained),
		slog.Int(logging.FieldCount, len(updated)),
	)
	return retained, nil
}

// User loads a single user from the store.
func (s *Service) User(ctx context.Context, id string) (domainusers.User, bool, error) {
	all, err := s.doc.Read(ctx)
	if err != nil {
		return domainusers.User{}, false, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, true, nil
		}
	}
	return domainusers.User{}, false, nil
}

// Users loads every stored user.
func (s *Service) Users(ctx context.Context) ([]domainusers.User, error) {
	return s.doc.Read(ctx)
}

// Cached returns the users last read or written.
func (s *Service) Cached() []domainusers.User {
	return s.doc.ReadCached()
}
