package users

import (
	"context"
	"errors"
	"testing"

	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/store"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

func TestAddUserRetainsOnlyValidUsers(t *testing.T) {
	svc := NewService(store.NewMemoryBackend(), nil)
	ctx := context.Background()

	retained, err := svc.AddUser(ctx, domainusers.User{ID: "u1", Teams: []string{"LHF"}, PushToken: "abc"})
	if err != nil || !retained {
		t.Fatalf("expected valid user to be retained, got %v err %v", retained, err)
	}
	retained, _ = svc.AddUser(ctx, domainusers.User{ID: "u2", Teams: []string{"LHF"}})
	if retained {
		t.Fatalf("expected user without token to be dropped")
	}
	retained, _ = svc.AddUser(ctx, domainusers.User{ID: "u3", PushToken: "abc"})
	if retained {
		t.Fatalf("expected user without teams to be dropped")
	}

	all, err := svc.Users(ctx)
	if err != nil || len(all) != 1 || all[0].ID != "u1" {
		t.Fatalf("expected only u1 stored, got %+v err %v", all, err)
	}
}

func TestAddUserReplacesAndRemoves(t *testing.T) {
	svc := NewService(store.NewMemoryBackend(), nil)
	ctx := context.Background()

	_, _ = svc.AddUser(ctx, domainusers.User{ID: "u1", Teams: []string{"LHF"}, PushToken: "abc"})
	_, _ = svc.AddUser(ctx, domainusers.User{ID: "u1", Teams: []string{"FBK"}, PushToken: "def"})

	u, ok, err := svc.User(ctx, "u1")
	if err != nil || !ok || u.Teams[0] != "FBK" || u.PushToken != "def" {
		t.Fatalf("expected updated user, got %+v ok=%v err=%v", u, ok, err)
	}
	if len(svc.Cached()) != 1 {
		t.Fatalf("expected a single cached user")
	}

	// Clearing the teams removes the subscriber entirely.
	_, _ = svc.AddUser(ctx, domainusers.User{ID: "u1", PushToken: "def"})
	if _, ok, _ := svc.User(ctx, "u1"); ok {
		t.Fatalf("expected user to be removed")
	}
}

func TestAddUserStoreFailure(t *testing.T) {
	backend := testutil.NewFailingBackend()
	backend.Fail.Store(true)
	svc := NewService(backend, nil)

	_, err := svc.AddUser(context.Background(), domainusers.User{ID: "u1", Teams: []string{"LHF"}, PushToken: "abc"})
	if !errors.Is(err, testutil.ErrStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}
