package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskboard/backend/internal/db"
	"taskboard/backend/internal/db/dbtest"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/policy/engine"
	"taskboard/backend/internal/project/repository"
	userrepo "taskboard/backend/internal/user/repository"
)

var (
	owner    = ownership.Identity{UserID: "u1", Email: "u1@example.com"}
	stranger = ownership.Identity{UserID: "u2", Email: "u2@example.com"}
)

func newTestService(t *testing.T) *ProjectService {
	t.Helper()
	conn := dbtest.NewSQLite(t)
	dbtest.SeedUser(t, conn, "u1")
	dbtest.SeedUser(t, conn, "u2")
	policy, err := engine.NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	projects := repository.NewSQLRepository(conn, db.SQLite)
	guard := ownership.NewGuard(userrepo.NewSQLRepository(conn, db.SQLite), projects, nil, policy)
	svc := NewProjectService(guard, projects, nil)
	clock := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	seq := 0
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("p%d", seq)
	}
	return svc
}

func strPtr(s string) *string { return &s }

func TestProjectService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"Work", "Home"} {
		if _, err := svc.Create(ctx, owner, Input{Name: strPtr(name)}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	if _, err := svc.Create(ctx, stranger, Input{Name: strPtr("Theirs")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Home" || list[1].Name != "Work" {
		t.Errorf("List = %+v, want Home then Work", list)
	}

	if _, err := svc.Create(ctx, owner, Input{Name: strPtr("   ")}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("blank name = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, owner, Input{}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("missing name = %v, want ErrInvalidArgument", err)
	}
}

func TestProjectService_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p, err := svc.Create(ctx, owner, Input{Name: strPtr("Work"), Description: strPtr("day job")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, stranger, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign Get = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, stranger, p.ID, Input{Name: strPtr("Mine now")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign Update = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, stranger, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign Delete = %v, want ErrNotFound", err)
	}

	updated, err := svc.Update(ctx, owner, p.ID, Input{Name: strPtr("Office")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Office" || updated.Description != "day job" || updated.OwnerID != owner.UserID {
		t.Errorf("Update = %+v", updated)
	}
	got, _ := svc.Get(ctx, owner, p.ID)
	if got.Name != "Office" {
		t.Errorf("Get after update = %+v", got)
	}

	if err := svc.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}
