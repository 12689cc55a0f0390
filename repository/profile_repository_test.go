package repository

import (
	"context"
	"testing"

	"meetingsManagement/internal/db"
	"meetingsManagement/models"
)

func TestProfileRepository_CRUDAndRole(t *testing.T) {
	d, err := db.Open("file:profilerepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewProfileRepository(d)
	ctx := context.Background()

	p, err := repo.Create(ctx, &models.Profile{FullName: "Alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Role != "member" || p.CreatedAt == "" {
		t.Fatalf("unexpected created profile: %+v", p)
	}

	role, err := repo.GetRole(ctx, p.ID)
	if err != nil || role != "member" {
		t.Fatalf("get role: %q %v", role, err)
	}

	if err := repo.UpdateRole(ctx, p.ID, models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	g, err := repo.GetByID(ctx, p.ID)
	if err != nil || g == nil || !g.IsAdmin(models.RoleAdmin) {
		t.Fatalf("role not updated: %+v err=%v", g, err)
	}

	list, err := repo.List(ctx, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	// Unknown profile: empty role, no error.
	role, err = repo.GetRole(ctx, "missing")
	if err != nil || role != "" {
		t.Fatalf("expected empty role for unknown profile, got %q err=%v", role, err)
	}
	missing, err := repo.GetByID(ctx, "missing")
	if err != nil || missing != nil {
		t.Fatalf("expected nil profile, got %+v err=%v", missing, err)
	}
}
