package db

import "testing"

func TestOpen_AppliesMigrationsAndRollsBack(t *testing.T) {
	d, err := Open("file:migrations_db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	versions, err := Applied(d)
	if err != nil {
		t.Fatalf("applied: %v", err)
	}
	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Fatalf("unexpected applied versions: %v", versions)
	}

	v, err := RollbackLast(d)
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if v != 2 {
		t.Fatalf("rolled back %d, want 2", v)
	}
	if _, err := d.Exec(`SELECT 1 FROM event_vehicles`); err == nil {
		t.Fatalf("expected event_vehicles to be dropped")
	}

	// Re-applying is idempotent for already applied versions.
	if err := applyMigrations(d); err != nil {
		t.Fatalf("reapply: %v", err)
	}
	versions, _ = Applied(d)
	if len(versions) != 2 {
		t.Fatalf("expected both versions after reapply, got %v", versions)
	}
}

func TestRollbackLast_NilDB(t *testing.T) {
	if _, err := RollbackLast(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
