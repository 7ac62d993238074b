package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pashtetskiy/SimpleToDoWebApi/models"
)

func newTestRepo(t *testing.T) *Repository[models.Task] {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New[models.Task](db, zap.NewNop().Sugar())
}

func mustAdd(t *testing.T, r *Repository[models.Task], title, description string, expiry time.Time) models.Task {
	t.Helper()
	task := models.Task{Title: title, Description: description, ExpiryDate: expiry}
	if err := r.Add(context.Background(), &task); err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	return task
}

func TestAddAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	first := mustAdd(t, repo, "first", "one", time.Now().UTC())
	second := mustAdd(t, repo, "second", "two", time.Now().UTC())

	if first.ID <= 0 {
		t.Errorf("expected store-assigned id, got %d", first.ID)
	}
	if second.ID == first.ID {
		t.Errorf("ids not unique: both %d", first.ID)
	}
}

func TestListAllIncludesInserted(t *testing.T) {
	repo := newTestRepo(t)

	task := mustAdd(t, repo, "Test", "Description", time.Now().UTC().AddDate(0, 0, 1))

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	found := false
	for _, got := range all {
		if got.ID == task.ID && got.Title == task.Title {
			found = true
		}
	}
	if !found {
		t.Errorf("inserted task %d missing from list of %d", task.ID, len(all))
	}
}

func TestListAllEmpty(t *testing.T) {
	repo := newTestRepo(t)

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(all))
	}
}

func TestGetByIDInvalid(t *testing.T) {
	repo := newTestRepo(t)

	for _, id := range []int{0, -1, -42} {
		if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("GetByID(%d) = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	expiry := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	task := mustAdd(t, repo, "Test", "Description", expiry)

	got, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get by id %d: %v", task.ID, err)
	}
	if got.Title != "Test" || got.Description != "Description" {
		t.Errorf("unexpected fields: %+v", got)
	}
	if !got.ExpiryDate.Equal(expiry) {
		t.Errorf("expiry = %v, want %v", got.ExpiryDate, expiry)
	}
	if got.PercentComplete != 0 || got.IsDone {
		t.Errorf("fresh task should start at zero: %+v", got)
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.GetByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(999) = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	repo := newTestRepo(t)

	phantom := models.Task{ID: 999, Title: "gone", Description: "never stored"}
	if err := repo.Remove(context.Background(), &phantom); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove of absent task = %v, want ErrNotFound", err)
	}

	task := mustAdd(t, repo, "doomed", "to be removed", time.Now().UTC())
	if err := repo.Remove(context.Background(), &task); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed task still readable: %v", err)
	}
	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	for _, got := range all {
		if got.ID == task.ID {
			t.Errorf("removed task %d still listed", task.ID)
		}
	}

	// A second remove sees the row already gone.
	if err := repo.Remove(context.Background(), &task); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove = %v, want ErrNotFound", err)
	}
}

func TestUpdateAbsentIDReportsSuccess(t *testing.T) {
	repo := newTestRepo(t)

	// No existence pre-check: the store no-ops the write and the call still
	// reports success, so Update is not a reliable existence probe.
	phantom := models.Task{ID: 999, Title: "ghost", Description: "never stored"}
	if err := repo.Update(context.Background(), &phantom); err != nil {
		t.Fatalf("update of absent id: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("phantom row appeared after update: %v", err)
	}
	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store should still be empty, got %+v", all)
	}
}

func TestUpdatePersistsFields(t *testing.T) {
	repo := newTestRepo(t)

	task := mustAdd(t, repo, "before", "old", time.Now().UTC())
	task.Title = "after"
	task.PercentComplete = 40
	if err := repo.Update(context.Background(), &task); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != "after" || got.PercentComplete != 40 {
		t.Errorf("update not persisted: %+v", got)
	}

	// Zero values are written out too.
	task.PercentComplete = 0
	if err := repo.Update(context.Background(), &task); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.PercentComplete != 0 {
		t.Errorf("zero value not persisted: %+v", got)
	}
}

func TestFindWhereContains(t *testing.T) {
	repo := newTestRepo(t)

	mustAdd(t, repo, "buy groceries", "milk and eggs", time.Now().UTC())
	mustAdd(t, repo, "walk the dog", "around the block", time.Now().UTC())

	got, err := repo.FindWhere(context.Background(), Filter{
		{Field: "title", Op: OpContains, Value: "groceries"},
	})
	if err != nil {
		t.Fatalf("find where: %v", err)
	}
	if len(got) != 1 || got[0].Title != "buy groceries" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestFindWhereConjunction(t *testing.T) {
	repo := newTestRepo(t)

	mustAdd(t, repo, "buy groceries", "milk and eggs", time.Now().UTC())
	mustAdd(t, repo, "buy hardware", "nails and screws", time.Now().UTC())

	got, err := repo.FindWhere(context.Background(), Filter{
		{Field: "title", Op: OpContains, Value: "buy"},
		{Field: "description", Op: OpContains, Value: "milk"},
	})
	if err != nil {
		t.Fatalf("find where: %v", err)
	}
	if len(got) != 1 || got[0].Description != "milk and eggs" {
		t.Errorf("conjunction not applied: %+v", got)
	}
}

func TestFindWhereEmptyResultIsNotError(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.FindWhere(context.Background(), Filter{
		{Field: "title", Op: OpContains, Value: "Nonexistent"},
	})
	if err != nil {
		t.Fatalf("find where: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %+v", got)
	}
}

func TestFindWhereDateRange(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	early := mustAdd(t, repo, "early", "in range", base.Add(6*time.Hour))
	mustAdd(t, repo, "late", "out of range", base.AddDate(0, 0, 3))

	got, err := repo.FindWhere(context.Background(), Filter{
		{Field: "expiry_date", Op: OpGte, Value: base},
		{Field: "expiry_date", Op: OpLt, Value: base.AddDate(0, 0, 1)},
	})
	if err != nil {
		t.Fatalf("find where: %v", err)
	}
	if len(got) != 1 || got[0].ID != early.ID {
		t.Errorf("expected only the early task, got %+v", got)
	}
}

func TestStorageFailureSurfacesError(t *testing.T) {
	repo := newTestRepo(t)

	// Drop the table out from under the repository so every store round-trip
	// fails.
	if err := repo.db.Migrator().DropTable(&models.Task{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	ctx := context.Background()

	if _, err := repo.ListAll(ctx); err == nil {
		t.Error("ListAll on broken store should error")
	}
	if _, err := repo.GetByID(ctx, 1); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID on broken store should surface the storage error, got %v", err)
	}
	if _, err := repo.FindWhere(ctx, Filter{{Field: "title", Op: OpContains, Value: "x"}}); err == nil {
		t.Error("FindWhere on broken store should error")
	}
	task := models.Task{Title: "t", Description: "d"}
	if err := repo.Add(ctx, &task); err == nil {
		t.Error("Add on broken store should error")
	}
	if err := repo.Update(ctx, &models.Task{ID: 1, Title: "t", Description: "d"}); err == nil {
		t.Error("Update on broken store should error")
	}
}
