package kv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"janmanch/internal/domain"
	"janmanch/internal/domain/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "janmanch.db")
	store, err := Open(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProblem(id string) *models.Problem {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Problem{
		ID:         id,
		Title:      "Problem " + id,
		Content:    "content",
		CategoryID: "cat-1",
		AuthorID:   "u1",
		AuthorName: "Asha",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestProblemRepository_EmptyStore(t *testing.T) {
	repo := NewProblemRepository(newTestStore(t))
	ctx := context.Background()

	problems, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if problems == nil {
		t.Fatal("List must return an empty slice, not nil")
	}
	if len(problems) != 0 {
		t.Errorf("expected empty collection, got %d", len(problems))
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProblemRepository_CorruptPayload(t *testing.T) {
	store := newTestStore(t)
	repo := NewProblemRepository(store)
	ctx := context.Background()

	if err := store.put(keyProblems, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	problems, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("corrupt payload must not fail List: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("corrupt payload should read as empty, got %d", len(problems))
	}

	// A write after corruption starts the collection over.
	if err := repo.Insert(ctx, sampleProblem("p1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	problems, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(problems) != 1 || problems[0].ID != "p1" {
		t.Errorf("expected recovered collection [p1], got %#v", problems)
	}
}

func TestProblemRepository_InsertPrepends(t *testing.T) {
	repo := NewProblemRepository(newTestStore(t))
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := repo.Insert(ctx, sampleProblem(id)); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	problems, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"p3", "p2", "p1"}
	if len(problems) != len(want) {
		t.Fatalf("expected %d problems, got %d", len(want), len(problems))
	}
	for i, id := range want {
		if problems[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, problems[i].ID)
		}
	}
}

func TestProblemRepository_Update(t *testing.T) {
	repo := NewProblemRepository(newTestStore(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleProblem("p1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Insert(ctx, sampleProblem("p2")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	changed := sampleProblem("p1")
	changed.Title = "Changed"
	changed.Upvotes = 3
	if err := repo.Update(ctx, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Changed" || got.Upvotes != 3 {
		t.Errorf("update not persisted: %+v", got)
	}

	// Update must keep the record in place, not reorder.
	problems, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if problems[0].ID != "p2" || problems[1].ID != "p1" {
		t.Errorf("update reordered the collection: %s, %s", problems[0].ID, problems[1].ID)
	}

	if err := repo.Update(ctx, sampleProblem("missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProblemRepository_IncrementViews(t *testing.T) {
	repo := NewProblemRepository(newTestStore(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleProblem("p1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := repo.IncrementViews(ctx, "p1"); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if err := repo.IncrementViews(ctx, "p1"); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}

	got, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("expected 2 views, got %d", got.Views)
	}

	if err := repo.IncrementViews(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSolutionRepository_RoundTrip(t *testing.T) {
	repo := NewSolutionRepository(newTestStore(t))
	ctx := context.Background()

	sol := &models.Solution{
		ID:        "s1",
		Content:   "fix",
		ProblemID: "p1",
		AuthorID:  "u2",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Insert(ctx, sol); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ProblemID != "p1" || got.Accepted {
		t.Errorf("unexpected solution: %+v", got)
	}

	got.Accepted = true
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !again.Accepted {
		t.Error("accepted flag not persisted")
	}
}

func TestCommentRepository_RoundTrip(t *testing.T) {
	repo := NewCommentRepository(newTestStore(t))
	ctx := context.Background()

	c := &models.Comment{
		ID:         "c1",
		Content:    "hello",
		ParentType: models.ParentProblem,
		ParentID:   "p1",
		AuthorID:   "u1",
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	comments, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(comments) != 1 || comments[0].ParentType != models.ParentProblem {
		t.Errorf("unexpected comments: %#v", comments)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSessionStore(t *testing.T) {
	store := newTestStore(t)
	sessions := NewSessionStore(store)
	ctx := context.Background()

	t.Run("empty slot", func(t *testing.T) {
		user, err := sessions.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if user != nil {
			t.Errorf("expected no session, got %+v", user)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		saved := &models.User{
			ID:        "u1",
			Name:      "Asha",
			Email:     "asha@example.com",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		if err := sessions.Save(ctx, saved); err != nil {
			t.Fatalf("Save: %v", err)
		}

		user, err := sessions.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if user == nil || user.ID != "u1" || user.Email != "asha@example.com" {
			t.Errorf("unexpected session: %+v", user)
		}
	})

	t.Run("corrupt slot reads as signed out", func(t *testing.T) {
		if err := store.put(keySession, []byte("##")); err != nil {
			t.Fatalf("put: %v", err)
		}
		user, err := sessions.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if user != nil {
			t.Errorf("expected no session, got %+v", user)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := sessions.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		user, err := sessions.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if user != nil {
			t.Errorf("expected cleared slot, got %+v", user)
		}
		// Clearing again is fine.
		if err := sessions.Clear(ctx); err != nil {
			t.Fatalf("second Clear: %v", err)
		}
	})
}
