// ABOUTME: Tests for SQLite storage lifecycle and workout CRUD.
// ABOUTME: Covers schema init, ID resolution, completion duration, and cascade delete.
package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
)

// testClock is a settable clock for deterministic timestamps.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }
func (c *testClock) Set(t time.Time) { c.t = t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)}
}

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "gymtrack.db")
	db, err := Open(dbPath, opts...)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// setupClockedDB returns a database whose timestamps come from the returned clock.
func setupClockedDB(t *testing.T) (*DB, *testClock) {
	t.Helper()
	clock := newTestClock()
	return setupTestDB(t, WithClock(clock.Now)), clock
}

// createExercise adds a custom exercise for tests.
func createExercise(t *testing.T, db *DB, muscle models.MuscleGroup) *models.Exercise {
	t.Helper()
	name := gofakeit.Adjective() + " " + gofakeit.Noun() + " Press"
	e, err := db.CreateCustomExercise(context.Background(), models.NewCustomExercise(name, muscle))
	if err != nil {
		t.Fatalf("CreateCustomExercise failed: %v", err)
	}
	return e
}

func countRows(t *testing.T, db *DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gymtrack.db")

	for i := 0; i < 2; i++ {
		db, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		v, err := db.SchemaVersion()
		if err != nil {
			t.Fatalf("SchemaVersion failed: %v", err)
		}
		if v != schemaVersion {
			t.Errorf("SchemaVersion = %d, want %d", v, schemaVersion)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("second Close should be nil, got %v", err)
		}
	}
}

func TestCreateAndGetWorkout(t *testing.T) {
	db, clock := setupClockedDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, "Push Day")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	got, err := db.GetWorkout(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected workout, got nil")
	}
	if got.Name == nil || *got.Name != "Push Day" {
		t.Errorf("Name = %v, want Push Day", got.Name)
	}
	if !got.StartedAt.Equal(clock.Now()) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, clock.Now())
	}
	if got.CompletedAt != nil || got.DurationSeconds != nil {
		t.Error("new workout should not be completed")
	}
}

func TestCreateWorkoutWithoutName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, "")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	got, _ := db.GetWorkout(ctx, w.ID)
	if got.Name != nil {
		t.Errorf("expected NULL name, got %q", *got.Name)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	missing := uuid.New()

	if w, err := db.GetWorkout(ctx, missing); err != nil || w != nil {
		t.Errorf("GetWorkout(missing) = %v, %v; want nil, nil", w, err)
	}
	if w, err := db.GetWorkoutWithDetails(ctx, missing); err != nil || w != nil {
		t.Errorf("GetWorkoutWithDetails(missing) = %v, %v; want nil, nil", w, err)
	}
	if e, err := db.GetExercise(ctx, missing); err != nil || e != nil {
		t.Errorf("GetExercise(missing) = %v, %v; want nil, nil", e, err)
	}
	if s, err := db.GetSet(ctx, missing); err != nil || s != nil {
		t.Errorf("GetSet(missing) = %v, %v; want nil, nil", s, err)
	}
	if w, err := db.CompleteWorkout(ctx, missing, ""); err != nil || w != nil {
		t.Errorf("CompleteWorkout(missing) = %v, %v; want nil, nil", w, err)
	}
	if err := db.DeleteWorkout(ctx, missing); err != nil {
		t.Errorf("DeleteWorkout(missing) = %v, want nil", err)
	}
}

func TestCompleteWorkoutDuration(t *testing.T) {
	db, clock := setupClockedDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, "Legs")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	clock.Advance(125*time.Second + 700*time.Millisecond)
	done, err := db.CompleteWorkout(ctx, w.ID, "")
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if done.DurationSeconds == nil || *done.DurationSeconds != 125 {
		t.Errorf("DurationSeconds = %v, want 125", done.DurationSeconds)
	}

	got, _ := db.GetWorkout(ctx, w.ID)
	if got.CompletedAt == nil || !got.CompletedAt.Equal(clock.Now()) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, clock.Now())
	}
	if got.DurationSeconds == nil || *got.DurationSeconds != 125 {
		t.Errorf("stored DurationSeconds = %v, want 125", got.DurationSeconds)
	}
}

func TestCompleteWorkoutNotes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	notes := gofakeit.Sentence(6)

	w, _ := db.CreateWorkout(ctx, "Pull")
	if err := db.UpdateWorkoutNotes(ctx, w.ID, notes); err != nil {
		t.Fatalf("UpdateWorkoutNotes failed: %v", err)
	}

	done, err := db.CompleteWorkout(ctx, w.ID, "")
	if err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	if done.Notes == nil || *done.Notes != notes {
		t.Errorf("empty notes should preserve existing, got %v", done.Notes)
	}

	done, _ = db.CompleteWorkout(ctx, w.ID, "felt strong")
	got, _ := db.GetWorkout(ctx, w.ID)
	if got.Notes == nil || *got.Notes != "felt strong" || *done.Notes != "felt strong" {
		t.Errorf("Notes = %v, want felt strong", got.Notes)
	}
}

func TestRecompleteRecomputesFromOriginalStart(t *testing.T) {
	db, clock := setupClockedDB(t)
	ctx := context.Background()

	w, _ := db.CreateWorkout(ctx, "")
	clock.Advance(60 * time.Second)
	if _, err := db.CompleteWorkout(ctx, w.ID, ""); err != nil {
		t.Fatalf("CompleteWorkout failed: %v", err)
	}
	clock.Advance(30 * time.Second)
	again, err := db.CompleteWorkout(ctx, w.ID, "")
	if err != nil {
		t.Fatalf("second CompleteWorkout failed: %v", err)
	}
	if *again.DurationSeconds != 90 {
		t.Errorf("DurationSeconds = %d, want 90", *again.DurationSeconds)
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	bench := createExercise(t, db, models.MuscleChest)
	row := createExercise(t, db, models.MuscleBack)

	w, _ := db.CreateWorkout(ctx, "Upper")
	for _, e := range []*models.Exercise{bench, row} {
		we, err := db.AddWorkoutExercise(ctx, w.ID, e.ID)
		if err != nil {
			t.Fatalf("AddWorkoutExercise failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := db.AddSet(ctx, we.ID); err != nil {
				t.Fatalf("AddSet failed: %v", err)
			}
		}
	}

	if n := countRows(t, db, `SELECT COUNT(*) FROM workout_sets`); n != 6 {
		t.Fatalf("expected 6 sets before delete, got %d", n)
	}

	if err := db.DeleteWorkout(ctx, w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	if n := countRows(t, db, `SELECT COUNT(*) FROM workout_exercises WHERE workout_id = ?`, w.ID.String()); n != 0 {
		t.Errorf("workout_exercises remaining = %d, want 0", n)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM workout_sets`); n != 0 {
		t.Errorf("workout_sets remaining = %d, want 0", n)
	}
	if n := countRows(t, db, `SELECT COUNT(*) FROM exercises`); n != 2 {
		t.Errorf("exercises should survive, got %d", n)
	}
}

func TestInProgressWorkout(t *testing.T) {
	db, clock := setupClockedDB(t)
	ctx := context.Background()

	if w, err := db.InProgressWorkout(ctx); err != nil || w != nil {
		t.Fatalf("InProgressWorkout on empty db = %v, %v", w, err)
	}

	done, _ := db.CreateWorkout(ctx, "done")
	clock.Advance(time.Minute)
	db.CompleteWorkout(ctx, done.ID, "")
	clock.Advance(time.Minute)
	active, _ := db.CreateWorkout(ctx, "active")

	got, err := db.InProgressWorkout(ctx)
	if err != nil {
		t.Fatalf("InProgressWorkout failed: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Errorf("InProgressWorkout = %v, want %s", got, active.ID)
	}
}

func TestResolveID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	w, _ := db.CreateWorkout(ctx, "")

	tests := []struct {
		name    string
		input   string
		want    uuid.UUID
		wantErr bool
	}{
		{"full id", w.ID.String(), w.ID, false},
		{"prefix", w.ID.String()[:8], w.ID, false},
		{"upper-case prefix", "  " + strings.ToUpper(w.ID.String()[:6]), w.ID, false},
		{"unknown full id", uuid.New().String(), uuid.Nil, false},
		{"no match", "zzzzzzzz", uuid.Nil, false},
		{"empty", "", uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ResolveID(ctx, "workouts", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveID error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveID = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := db.ResolveID(ctx, "sqlite_master", "a"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestResolveIDAmbiguous(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		db.CreateWorkout(ctx, "")
	}
	// With 40 random IDs, at least two share a first hex digit.
	ambiguous := false
	for _, c := range "0123456789abcdef" {
		if _, err := db.ResolveID(ctx, "workouts", string(c)); err != nil {
			ambiguous = true
			break
		}
	}
	if !ambiguous {
		t.Error("expected an ambiguous single-character prefix")
	}
}
