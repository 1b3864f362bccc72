// ABOUTME: Workout lifecycle operations for SQLite storage.
// ABOUTME: Create, complete with duration, discard with cascade delete, and notes.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
)

const workoutColumns = `id, name, notes, started_at, completed_at, duration_seconds, created_at`

// CreateWorkout starts a new in-progress workout at the current time.
// An empty name is stored as NULL.
func (d *DB) CreateWorkout(ctx context.Context, name string) (*models.Workout, error) {
	w := models.NewWorkout(name, d.stamp())
	if err := insertWorkout(ctx, d.db, w); err != nil {
		return nil, err
	}
	return w, nil
}

func insertWorkout(ctx context.Context, q queryer, w *models.Workout) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO workouts (id, name, notes, started_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID.String(),
		nullableString(w.Name),
		nullableString(w.Notes),
		formatTime(w.StartedAt),
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// GetWorkout returns a workout without exercises, or nil if it does not exist.
func (d *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	return getWorkout(ctx, d.db, id)
}

func getWorkout(ctx context.Context, q queryer, id uuid.UUID) (*models.Workout, error) {
	row := q.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id.String())
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// InProgressWorkout returns the most recently started workout that has not
// been completed, or nil if there is none.
func (d *DB) InProgressWorkout(ctx context.Context) (*models.Workout, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE completed_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1`)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get in-progress workout: %w", err)
	}
	return w, nil
}

// CompleteWorkout stamps completed_at and duration_seconds. Empty notes keep
// the existing notes. Calling it again recomputes the duration from the
// original start. Returns nil if the workout does not exist.
func (d *DB) CompleteWorkout(ctx context.Context, id uuid.UUID, notes string) (*models.Workout, error) {
	var out *models.Workout
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		w, err := getWorkout(ctx, tx, id)
		if err != nil || w == nil {
			return err
		}

		completedAt := d.stamp()
		duration := int(math.Floor(completedAt.Sub(w.StartedAt).Seconds()))

		_, err = tx.ExecContext(ctx, `
			UPDATE workouts
			SET completed_at = ?, duration_seconds = ?, notes = COALESCE(?, notes)
			WHERE id = ?`,
			formatTime(completedAt), duration, stringOrNil(notes), id.String())
		if err != nil {
			return fmt.Errorf("complete workout: %w", err)
		}

		w.CompletedAt = &completedAt
		w.DurationSeconds = &duration
		if notes != "" {
			w.Notes = &notes
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWorkout removes a workout with its exercises and sets (cascade delete).
// Deleting a missing workout is not an error.
func (d *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// UpdateWorkoutNotes replaces the workout notes. Empty notes clear them.
func (d *DB) UpdateWorkoutNotes(ctx context.Context, id uuid.UUID, notes string) error {
	_, err := d.db.ExecContext(ctx, `UPDATE workouts SET notes = ? WHERE id = ?`, stringOrNil(notes), id.String())
	if err != nil {
		return fmt.Errorf("update workout notes: %w", err)
	}
	return nil
}

// stamp returns the current time at storage precision.
func (d *DB) stamp() time.Time {
	return d.now().UTC().Truncate(time.Millisecond)
}

func scanWorkout(row interface{ Scan(...any) error }) (*models.Workout, error) {
	var w models.Workout
	var id, startedAt, createdAt string
	var name, notes, completedAt sql.NullString
	var duration sql.NullInt64

	if err := row.Scan(&id, &name, &notes, &startedAt, &completedAt, &duration, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if w.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse workout id: %w", err)
	}
	if w.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if name.Valid {
		w.Name = &name.String
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		w.CompletedAt = &t
	}
	if duration.Valid {
		v := int(duration.Int64)
		w.DurationSeconds = &v
	}
	return &w, nil
}

func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	var out []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
