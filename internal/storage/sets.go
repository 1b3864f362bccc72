// ABOUTME: Workout exercise and set operations for SQLite storage.
// ABOUTME: Sequence numbers are computed and inserted in one statement.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
)

const workoutExerciseColumns = `id, workout_id, exercise_id, order_index, notes, created_at`
const setColumns = `id, workout_exercise_id, set_number, reps, weight, is_warmup, is_completed, created_at`

// AddWorkoutExercise appends an exercise to a workout. The order index is one
// past the current maximum for the workout and is never compacted.
func (d *DB) AddWorkoutExercise(ctx context.Context, workoutID, exerciseID uuid.UUID) (*models.WorkoutExercise, error) {
	return insertWorkoutExercise(ctx, d.db, workoutID, exerciseID, d.stamp())
}

// AddWorkoutExerciseWithSet appends an exercise to a workout together with
// its first empty set. Both rows are written in one transaction.
func (d *DB) AddWorkoutExerciseWithSet(ctx context.Context, workoutID, exerciseID uuid.UUID) (*models.WorkoutExercise, error) {
	now := d.stamp()
	var we *models.WorkoutExercise
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if we, err = insertWorkoutExercise(ctx, tx, workoutID, exerciseID, now); err != nil {
			return err
		}
		set, err := insertSet(ctx, tx, we.ID, nil, now)
		if err != nil {
			return err
		}
		we.Sets = []models.WorkoutSet{*set}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add workout exercise with set: %w", err)
	}
	return we, nil
}

func insertWorkoutExercise(ctx context.Context, q queryer, workoutID, exerciseID uuid.UUID, now time.Time) (*models.WorkoutExercise, error) {
	we := &models.WorkoutExercise{
		ID:         uuid.New(),
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		CreatedAt:  now,
	}
	err := q.QueryRowContext(ctx, `
		INSERT INTO workout_exercises (id, workout_id, exercise_id, order_index, created_at)
		SELECT ?, ?, ?, COALESCE(MAX(order_index), -1) + 1, ?
		FROM workout_exercises
		WHERE workout_id = ?
		RETURNING order_index`,
		we.ID.String(), workoutID.String(), exerciseID.String(), formatTime(now), workoutID.String(),
	).Scan(&we.OrderIndex)
	if err != nil {
		return nil, fmt.Errorf("add workout exercise: %w", err)
	}
	return we, nil
}

// ListWorkoutExercises returns a workout's exercises in order, without sets.
func (d *DB) ListWorkoutExercises(ctx context.Context, workoutID uuid.UUID) ([]*models.WorkoutExercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+workoutExerciseColumns+`
		FROM workout_exercises
		WHERE workout_id = ?
		ORDER BY order_index ASC`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()

	var out []*models.WorkoutExercise
	for rows.Next() {
		we, err := scanWorkoutExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		out = append(out, we)
	}
	return out, rows.Err()
}

// GetWorkoutExercise returns a workout exercise by ID, or nil.
func (d *DB) GetWorkoutExercise(ctx context.Context, id uuid.UUID) (*models.WorkoutExercise, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+workoutExerciseColumns+` FROM workout_exercises WHERE id = ?`, id.String())
	we, err := scanWorkoutExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout exercise: %w", err)
	}
	return we, nil
}

// RemoveWorkoutExercise deletes an exercise from a workout along with its sets.
// Remaining order indexes are left as they are.
func (d *DB) RemoveWorkoutExercise(ctx context.Context, id uuid.UUID) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workout_exercises WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("remove workout exercise: %w", err)
	}
	return nil
}

// UpdateExerciseNotes replaces notes on a workout exercise.
func (d *DB) UpdateExerciseNotes(ctx context.Context, id uuid.UUID, notes string) error {
	_, err := d.db.ExecContext(ctx, `UPDATE workout_exercises SET notes = ? WHERE id = ?`, stringOrNil(notes), id.String())
	if err != nil {
		return fmt.Errorf("update exercise notes: %w", err)
	}
	return nil
}

// AddSet appends an empty set. Its number is the existing set count plus one.
func (d *DB) AddSet(ctx context.Context, workoutExerciseID uuid.UUID) (*models.WorkoutSet, error) {
	return insertSet(ctx, d.db, workoutExerciseID, nil, d.stamp())
}

// insertSet adds a set, pre-filled from planned when non-nil.
func insertSet(ctx context.Context, q queryer, workoutExerciseID uuid.UUID, planned *models.PlannedSet, now time.Time) (*models.WorkoutSet, error) {
	s := &models.WorkoutSet{
		ID:                uuid.New(),
		WorkoutExerciseID: workoutExerciseID,
		CreatedAt:         now,
	}
	var reps, weight any
	if planned != nil {
		r, w := planned.Reps, planned.Weight
		s.Reps, s.Weight, s.IsWarmup = &r, &w, planned.IsWarmup
		reps, weight = r, w
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO workout_sets (id, workout_exercise_id, set_number, reps, weight, is_warmup, is_completed, created_at)
		SELECT ?, ?, COUNT(*) + 1, ?, ?, ?, 0, ?
		FROM workout_sets
		WHERE workout_exercise_id = ?
		RETURNING set_number`,
		s.ID.String(), workoutExerciseID.String(), reps, weight, boolToInt(s.IsWarmup), formatTime(now), workoutExerciseID.String(),
	).Scan(&s.SetNumber)
	if err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}
	return s, nil
}

// GetSet returns a set by ID, or nil.
func (d *DB) GetSet(ctx context.Context, id uuid.UUID) (*models.WorkoutSet, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+setColumns+` FROM workout_sets WHERE id = ?`, id.String())
	s, err := scanSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return s, nil
}

// ListSets returns the sets of a workout exercise in display order.
func (d *DB) ListSets(ctx context.Context, workoutExerciseID uuid.UUID) ([]models.WorkoutSet, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+setColumns+`
		FROM workout_sets
		WHERE workout_exercise_id = ?
		ORDER BY set_number ASC, created_at ASC, rowid ASC`, workoutExerciseID.String())
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var out []models.WorkoutSet
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// UpdateSet applies a partial update. An empty update is a no-op.
func (d *DB) UpdateSet(ctx context.Context, id uuid.UUID, u models.SetUpdate) error {
	var assignments []string
	var args []any

	if u.Reps != nil {
		assignments = append(assignments, "reps = ?")
		args = append(args, *u.Reps)
	}
	if u.Weight != nil {
		assignments = append(assignments, "weight = ?")
		args = append(args, *u.Weight)
	}
	if u.IsWarmup != nil {
		assignments = append(assignments, "is_warmup = ?")
		args = append(args, boolToInt(*u.IsWarmup))
	}
	if u.IsCompleted != nil {
		assignments = append(assignments, "is_completed = ?")
		args = append(args, boolToInt(*u.IsCompleted))
	}
	if len(assignments) == 0 {
		return nil
	}

	args = append(args, id.String())
	query := `UPDATE workout_sets SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return nil
}

// CompleteSet records reps, weight, and warmup flag and marks the set complete
// in a single statement. Values are stored as given.
func (d *DB) CompleteSet(ctx context.Context, id uuid.UUID, reps int, weight float64, isWarmup bool) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE workout_sets
		SET reps = ?, weight = ?, is_warmup = ?, is_completed = 1
		WHERE id = ?`,
		reps, weight, boolToInt(isWarmup), id.String())
	if err != nil {
		return fmt.Errorf("complete set: %w", err)
	}
	return nil
}

// CompleteSetWithRecord completes a set and, for a working set, stores a
// personal record when it beats the exercise's best. The update and the
// record check commit together or not at all. The returned record is nil
// when nothing was beaten.
func (d *DB) CompleteSetWithRecord(ctx context.Context, exerciseID, setID uuid.UUID, reps int, weight float64, isWarmup bool) (*models.PersonalRecord, error) {
	var pr *models.PersonalRecord
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE workout_sets
			SET reps = ?, weight = ?, is_warmup = ?, is_completed = 1
			WHERE id = ?`,
			reps, weight, boolToInt(isWarmup), setID.String())
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("set %s: %w", setID, sql.ErrNoRows)
		}
		if isWarmup {
			return nil
		}
		pr, err = recordIfBest(ctx, tx, exerciseID, setID, weight, reps, d.stamp())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("complete set: %w", err)
	}
	return pr, nil
}

// DeleteSet removes a set. Remaining set numbers are not renumbered.
func (d *DB) DeleteSet(ctx context.Context, id uuid.UUID) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workout_sets WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// CreateWorkoutWithExercises creates a workout pre-populated with exercises
// and filled-in sets. Everything is written in one transaction, so a failure
// leaves no partial workout behind.
func (d *DB) CreateWorkoutWithExercises(ctx context.Context, name string, plan []models.PlannedExercise) (*models.Workout, error) {
	now := d.stamp()
	w := models.NewWorkout(name, now)

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertWorkout(ctx, tx, w); err != nil {
			return err
		}
		for i, pe := range plan {
			we, err := insertWorkoutExercise(ctx, tx, w.ID, pe.ExerciseID, now)
			if err != nil {
				return fmt.Errorf("exercise %d: %w", i, err)
			}
			for j := range pe.Sets {
				if _, err := insertSet(ctx, tx, we.ID, &pe.Sets[j], now); err != nil {
					return fmt.Errorf("exercise %d set %d: %w", i, j, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create workout with exercises: %w", err)
	}
	return w, nil
}

func scanWorkoutExercise(row interface{ Scan(...any) error }) (*models.WorkoutExercise, error) {
	var we models.WorkoutExercise
	var id, workoutID, exerciseID, createdAt string
	var notes sql.NullString

	if err := row.Scan(&id, &workoutID, &exerciseID, &we.OrderIndex, &notes, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if we.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if we.WorkoutID, err = uuid.Parse(workoutID); err != nil {
		return nil, err
	}
	if we.ExerciseID, err = uuid.Parse(exerciseID); err != nil {
		return nil, err
	}
	if we.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		we.Notes = &notes.String
	}
	return &we, nil
}

func scanSet(row interface{ Scan(...any) error }) (*models.WorkoutSet, error) {
	var s models.WorkoutSet
	var id, weID, createdAt string
	var reps sql.NullInt64
	var weight sql.NullFloat64
	var warmup, completed int

	if err := row.Scan(&id, &weID, &s.SetNumber, &reps, &weight, &warmup, &completed, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if s.WorkoutExerciseID, err = uuid.Parse(weID); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if reps.Valid {
		v := int(reps.Int64)
		s.Reps = &v
	}
	if weight.Valid {
		v := weight.Float64
		s.Weight = &v
	}
	s.IsWarmup = warmup != 0
	s.IsCompleted = completed != 0
	return &s, nil
}
