// ABOUTME: Read-side queries over completed workouts: history, volume, and detail hydration.
// ABOUTME: Joined rows are scanned into detailRow and grouped by assembleWorkoutExercises.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
)

// countsPredicate matches sets that contribute to volume.
const countsPredicate = `ws.is_completed = 1 AND ws.is_warmup = 0 AND ws.reps > 0 AND ws.weight > 0`

// RecentWorkouts returns completed workouts, newest first.
func (d *DB) RecentWorkouts(ctx context.Context, limit int) ([]*models.Workout, error) {
	if limit <= 0 {
		limit = 10
	}
	return d.queryWorkouts(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE completed_at IS NOT NULL
		ORDER BY started_at DESC
		LIMIT ?`, limit)
}

// AllWorkouts returns every completed workout, newest first.
func (d *DB) AllWorkouts(ctx context.Context) ([]*models.Workout, error) {
	return d.queryWorkouts(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE completed_at IS NOT NULL
		ORDER BY started_at DESC`)
}

// WorkoutsThisWeek returns completed workouts started since Monday 00:00 local time.
func (d *DB) WorkoutsThisWeek(ctx context.Context) ([]*models.Workout, error) {
	return d.queryWorkouts(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE completed_at IS NOT NULL AND started_at >= ?
		ORDER BY started_at DESC`, formatTime(d.weekStart()))
}

// TotalVolumeThisWeek sums reps x weight over completed working sets in
// completed workouts started this week.
func (d *DB) TotalVolumeThisWeek(ctx context.Context) (float64, error) {
	var v float64
	err := d.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(ws.reps * ws.weight), 0)
		FROM workout_sets ws
		JOIN workout_exercises we ON ws.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		WHERE w.completed_at IS NOT NULL AND w.started_at >= ? AND `+countsPredicate,
		formatTime(d.weekStart())).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("total volume this week: %w", err)
	}
	return v, nil
}

// WorkoutVolume sums reps x weight over completed working sets of one workout.
func (d *DB) WorkoutVolume(ctx context.Context, workoutID uuid.UUID) (float64, error) {
	var v float64
	err := d.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(ws.reps * ws.weight), 0)
		FROM workout_sets ws
		JOIN workout_exercises we ON ws.workout_exercise_id = we.id
		WHERE we.workout_id = ? AND `+countsPredicate, workoutID.String()).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("workout volume: %w", err)
	}
	return v, nil
}

// WorkoutExerciseCount returns how many exercises a workout contains.
func (d *DB) WorkoutExerciseCount(ctx context.Context, workoutID uuid.UUID) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workout_exercises WHERE workout_id = ?`, workoutID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("workout exercise count: %w", err)
	}
	return n, nil
}

// TotalWorkoutCount returns the number of completed workouts.
func (d *DB) TotalWorkoutCount(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts WHERE completed_at IS NOT NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("total workout count: %w", err)
	}
	return n, nil
}

// MuscleGroupFrequency counts exercise entries per primary muscle across
// completed workouts started at or after since.
func (d *DB) MuscleGroupFrequency(ctx context.Context, since time.Time) (map[models.MuscleGroup]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT e.primary_muscle, COUNT(*)
		FROM workout_exercises we
		JOIN workouts w ON we.workout_id = w.id
		JOIN exercises e ON we.exercise_id = e.id
		WHERE w.completed_at IS NOT NULL AND w.started_at >= ?
		GROUP BY e.primary_muscle`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("muscle group frequency: %w", err)
	}
	defer rows.Close()

	out := make(map[models.MuscleGroup]int)
	for rows.Next() {
		var muscle string
		var n int
		if err := rows.Scan(&muscle, &n); err != nil {
			return nil, fmt.Errorf("scan muscle group frequency: %w", err)
		}
		out[models.MuscleGroup(muscle)] = n
	}
	return out, rows.Err()
}

// ExerciseHistory returns the completed sets of an exercise from its most
// recent completed workouts, newest first.
func (d *DB) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID, limit int) ([]models.ExerciseHistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT we.id, w.id, w.name, w.started_at
		FROM workout_exercises we
		JOIN workouts w ON we.workout_id = w.id
		WHERE we.exercise_id = ? AND w.completed_at IS NOT NULL
		ORDER BY w.started_at DESC, we.order_index ASC
		LIMIT ?`, exerciseID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("exercise history: %w", err)
	}

	type entryRef struct {
		workoutExerciseID uuid.UUID
		entry             models.ExerciseHistoryEntry
	}
	var refs []entryRef
	for rows.Next() {
		var weID, wID, startedAt string
		var name sql.NullString
		if err := rows.Scan(&weID, &wID, &name, &startedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan exercise history: %w", err)
		}
		var ref entryRef
		if ref.workoutExerciseID, err = uuid.Parse(weID); err != nil {
			rows.Close()
			return nil, err
		}
		if ref.entry.WorkoutID, err = uuid.Parse(wID); err != nil {
			rows.Close()
			return nil, err
		}
		if ref.entry.StartedAt, err = parseTime(startedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if name.Valid {
			ref.entry.WorkoutName = &name.String
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("exercise history: %w", err)
	}
	// Release the single connection before issuing the per-entry set queries.
	rows.Close()

	out := make([]models.ExerciseHistoryEntry, 0, len(refs))
	for _, ref := range refs {
		sets, err := d.ListSets(ctx, ref.workoutExerciseID)
		if err != nil {
			return nil, err
		}
		for _, s := range sets {
			if s.IsCompleted {
				ref.entry.Sets = append(ref.entry.Sets, s)
			}
		}
		out = append(out, ref.entry)
	}
	return out, nil
}

// LastPerformance returns the last completed working set of an exercise from
// its most recent completed workout, or nil if it has never been done.
func (d *DB) LastPerformance(ctx context.Context, exerciseID uuid.UUID) (*models.WorkoutSet, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT ws.id, ws.workout_exercise_id, ws.set_number, ws.reps, ws.weight, ws.is_warmup, ws.is_completed, ws.created_at
		FROM workout_sets ws
		JOIN workout_exercises we ON ws.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		WHERE we.exercise_id = ?
			AND w.completed_at IS NOT NULL
			AND ws.is_completed = 1
			AND ws.is_warmup = 0
		ORDER BY w.started_at DESC, ws.set_number DESC
		LIMIT 1`, exerciseID.String())
	s, err := scanSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last performance: %w", err)
	}
	return s, nil
}

// GetWorkoutWithDetails returns a workout with its exercises, each exercise's
// catalog entry, and all sets, ordered by order_index then set_number.
// Returns nil if the workout does not exist.
func (d *DB) GetWorkoutWithDetails(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	w, err := d.GetWorkout(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	if err := d.hydrate(ctx, []*models.Workout{w}); err != nil {
		return nil, err
	}
	return w, nil
}

// WorkoutsInDateRange returns fully hydrated completed workouts started
// within [start, end], newest first.
func (d *DB) WorkoutsInDateRange(ctx context.Context, start, end time.Time) ([]*models.Workout, error) {
	workouts, err := d.queryWorkouts(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE completed_at IS NOT NULL AND started_at >= ? AND started_at <= ?
		ORDER BY started_at DESC`, formatTime(start), formatTime(end))
	if err != nil {
		return nil, err
	}
	if err := d.hydrate(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// detailRow is one row of the workout/exercise/set join. Set columns are
// NULL for an exercise that has no sets yet.
type detailRow struct {
	WorkoutID         string
	WorkoutExerciseID string
	ExerciseID        string
	OrderIndex        int
	Notes             sql.NullString
	CreatedAt         string

	ExerciseName     string
	PrimaryMuscle    string
	SecondaryMuscles sql.NullString
	Equipment        sql.NullString
	MovementPattern  sql.NullString
	Instructions     sql.NullString
	IsCustom         int
	ExerciseCreated  string

	SetID        sql.NullString
	SetNumber    sql.NullInt64
	Reps         sql.NullInt64
	Weight       sql.NullFloat64
	IsWarmup     sql.NullInt64
	IsCompleted  sql.NullInt64
	SetCreatedAt sql.NullString
}

func (r *detailRow) scan(rows *sql.Rows) error {
	return rows.Scan(
		&r.WorkoutID, &r.WorkoutExerciseID, &r.ExerciseID, &r.OrderIndex, &r.Notes, &r.CreatedAt,
		&r.ExerciseName, &r.PrimaryMuscle, &r.SecondaryMuscles, &r.Equipment, &r.MovementPattern,
		&r.Instructions, &r.IsCustom, &r.ExerciseCreated,
		&r.SetID, &r.SetNumber, &r.Reps, &r.Weight, &r.IsWarmup, &r.IsCompleted, &r.SetCreatedAt,
	)
}

// hydrate fills Exercises on each workout with one joined query.
func (d *DB) hydrate(ctx context.Context, workouts []*models.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	placeholders := make([]string, len(workouts))
	args := make([]any, len(workouts))
	for i, w := range workouts {
		placeholders[i] = "?"
		args[i] = w.ID.String()
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			we.workout_id, we.id, we.exercise_id, we.order_index, we.notes, we.created_at,
			e.name, e.primary_muscle, e.secondary_muscles, e.equipment, e.movement_pattern,
			e.instructions, e.is_custom, e.created_at,
			ws.id, ws.set_number, ws.reps, ws.weight, ws.is_warmup, ws.is_completed, ws.created_at
		FROM workout_exercises we
		JOIN exercises e ON we.exercise_id = e.id
		LEFT JOIN workout_sets ws ON ws.workout_exercise_id = we.id
		WHERE we.workout_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY we.workout_id, we.order_index ASC, we.rowid ASC, ws.set_number ASC, ws.created_at ASC, ws.rowid ASC`,
		args...)
	if err != nil {
		return fmt.Errorf("load workout details: %w", err)
	}
	defer rows.Close()

	var detail []detailRow
	for rows.Next() {
		var r detailRow
		if err := r.scan(rows); err != nil {
			return fmt.Errorf("scan workout detail: %w", err)
		}
		detail = append(detail, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load workout details: %w", err)
	}

	grouped, err := assembleWorkoutExercises(detail)
	if err != nil {
		return err
	}
	for _, w := range workouts {
		w.Exercises = grouped[w.ID]
	}
	return nil
}

// assembleWorkoutExercises groups joined rows into exercises with their sets,
// keyed by workout. Input order is preserved.
func assembleWorkoutExercises(rows []detailRow) (map[uuid.UUID][]models.WorkoutExercise, error) {
	out := make(map[uuid.UUID][]models.WorkoutExercise)
	var current *models.WorkoutExercise
	var currentWorkout uuid.UUID

	flush := func() {
		if current != nil {
			out[currentWorkout] = append(out[currentWorkout], *current)
			current = nil
		}
	}

	for i := range rows {
		r := &rows[i]
		if current == nil || current.ID.String() != r.WorkoutExerciseID {
			flush()
			we, err := r.workoutExercise()
			if err != nil {
				return nil, err
			}
			current = we
			currentWorkout = we.WorkoutID
		}
		if r.SetID.Valid {
			s, err := r.set(current.ID)
			if err != nil {
				return nil, err
			}
			current.Sets = append(current.Sets, *s)
		}
	}
	flush()
	return out, nil
}

func (r *detailRow) workoutExercise() (*models.WorkoutExercise, error) {
	var we models.WorkoutExercise
	var err error
	if we.ID, err = uuid.Parse(r.WorkoutExerciseID); err != nil {
		return nil, fmt.Errorf("parse workout exercise id: %w", err)
	}
	if we.WorkoutID, err = uuid.Parse(r.WorkoutID); err != nil {
		return nil, fmt.Errorf("parse workout id: %w", err)
	}
	if we.ExerciseID, err = uuid.Parse(r.ExerciseID); err != nil {
		return nil, fmt.Errorf("parse exercise id: %w", err)
	}
	if we.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	we.OrderIndex = r.OrderIndex
	if r.Notes.Valid {
		notes := r.Notes.String
		we.Notes = &notes
	}

	ex := &models.Exercise{
		ID:            we.ExerciseID,
		Name:          r.ExerciseName,
		PrimaryMuscle: models.MuscleGroup(r.PrimaryMuscle),
		IsCustom:      r.IsCustom != 0,
	}
	if ex.CreatedAt, err = parseTime(r.ExerciseCreated); err != nil {
		return nil, err
	}
	if r.SecondaryMuscles.Valid {
		ex.WithSecondaryMuscles(r.SecondaryMuscles.String)
	}
	if r.Equipment.Valid {
		ex.WithEquipment(models.Equipment(r.Equipment.String))
	}
	if r.MovementPattern.Valid {
		ex.WithMovementPattern(models.MovementPattern(r.MovementPattern.String))
	}
	if r.Instructions.Valid {
		ex.WithInstructions(r.Instructions.String)
	}
	we.Exercise = ex
	return &we, nil
}

func (r *detailRow) set(workoutExerciseID uuid.UUID) (*models.WorkoutSet, error) {
	s := models.WorkoutSet{
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         int(r.SetNumber.Int64),
		IsWarmup:          r.IsWarmup.Int64 != 0,
		IsCompleted:       r.IsCompleted.Int64 != 0,
	}
	var err error
	if s.ID, err = uuid.Parse(r.SetID.String); err != nil {
		return nil, fmt.Errorf("parse set id: %w", err)
	}
	if s.CreatedAt, err = parseTime(r.SetCreatedAt.String); err != nil {
		return nil, err
	}
	if r.Reps.Valid {
		v := int(r.Reps.Int64)
		s.Reps = &v
	}
	if r.Weight.Valid {
		v := r.Weight.Float64
		s.Weight = &v
	}
	return &s, nil
}

func (d *DB) queryWorkouts(ctx context.Context, query string, args ...any) ([]*models.Workout, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// weekStart is Monday 00:00 in the clock's local zone.
func (d *DB) weekStart() time.Time {
	return stats.StartOfWeek(d.now())
}
