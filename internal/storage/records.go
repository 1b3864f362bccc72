// ABOUTME: Personal record persistence for SQLite storage.
// ABOUTME: Records are append-only; a new one is written only when it beats the best.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
)

const recordColumns = `id, exercise_id, weight, reps, achieved_at, workout_set_id, created_at`

// BestPersonalRecord returns the heaviest record for an exercise, breaking
// ties on reps. Returns nil if the exercise has no records.
func (d *DB) BestPersonalRecord(ctx context.Context, exerciseID uuid.UUID) (*models.PersonalRecord, error) {
	return bestPersonalRecord(ctx, d.db, exerciseID)
}

func bestPersonalRecord(ctx context.Context, q queryer, exerciseID uuid.UUID) (*models.PersonalRecord, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM personal_records
		WHERE exercise_id = ?
		ORDER BY weight DESC, reps DESC
		LIMIT 1`, exerciseID.String())
	pr, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get best personal record: %w", err)
	}
	return pr, nil
}

// CurrentPersonalRecord returns the most recently achieved record, or nil.
func (d *DB) CurrentPersonalRecord(ctx context.Context, exerciseID uuid.UUID) (*models.PersonalRecord, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM personal_records
		WHERE exercise_id = ?
		ORDER BY achieved_at DESC, rowid DESC
		LIMIT 1`, exerciseID.String())
	pr, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current personal record: %w", err)
	}
	return pr, nil
}

// RecordPersonalRecordIfBest stores a record for the set when (weight, reps)
// beats the exercise's best. It returns the new record, or nil when the set
// is not a record. The comparison and insert share one transaction.
func (d *DB) RecordPersonalRecordIfBest(ctx context.Context, exerciseID, setID uuid.UUID, weight float64, reps int) (*models.PersonalRecord, error) {
	if !stats.QualifiesForRecord(weight, reps) {
		return nil, nil
	}

	var created *models.PersonalRecord
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = recordIfBest(ctx, tx, exerciseID, setID, weight, reps, d.stamp())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("record personal record: %w", err)
	}
	return created, nil
}

// recordIfBest inserts a record when (weight, reps) beats the current best.
// Callers run it inside a transaction.
func recordIfBest(ctx context.Context, q queryer, exerciseID, setID uuid.UUID, weight float64, reps int, now time.Time) (*models.PersonalRecord, error) {
	if !stats.QualifiesForRecord(weight, reps) {
		return nil, nil
	}
	best, err := bestPersonalRecord(ctx, q, exerciseID)
	if err != nil {
		return nil, err
	}
	if best != nil && !stats.IsNewPersonalRecord(weight, reps, best.Weight, best.Reps) {
		return nil, nil
	}

	pr := models.NewPersonalRecord(exerciseID, weight, reps, now)
	if setID != uuid.Nil {
		pr.WithWorkoutSet(setID)
	}
	var setRef any
	if pr.WorkoutSetID != nil {
		setRef = pr.WorkoutSetID.String()
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO personal_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pr.ID.String(), exerciseID.String(), weight, reps,
		formatTime(pr.AchievedAt), setRef, formatTime(pr.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert personal record: %w", err)
	}
	return pr, nil
}

// ListPersonalRecords returns every record for an exercise, newest first.
func (d *DB) ListPersonalRecords(ctx context.Context, exerciseID uuid.UUID) ([]*models.PersonalRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM personal_records
		WHERE exercise_id = ?
		ORDER BY achieved_at DESC, rowid DESC`, exerciseID.String())
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	defer rows.Close()

	var out []*models.PersonalRecord
	for rows.Next() {
		pr, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// RecentPersonalRecords returns the latest records across all exercises
// with the exercise name filled in.
func (d *DB) RecentPersonalRecords(ctx context.Context, limit int) ([]*models.PersonalRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT pr.id, pr.exercise_id, pr.weight, pr.reps, pr.achieved_at, pr.workout_set_id, pr.created_at, e.name
		FROM personal_records pr
		JOIN exercises e ON pr.exercise_id = e.id
		ORDER BY pr.achieved_at DESC, pr.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent personal records: %w", err)
	}
	defer rows.Close()

	var out []*models.PersonalRecord
	for rows.Next() {
		var name string
		pr, err := scanRecordWith(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		pr.ExerciseName = name
		out = append(out, pr)
	}
	return out, rows.Err()
}

// PersonalRecordCount returns the total number of records.
func (d *DB) PersonalRecordCount(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM personal_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count personal records: %w", err)
	}
	return n, nil
}

func scanRecord(row interface{ Scan(...any) error }) (*models.PersonalRecord, error) {
	return scanRecordWith(row)
}

func scanRecordWith(row interface{ Scan(...any) error }, extra ...any) (*models.PersonalRecord, error) {
	var pr models.PersonalRecord
	var id, exerciseID, achievedAt, createdAt string
	var setID sql.NullString

	dest := append([]any{&id, &exerciseID, &pr.Weight, &pr.Reps, &achievedAt, &setID, &createdAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if pr.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if pr.ExerciseID, err = uuid.Parse(exerciseID); err != nil {
		return nil, err
	}
	if pr.AchievedAt, err = parseTime(achievedAt); err != nil {
		return nil, err
	}
	if pr.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if setID.Valid {
		sid, err := uuid.Parse(setID.String)
		if err != nil {
			return nil, err
		}
		pr.WorkoutSetID = &sid
	}
	return &pr, nil
}
