// ABOUTME: Exercise catalog operations for SQLite storage.
// ABOUTME: List, filter, search, and create custom exercises.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
)

const exerciseColumns = `id, name, primary_muscle, secondary_muscles, equipment, movement_pattern, instructions, is_custom, created_at`

// ListExercises returns the full catalog ordered by name.
func (d *DB) ListExercises(ctx context.Context) ([]*models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetExercise returns an exercise by ID, or nil if it does not exist.
func (d *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id.String())
	e, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

// FilterExercises returns exercises matching every supplied criterion, ordered by name.
func (d *DB) FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]*models.Exercise, error) {
	var conditions []string
	var args []any

	if f.Muscle != nil {
		conditions = append(conditions, "primary_muscle = ?")
		args = append(args, string(*f.Muscle))
	}
	if f.Equipment != nil {
		conditions = append(conditions, "equipment = ?")
		args = append(args, string(*f.Equipment))
	}
	if f.MovementPattern != nil {
		conditions = append(conditions, "movement_pattern = ?")
		args = append(args, string(*f.MovementPattern))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		conditions = append(conditions, "fold_name(name) LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(models.FoldName(search))+"%")
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// FindExercisesByName returns exercises whose name matches exactly, ignoring
// case. Folding is the same as the suggestion matcher's, so "élévation" finds
// "Élévation".
func (d *DB) FindExercisesByName(ctx context.Context, name string) ([]*models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE fold_name(name) = ? ORDER BY is_custom ASC, name ASC`,
		models.FoldName(name))
	if err != nil {
		return nil, fmt.Errorf("find exercises by name: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// LookupExercise finds an exercise by exact name, full ID, or unique ID prefix.
// Names win over ID prefixes. It returns nil when nothing matches.
func LookupExercise(ctx context.Context, repo Repository, ref string) (*models.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	byName, err := repo.FindExercisesByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(byName) > 0 {
		return byName[0], nil
	}
	id, err := repo.ResolveID(ctx, "exercises", ref)
	if err != nil || id == uuid.Nil {
		return nil, err
	}
	return repo.GetExercise(ctx, id)
}

// CreateCustomExercise stores a user-defined exercise and returns the stored row.
// Duplicate names are allowed.
func (d *DB) CreateCustomExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.IsCustom = true
	e.CreatedAt = d.now()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO exercises (`+exerciseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		e.ID.String(),
		e.Name,
		string(e.PrimaryMuscle),
		nullableString(e.SecondaryMuscles),
		nullableEnum(e.Equipment),
		nullableEnum(e.MovementPattern),
		nullableString(e.Instructions),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	return d.GetExercise(ctx, e.ID)
}

// CountExercises returns the number of catalog entries.
func (d *DB) CountExercises(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

func scanExercise(row interface{ Scan(...any) error }) (*models.Exercise, error) {
	var e models.Exercise
	var id, muscle, createdAt string
	var secondary, equipment, movement, instructions sql.NullString
	var isCustom int
	if err := row.Scan(&id, &e.Name, &muscle, &secondary, &equipment, &movement, &instructions, &isCustom, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if e.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse exercise id: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	e.PrimaryMuscle = models.MuscleGroup(muscle)
	e.IsCustom = isCustom != 0
	if secondary.Valid {
		e.SecondaryMuscles = &secondary.String
	}
	if equipment.Valid {
		eq := models.Equipment(equipment.String)
		e.Equipment = &eq
	}
	if movement.Valid {
		mp := models.MovementPattern(movement.String)
		e.MovementPattern = &mp
	}
	if instructions.Valid {
		e.Instructions = &instructions.String
	}
	return &e, nil
}

func scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var out []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableEnum[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
