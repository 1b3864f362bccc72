// ABOUTME: Built-in exercise library seeding from an embedded YAML fixture.
// ABOUTME: Inserts in batched multi-row statements only when the catalog is empty.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/logger"
	"github.com/harperreed/gymtrack/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed/exercises.yaml
var seedExercisesYAML []byte

const seedBatchSize = 50

type seedExercise struct {
	Name             string `yaml:"name"`
	PrimaryMuscle    string `yaml:"primary_muscle"`
	SecondaryMuscles string `yaml:"secondary_muscles"`
	Equipment        string `yaml:"equipment"`
	MovementPattern  string `yaml:"movement_pattern"`
	Instructions     string `yaml:"instructions"`
}

type seedFile struct {
	Exercises []seedExercise `yaml:"exercises"`
}

// SeedExercises parses the embedded library into models with fresh IDs.
func SeedExercises() ([]*models.Exercise, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedExercisesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse seed exercises: %w", err)
	}

	out := make([]*models.Exercise, 0, len(f.Exercises))
	for i, s := range f.Exercises {
		muscle, err := models.ParseMuscleGroup(s.PrimaryMuscle)
		if err != nil {
			return nil, fmt.Errorf("seed exercise %d (%s): %w", i, s.Name, err)
		}
		e := &models.Exercise{ID: uuid.New(), Name: s.Name, PrimaryMuscle: muscle}
		if s.SecondaryMuscles != "" {
			e.WithSecondaryMuscles(s.SecondaryMuscles)
		}
		if s.Equipment != "" {
			eq, err := models.ParseEquipment(s.Equipment)
			if err != nil {
				return nil, fmt.Errorf("seed exercise %d (%s): %w", i, s.Name, err)
			}
			e.WithEquipment(eq)
		}
		if s.MovementPattern != "" {
			mp, err := models.ParseMovementPattern(s.MovementPattern)
			if err != nil {
				return nil, fmt.Errorf("seed exercise %d (%s): %w", i, s.Name, err)
			}
			e.WithMovementPattern(mp)
		}
		if s.Instructions != "" {
			e.WithInstructions(s.Instructions)
		}
		out = append(out, e)
	}
	return out, nil
}

// SeedExercisesIfEmpty inserts the built-in library when the catalog has no rows.
// It returns the number of exercises inserted, which is zero on every later call.
func (d *DB) SeedExercisesIfEmpty(ctx context.Context) (int, error) {
	count, err := d.CountExercises(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	exercises, err := SeedExercises()
	if err != nil {
		return 0, err
	}

	createdAt := formatTime(d.now())
	err = d.withTx(ctx, func(tx *sql.Tx) error {
		// Recheck inside the transaction so a concurrent opener cannot double-seed.
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}
		if n > 0 {
			exercises = nil
			return nil
		}

		for start := 0; start < len(exercises); start += seedBatchSize {
			end := min(start+seedBatchSize, len(exercises))
			batch := exercises[start:end]

			placeholders := make([]string, len(batch))
			args := make([]any, 0, len(batch)*8)
			for i, e := range batch {
				placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, 0, ?)"
				args = append(args,
					e.ID.String(),
					e.Name,
					string(e.PrimaryMuscle),
					nullableString(e.SecondaryMuscles),
					nullableEnum(e.Equipment),
					nullableEnum(e.MovementPattern),
					nullableString(e.Instructions),
					createdAt,
				)
			}

			query := `INSERT INTO exercises (` + exerciseColumns + `) VALUES ` + strings.Join(placeholders, ", ")
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert seed batch at %d: %w", start, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed exercises: %w", err)
	}

	if len(exercises) > 0 {
		logger.Info("seeded exercise library", "count", len(exercises))
	}
	return len(exercises), nil
}
