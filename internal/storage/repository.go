// ABOUTME: Repository interface for workout data storage.
// ABOUTME: Defines the catalog, workout, set, record, and aggregate contract.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
)

// Repository defines the storage interface for workout data.
// Lookups that find nothing return a nil result and a nil error.
type Repository interface {
	// Exercise catalog
	ListExercises(ctx context.Context) ([]*models.Exercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]*models.Exercise, error)
	FindExercisesByName(ctx context.Context, name string) ([]*models.Exercise, error)
	CreateCustomExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	CountExercises(ctx context.Context) (int, error)
	SeedExercisesIfEmpty(ctx context.Context) (int, error)

	// Workouts
	CreateWorkout(ctx context.Context, name string) (*models.Workout, error)
	CreateWorkoutWithExercises(ctx context.Context, name string, plan []models.PlannedExercise) (*models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	GetWorkoutWithDetails(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	InProgressWorkout(ctx context.Context) (*models.Workout, error)
	CompleteWorkout(ctx context.Context, id uuid.UUID, notes string) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	UpdateWorkoutNotes(ctx context.Context, id uuid.UUID, notes string) error

	// Workout exercises and sets
	AddWorkoutExercise(ctx context.Context, workoutID, exerciseID uuid.UUID) (*models.WorkoutExercise, error)
	AddWorkoutExerciseWithSet(ctx context.Context, workoutID, exerciseID uuid.UUID) (*models.WorkoutExercise, error)
	GetWorkoutExercise(ctx context.Context, id uuid.UUID) (*models.WorkoutExercise, error)
	ListWorkoutExercises(ctx context.Context, workoutID uuid.UUID) ([]*models.WorkoutExercise, error)
	RemoveWorkoutExercise(ctx context.Context, id uuid.UUID) error
	UpdateExerciseNotes(ctx context.Context, id uuid.UUID, notes string) error
	AddSet(ctx context.Context, workoutExerciseID uuid.UUID) (*models.WorkoutSet, error)
	GetSet(ctx context.Context, id uuid.UUID) (*models.WorkoutSet, error)
	ListSets(ctx context.Context, workoutExerciseID uuid.UUID) ([]models.WorkoutSet, error)
	UpdateSet(ctx context.Context, id uuid.UUID, u models.SetUpdate) error
	CompleteSet(ctx context.Context, id uuid.UUID, reps int, weight float64, isWarmup bool) error
	CompleteSetWithRecord(ctx context.Context, exerciseID, setID uuid.UUID, reps int, weight float64, isWarmup bool) (*models.PersonalRecord, error)
	DeleteSet(ctx context.Context, id uuid.UUID) error

	// Personal records
	BestPersonalRecord(ctx context.Context, exerciseID uuid.UUID) (*models.PersonalRecord, error)
	CurrentPersonalRecord(ctx context.Context, exerciseID uuid.UUID) (*models.PersonalRecord, error)
	RecordPersonalRecordIfBest(ctx context.Context, exerciseID, setID uuid.UUID, weight float64, reps int) (*models.PersonalRecord, error)
	ListPersonalRecords(ctx context.Context, exerciseID uuid.UUID) ([]*models.PersonalRecord, error)
	RecentPersonalRecords(ctx context.Context, limit int) ([]*models.PersonalRecord, error)
	PersonalRecordCount(ctx context.Context) (int, error)

	// Aggregates over completed workouts
	RecentWorkouts(ctx context.Context, limit int) ([]*models.Workout, error)
	AllWorkouts(ctx context.Context) ([]*models.Workout, error)
	WorkoutsThisWeek(ctx context.Context) ([]*models.Workout, error)
	TotalVolumeThisWeek(ctx context.Context) (float64, error)
	WorkoutVolume(ctx context.Context, workoutID uuid.UUID) (float64, error)
	WorkoutExerciseCount(ctx context.Context, workoutID uuid.UUID) (int, error)
	TotalWorkoutCount(ctx context.Context) (int, error)
	WorkoutsInDateRange(ctx context.Context, start, end time.Time) ([]*models.Workout, error)
	MuscleGroupFrequency(ctx context.Context, since time.Time) (map[models.MuscleGroup]int, error)
	ExerciseHistory(ctx context.Context, exerciseID uuid.UUID, limit int) ([]models.ExerciseHistoryEntry, error)
	LastPerformance(ctx context.Context, exerciseID uuid.UUID) (*models.WorkoutSet, error)

	// Export
	Export(ctx context.Context, r ExportRange) (*ExportData, error)

	// IDs
	ResolveID(ctx context.Context, table, idOrPrefix string) (uuid.UUID, error)

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
