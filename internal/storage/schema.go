// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines exercises, workouts, workout_exercises, workout_sets, personal_records, body_measurements.
package storage

import "fmt"

const schemaVersion = 1

// initSchema creates all tables and indexes if absent. Safe to run on every open.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		primary_muscle TEXT NOT NULL,
		secondary_muscles TEXT,
		equipment TEXT,
		movement_pattern TEXT,
		instructions TEXT,
		is_custom INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		name TEXT,
		notes TEXT,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		duration_seconds INTEGER,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		order_index INTEGER NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id TEXT PRIMARY KEY,
		workout_exercise_id TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight REAL,
		is_warmup INTEGER NOT NULL DEFAULT 0,
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (workout_exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS personal_records (
		id TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER NOT NULL,
		achieved_at TEXT NOT NULL,
		workout_set_id TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS body_measurements (
		id TEXT PRIMARY KEY,
		weight REAL,
		body_fat_percentage REAL,
		measured_at TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exercises_muscle ON exercises(primary_muscle);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_workout_sets_exercise ON workout_sets(workout_exercise_id);
	CREATE INDEX IF NOT EXISTS idx_personal_records_exercise ON personal_records(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_body_measurements_date ON body_measurements(measured_at DESC);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return err
	}
	_, err := d.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// SchemaVersion reports the user_version recorded in the database file.
func (d *DB) SchemaVersion() (int, error) {
	var v int
	if err := d.db.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}
