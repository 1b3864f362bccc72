// ABOUTME: Unit tests for the session state machine against a mocked store.
// ABOUTME: Covers guards, refresh semantics, PR checks, and the rest timer.
package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixtureWorkout is an in-progress workout with one exercise and one set.
func fixtureWorkout() *models.Workout {
	w := models.NewWorkout("Push", fixedNow.Add(-10*time.Minute))
	weID := uuid.New()
	w.Exercises = []models.WorkoutExercise{{
		ID:         weID,
		WorkoutID:  w.ID,
		ExerciseID: uuid.New(),
		Exercise:   &models.Exercise{Name: "Bench Press", PrimaryMuscle: models.MuscleChest},
		Sets: []models.WorkoutSet{{
			ID:                uuid.New(),
			WorkoutExerciseID: weID,
			SetNumber:         1,
		}},
	}}
	return w
}

// resumed returns a session that adopted w through Resume.
func resumed(t *testing.T, store *MockStore, w *models.Workout, opts ...session.Option) *session.Session {
	t.Helper()
	store.EXPECT().InProgressWorkout(gomock.Any()).Return(&models.Workout{ID: w.ID}, nil)
	store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(w.Clone(), nil)

	opts = append([]session.Option{session.WithClock(fixedClock)}, opts...)
	s := session.New(store, opts...)
	ok, err := s.Resume(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	return s
}

func TestSession_IdleGuards(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	s := session.New(store)
	ctx := context.Background()
	id := uuid.New()

	assert.Equal(t, session.NoActiveWorkout, s.State())
	assert.Nil(t, s.Active())

	_, err := s.AddExercise(ctx, id)
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.ErrorIs(t, s.RemoveExercise(ctx, id), session.ErrNoActiveWorkout)
	_, err = s.AddSet(ctx, id)
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.ErrorIs(t, s.UpdateSet(ctx, id, models.SetUpdate{}), session.ErrNoActiveWorkout)
	_, err = s.CompleteSet(ctx, id, 5, 100, false)
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.ErrorIs(t, s.DeleteSet(ctx, id, id), session.ErrNoActiveWorkout)
	_, err = s.Complete(ctx, "")
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.ErrorIs(t, s.Discard(ctx), session.ErrNoActiveWorkout)
}

func TestSession_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	ctx := context.Background()

	created := models.NewWorkout("Legs", fixedNow)
	store.EXPECT().CreateWorkout(gomock.Any(), "Legs").Return(created, nil)

	s := session.New(store)
	w, err := s.Start(ctx, "Legs")
	require.NoError(t, err)
	assert.Equal(t, created.ID, w.ID)
	assert.Empty(t, w.Exercises)
	assert.Equal(t, session.InProgress, s.State())

	_, err = s.Start(ctx, "Again")
	assert.ErrorIs(t, err, session.ErrWorkoutInProgress)
	_, err = s.StartWithExercises(ctx, "Again", nil)
	assert.ErrorIs(t, err, session.ErrWorkoutInProgress)
}

func TestSession_StartStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	store.EXPECT().CreateWorkout(gomock.Any(), "").Return(nil, errors.New("disk full"))

	s := session.New(store)
	_, err := s.Start(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, session.NoActiveWorkout, s.State())
}

func TestSession_ResumeNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().InProgressWorkout(gomock.Any()).Return(nil, nil)

	s := session.New(store)
	ok, err := s.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, session.NoActiveWorkout, s.State())
}

func TestSession_AddExerciseAddsFirstSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	ctx := context.Background()

	ex := &models.Exercise{ID: uuid.New(), Name: "Overhead Press", PrimaryMuscle: models.MuscleShoulders}
	we := &models.WorkoutExercise{ID: uuid.New(), WorkoutID: w.ID, ExerciseID: ex.ID, OrderIndex: 1}

	updated := w.Clone()
	updated.Exercises = append(updated.Exercises, models.WorkoutExercise{
		ID: we.ID, WorkoutID: w.ID, ExerciseID: ex.ID, OrderIndex: 1, Exercise: ex,
		Sets: []models.WorkoutSet{{ID: uuid.New(), WorkoutExerciseID: we.ID, SetNumber: 1}},
	})

	gomock.InOrder(
		store.EXPECT().GetExercise(gomock.Any(), ex.ID).Return(ex, nil),
		store.EXPECT().AddWorkoutExerciseWithSet(gomock.Any(), w.ID, ex.ID).Return(we, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(updated, nil),
	)

	got, err := s.AddExercise(ctx, ex.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Sets, 1)
	assert.Len(t, s.Active().Exercises, 2)
}

func TestSession_AddExerciseNotInCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)

	missing := uuid.New()
	store.EXPECT().GetExercise(gomock.Any(), missing).Return(nil, nil)

	_, err := s.AddExercise(context.Background(), missing)
	assert.ErrorIs(t, err, session.ErrExerciseNotFound)
}

func TestSession_UnknownIDsNeverReachStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	ctx := context.Background()
	stranger := uuid.New()
	we := w.Exercises[0]

	assert.ErrorIs(t, s.RemoveExercise(ctx, stranger), session.ErrUnknownExercise)
	_, err := s.AddSet(ctx, stranger)
	assert.ErrorIs(t, err, session.ErrUnknownExercise)
	assert.ErrorIs(t, s.UpdateSet(ctx, stranger, models.SetUpdate{}), session.ErrUnknownSet)
	_, err = s.CompleteSet(ctx, stranger, 5, 100, false)
	assert.ErrorIs(t, err, session.ErrUnknownSet)
	assert.ErrorIs(t, s.DeleteSet(ctx, stranger, we.Sets[0].ID), session.ErrUnknownExercise)
	assert.ErrorIs(t, s.DeleteSet(ctx, we.ID, stranger), session.ErrUnknownSet)
}

func TestSession_CompleteWorkingSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w, session.WithRestDuration(2*time.Minute))
	ctx := context.Background()

	we := w.Exercises[0]
	setID := we.Sets[0].ID
	pr := models.NewPersonalRecord(we.ExerciseID, 100, 5, fixedNow)

	updated := w.Clone()
	reps, weight := 5, 100.0
	updated.Exercises[0].Sets[0].Reps = &reps
	updated.Exercises[0].Sets[0].Weight = &weight
	updated.Exercises[0].Sets[0].IsCompleted = true

	gomock.InOrder(
		store.EXPECT().CompleteSetWithRecord(gomock.Any(), we.ExerciseID, setID, 5, 100.0, false).Return(pr, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(updated, nil),
	)

	got, err := s.CompleteSet(ctx, setID, 5, 100, false)
	require.NoError(t, err)
	assert.Equal(t, pr, got)

	deadline, running := s.RestDeadline()
	require.True(t, running)
	assert.Equal(t, fixedNow.Add(2*time.Minute), deadline)
	assert.Equal(t, 2*time.Minute, s.RestRemaining())
	assert.True(t, s.Active().Exercises[0].Sets[0].IsCompleted)
}

func TestSession_CompleteWarmupSkipsRecordAndTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	setID := w.Exercises[0].Sets[0].ID

	gomock.InOrder(
		store.EXPECT().CompleteSetWithRecord(gomock.Any(), gomock.Any(), setID, 10, 40.0, true).Return(nil, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(w.Clone(), nil),
	)

	pr, err := s.CompleteSet(context.Background(), setID, 10, 40, true)
	require.NoError(t, err)
	assert.Nil(t, pr)

	_, running := s.RestDeadline()
	assert.False(t, running)
}

func TestSession_CompleteSetOverridesRunningTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	setID := w.Exercises[0].Sets[0].ID

	s.StartRestTimer(10 * time.Minute)
	require.NoError(t, s.SetRestDuration(45*time.Second))

	store.EXPECT().CompleteSetWithRecord(gomock.Any(), gomock.Any(), setID, 5, 60.0, false).Return(nil, nil)
	store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(w.Clone(), nil)

	_, err := s.CompleteSet(context.Background(), setID, 5, 60, false)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, s.RestRemaining())
}

func TestSession_RefreshFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	weID := w.Exercises[0].ID

	store.EXPECT().AddSet(gomock.Any(), weID).Return(&models.WorkoutSet{ID: uuid.New()}, nil)
	store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(nil, errors.New("database is locked"))

	_, err := s.AddSet(context.Background(), weID)
	require.Error(t, err)
	assert.Equal(t, session.InProgress, s.State())
	assert.Len(t, s.Active().Exercises[0].Sets, 1)
}

func TestSession_CompleteSetFailureMatchesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	we := w.Exercises[0]
	setID := we.Sets[0].ID

	gomock.InOrder(
		store.EXPECT().CompleteSetWithRecord(gomock.Any(), we.ExerciseID, setID, 5, 100.0, false).
			Return(nil, errors.New("disk I/O error")),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(w.Clone(), nil),
	)

	pr, err := s.CompleteSet(context.Background(), setID, 5, 100, false)
	require.Error(t, err)
	assert.Nil(t, pr)
	assert.False(t, s.Active().Exercises[0].Sets[0].IsCompleted)
	_, running := s.RestDeadline()
	assert.False(t, running)
}

func TestSession_CompleteSetFailureReloadsCommittedState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	we := w.Exercises[0]
	setID := we.Sets[0].ID

	// The commit reached disk but its acknowledgement was lost.
	stored := w.Clone()
	reps, weight := 5, 100.0
	stored.Exercises[0].Sets[0].Reps = &reps
	stored.Exercises[0].Sets[0].Weight = &weight
	stored.Exercises[0].Sets[0].IsCompleted = true

	gomock.InOrder(
		store.EXPECT().CompleteSetWithRecord(gomock.Any(), we.ExerciseID, setID, 5, 100.0, false).
			Return(nil, errors.New("commit transaction: disk I/O error")),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(stored, nil),
	)

	_, err := s.CompleteSet(context.Background(), setID, 5, 100, false)
	require.Error(t, err)
	assert.True(t, s.Active().Exercises[0].Sets[0].IsCompleted)
}

func TestSession_AddExerciseFailureMatchesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	ex := &models.Exercise{ID: uuid.New(), Name: "Overhead Press"}

	gomock.InOrder(
		store.EXPECT().GetExercise(gomock.Any(), ex.ID).Return(ex, nil),
		store.EXPECT().AddWorkoutExerciseWithSet(gomock.Any(), w.ID, ex.ID).Return(nil, errors.New("disk I/O error")),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(w.Clone(), nil),
	)

	_, err := s.AddExercise(context.Background(), ex.ID)
	require.Error(t, err)
	assert.Equal(t, session.InProgress, s.State())
	assert.Len(t, s.Active().Exercises, 1)
}

func TestSession_AddExerciseWorkoutVanished(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	ex := &models.Exercise{ID: uuid.New(), Name: "Overhead Press"}

	gomock.InOrder(
		store.EXPECT().GetExercise(gomock.Any(), ex.ID).Return(ex, nil),
		store.EXPECT().AddWorkoutExerciseWithSet(gomock.Any(), w.ID, ex.ID).
			Return(&models.WorkoutExercise{ID: uuid.New(), WorkoutID: w.ID, ExerciseID: ex.ID}, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(nil, nil),
	)

	var err error
	require.NotPanics(t, func() { _, err = s.AddExercise(context.Background(), ex.ID) })
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.Equal(t, session.NoActiveWorkout, s.State())
}

func TestSession_CompleteReloadFailureEndsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	s.StartRestTimer(time.Minute)

	finished := w.Clone()
	completedAt := fixedNow
	finished.CompletedAt = &completedAt

	gomock.InOrder(
		store.EXPECT().CompleteWorkout(gomock.Any(), w.ID, "").Return(finished, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(nil, errors.New("database is locked")),
	)

	_, err := s.Complete(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, session.NoActiveWorkout, s.State())
	_, running := s.RestDeadline()
	assert.False(t, running)

	// A retry must not complete the workout a second time.
	_, err = s.Complete(context.Background(), "")
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
}

func TestSession_WorkoutVanishedEndsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	weID := w.Exercises[0].ID

	store.EXPECT().RemoveWorkoutExercise(gomock.Any(), weID).Return(nil)
	store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(nil, nil)

	err := s.RemoveExercise(context.Background(), weID)
	assert.ErrorIs(t, err, session.ErrNoActiveWorkout)
	assert.Equal(t, session.NoActiveWorkout, s.State())
}

func TestSession_CompleteClearsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)
	s.StartRestTimer(time.Minute)

	finished := w.Clone()
	completedAt := fixedNow
	duration := 600
	finished.CompletedAt = &completedAt
	finished.DurationSeconds = &duration

	gomock.InOrder(
		store.EXPECT().CompleteWorkout(gomock.Any(), w.ID, "felt strong").Return(finished, nil),
		store.EXPECT().GetWorkoutWithDetails(gomock.Any(), w.ID).Return(finished, nil),
	)

	got, err := s.Complete(context.Background(), "felt strong")
	require.NoError(t, err)
	assert.Equal(t, 600, *got.DurationSeconds)
	assert.Equal(t, session.NoActiveWorkout, s.State())
	_, running := s.RestDeadline()
	assert.False(t, running)
}

func TestSession_DiscardFailureKeepsWorkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)

	store.EXPECT().DeleteWorkout(gomock.Any(), w.ID).Return(errors.New("io error"))
	require.Error(t, s.Discard(context.Background()))
	assert.Equal(t, session.InProgress, s.State())

	store.EXPECT().DeleteWorkout(gomock.Any(), w.ID).Return(nil)
	require.NoError(t, s.Discard(context.Background()))
	assert.Equal(t, session.NoActiveWorkout, s.State())
}

func TestSession_ActiveIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	w := fixtureWorkout()
	s := resumed(t, store, w)

	copied := s.Active()
	copied.Exercises[0].Sets = nil
	name := "changed"
	copied.Name = &name

	again := s.Active()
	assert.Len(t, again.Exercises[0].Sets, 1)
	assert.Equal(t, "Push", *again.Name)
}

func TestRestTimer(t *testing.T) {
	now := fixedNow
	s := session.New(nil, session.WithClock(func() time.Time { return now }))

	assert.Equal(t, 90*time.Second, s.RestDuration())
	assert.Zero(t, s.RestRemaining())

	deadline := s.StartRestTimer(0)
	assert.Equal(t, fixedNow.Add(90*time.Second), deadline)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 60*time.Second, s.RestRemaining())

	now = now.Add(2 * time.Minute)
	assert.Zero(t, s.RestRemaining())
	_, running := s.RestDeadline()
	assert.False(t, running)

	s.RestoreRestTimer(now.Add(-time.Second))
	assert.Zero(t, s.RestRemaining())
	s.RestoreRestTimer(now.Add(20 * time.Second))
	assert.Equal(t, 20*time.Second, s.RestRemaining())

	s.ClearRestTimer()
	assert.Zero(t, s.RestRemaining())

	assert.ErrorIs(t, s.SetRestDuration(0), session.ErrInvalidDuration)
	s.StartRestTimer(3 * time.Minute)
	assert.Equal(t, 3*time.Minute, s.RestDuration())
}

func TestWatchRestCountsDown(t *testing.T) {
	s := session.New(nil)
	s.StartRestTimer(40 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var values []time.Duration
	for v := range s.WatchRest(ctx, 5*time.Millisecond) {
		values = append(values, v)
	}

	require.NotEmpty(t, values)
	assert.Zero(t, values[len(values)-1], "last value should be zero")
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i], values[i-1])
	}
}

func TestWatchRestStopsOnCancel(t *testing.T) {
	s := session.New(nil)
	s.StartRestTimer(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.WatchRest(ctx, time.Millisecond)

	first := <-ch
	assert.Greater(t, first, 59*time.Minute)
	cancel()

	for range ch {
	}
}

func TestWatchRestWithoutTimer(t *testing.T) {
	s := session.New(nil)

	var values []time.Duration
	for v := range s.WatchRest(context.Background(), time.Millisecond) {
		values = append(values, v)
	}
	assert.Equal(t, []time.Duration{0}, values)
}
