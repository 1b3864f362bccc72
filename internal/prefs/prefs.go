// ABOUTME: User preferences persisted in an embedded Badger key-value store.
// ABOUTME: Holds the weight unit, rest timer, and the active training program.
package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/gymtrack/internal/logger"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
)

const (
	keyUnit         = "unit"
	keyRestSeconds  = "rest_timer_seconds"
	keyRestDeadline = "rest_deadline"

	keyProgramID        = "program_id"
	keyProgramDay       = "program_day"
	keyProgramActivated = "program_activated_at"
)

var (
	// ErrInvalidRestDuration is returned for a non-positive rest period.
	ErrInvalidRestDuration = errors.New("rest timer must be positive")
	ErrNoActiveProgram     = errors.New("no active program")
	ErrInvalidProgram      = errors.New("invalid active program")
)

// ActiveProgram is the program being followed and the day that comes next.
type ActiveProgram struct {
	ProgramID   string
	DayIndex    int
	ActivatedAt time.Time
}

// Store is a handle to the preferences database.
type Store struct {
	db *badger.DB
}

// Open opens or creates the preferences database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(badgerLogger{}).
		WithNumVersionsToKeep(1)
	return open(opts)
}

// OpenInMemory opens a preferences database that is never written to disk.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{})
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Unit returns the display weight unit, kg by default.
func (s *Store) Unit() (models.WeightUnit, error) {
	v, ok, err := s.get(keyUnit)
	if err != nil || !ok {
		return models.UnitKg, err
	}
	u, err := models.ParseWeightUnit(v)
	if err != nil {
		logger.Warn("ignoring stored weight unit", "value", v)
		return models.UnitKg, nil
	}
	return u, nil
}

// SetUnit stores the display weight unit.
func (s *Store) SetUnit(u models.WeightUnit) error {
	return s.set(keyUnit, string(u))
}

// RestTimerDefault returns the default rest period.
func (s *Store) RestTimerDefault() (time.Duration, error) {
	v, ok, err := s.get(keyRestSeconds)
	if err != nil || !ok {
		return stats.DefaultRestDuration, err
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		logger.Warn("ignoring stored rest timer", "value", v)
		return stats.DefaultRestDuration, nil
	}
	return time.Duration(secs) * time.Second, nil
}

// SetRestTimerDefault stores the default rest period, rounded down to whole seconds.
func (s *Store) SetRestTimerDefault(d time.Duration) error {
	secs := int(d / time.Second)
	if secs <= 0 {
		return ErrInvalidRestDuration
	}
	return s.set(keyRestSeconds, strconv.Itoa(secs))
}

// RestDeadline returns the saved rest deadline, if any.
func (s *Store) RestDeadline() (time.Time, bool, error) {
	v, ok, err := s.get(keyRestDeadline)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		logger.Warn("ignoring stored rest deadline", "value", v)
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// SetRestDeadline saves the absolute end of the current rest period.
func (s *Store) SetRestDeadline(t time.Time) error {
	return s.set(keyRestDeadline, t.UTC().Format(time.RFC3339Nano))
}

// ClearRestDeadline removes any saved rest deadline.
func (s *Store) ClearRestDeadline() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyRestDeadline))
	})
}

// ActiveProgram returns the program being followed, if any.
func (s *Store) ActiveProgram() (ActiveProgram, bool, error) {
	var ap ActiveProgram
	var ok bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ap, ok, err = readActiveProgram(txn)
		return err
	})
	if err != nil {
		return ActiveProgram{}, false, fmt.Errorf("read active program: %w", err)
	}
	return ap, ok, nil
}

// SetActiveProgram replaces the active program.
func (s *Store) SetActiveProgram(ap ActiveProgram) error {
	if strings.TrimSpace(ap.ProgramID) == "" || ap.DayIndex < 0 {
		return ErrInvalidProgram
	}
	if ap.ActivatedAt.IsZero() {
		ap.ActivatedAt = time.Now()
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return writeActiveProgram(txn, ap)
	})
	if err != nil {
		return fmt.Errorf("write active program: %w", err)
	}
	return nil
}

// ClearActiveProgram stops following a program. Clearing when none is active
// is not an error.
func (s *Store) ClearActiveProgram() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, k := range []string{keyProgramID, keyProgramDay, keyProgramActivated} {
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear active program: %w", err)
	}
	return nil
}

// AdvanceProgramDay moves the active program to its next day, wrapping to the
// first day after the last. The read and write share one transaction.
func (s *Store) AdvanceProgramDay(dayCount int) (ActiveProgram, error) {
	if dayCount <= 0 {
		return ActiveProgram{}, ErrInvalidProgram
	}
	var ap ActiveProgram
	err := s.db.Update(func(txn *badger.Txn) error {
		cur, ok, err := readActiveProgram(txn)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoActiveProgram
		}
		cur.DayIndex = (cur.DayIndex + 1) % dayCount
		ap = cur
		return writeActiveProgram(txn, cur)
	})
	if errors.Is(err, ErrNoActiveProgram) {
		return ActiveProgram{}, err
	}
	if err != nil {
		return ActiveProgram{}, fmt.Errorf("advance program day: %w", err)
	}
	return ap, nil
}

func readActiveProgram(txn *badger.Txn) (ActiveProgram, bool, error) {
	id, ok, err := txnGet(txn, keyProgramID)
	if err != nil || !ok {
		return ActiveProgram{}, false, err
	}
	ap := ActiveProgram{ProgramID: id}

	if v, ok, err := txnGet(txn, keyProgramDay); err != nil {
		return ActiveProgram{}, false, err
	} else if ok {
		day, err := strconv.Atoi(v)
		if err != nil || day < 0 {
			logger.Warn("ignoring stored program day", "value", v)
			day = 0
		}
		ap.DayIndex = day
	}

	if v, ok, err := txnGet(txn, keyProgramActivated); err != nil {
		return ActiveProgram{}, false, err
	} else if ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			ap.ActivatedAt = t
		}
	}
	return ap, true, nil
}

func writeActiveProgram(txn *badger.Txn, ap ActiveProgram) error {
	entries := map[string]string{
		keyProgramID:        ap.ProgramID,
		keyProgramDay:       strconv.Itoa(ap.DayIndex),
		keyProgramActivated: ap.ActivatedAt.UTC().Format(time.RFC3339Nano),
	}
	for k, v := range entries {
		if err := txn.Set([]byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func txnGet(txn *badger.Txn, key string) (string, bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		return "", false, err
	}
	return string(v), true, nil
}

// All returns every stored preference as raw strings.
func (s *Store) All() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out[string(item.KeyCopy(nil))] = string(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return out, nil
}

func (s *Store) get(key string) (string, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Store) set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

// badgerLogger forwards Badger's internal logging to the application log.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error("badger: " + trim(format, args))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn("badger: " + trim(format, args))
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logger.Debug("badger: " + trim(format, args))
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Debug("badger: " + trim(format, args))
}

func trim(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
