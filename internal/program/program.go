// ABOUTME: Built-in training programs loaded from an embedded YAML library.
// ABOUTME: Starts the next day of the followed program as a pre-filled workout.
package program

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harperreed/gymtrack/internal/logger"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/prefs"
	"github.com/harperreed/gymtrack/internal/suggest"
	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var programsYAML []byte

var (
	ErrUnknownProgram = errors.New("unknown program")
	ErrNoMatches      = errors.New("none of the day's exercises are in the catalog")
)

// Trainer is a coach and the programs they wrote.
type Trainer struct {
	ID        string     `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Specialty string     `yaml:"specialty" json:"specialty"`
	Bio       string     `yaml:"bio" json:"bio"`
	Programs  []*Program `yaml:"programs" json:"programs"`
}

// Program is a fixed rotation of training days.
type Program struct {
	ID          string `yaml:"id" json:"id"`
	TrainerID   string `yaml:"-" json:"trainerId"`
	TrainerName string `yaml:"-" json:"trainerName"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	DaysPerWeek int    `yaml:"daysPerWeek" json:"daysPerWeek"`
	Days        []Day  `yaml:"days" json:"days"`
}

// Day is one session of a program.
type Day struct {
	Name      string                      `yaml:"dayName" json:"dayName"`
	SplitType string                      `yaml:"splitType" json:"splitType"`
	Exercises []suggest.SuggestedExercise `yaml:"exercises" json:"exercises"`
}

type library struct {
	Trainers []*Trainer `yaml:"trainers"`
}

var (
	loadOnce sync.Once
	trainers []*Trainer
	loadErr  error
)

// Trainers returns the built-in library. Callers must not modify it.
func Trainers() ([]*Trainer, error) {
	loadOnce.Do(func() {
		trainers, loadErr = parse(programsYAML)
	})
	return trainers, loadErr
}

func parse(data []byte) ([]*Trainer, error) {
	var lib library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse programs: %w", err)
	}

	seen := make(map[string]bool)
	for _, t := range lib.Trainers {
		for _, p := range t.Programs {
			if seen[p.ID] {
				return nil, fmt.Errorf("parse programs: duplicate program id %q", p.ID)
			}
			seen[p.ID] = true
			p.TrainerID, p.TrainerName = t.ID, t.Name
			if len(p.Days) == 0 {
				return nil, fmt.Errorf("parse programs: %s has no days", p.ID)
			}
			for i := range p.Days {
				w := p.Workout(i)
				if err := w.Validate(); err != nil {
					return nil, fmt.Errorf("parse programs: %s day %d: %w", p.ID, i+1, err)
				}
			}
		}
	}
	return lib.Trainers, nil
}

// Programs returns every program in library order.
func Programs() ([]*Program, error) {
	ts, err := Trainers()
	if err != nil {
		return nil, err
	}
	var out []*Program
	for _, t := range ts {
		out = append(out, t.Programs...)
	}
	return out, nil
}

// Find returns the program with the given ID, ignoring case.
func Find(id string) (*Program, error) {
	ps, err := Programs()
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	for _, p := range ps {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, id)
}

// Day returns a day by index, wrapping past the end.
func (p *Program) Day(index int) Day {
	return p.Days[p.wrap(index)]
}

// DayLabel names a day with its position, e.g. "Pull Day (day 2 of 3)".
func (p *Program) DayLabel(index int) string {
	i := p.wrap(index)
	return fmt.Sprintf("%s (day %d of %d)", p.Days[i].Name, i+1, len(p.Days))
}

func (p *Program) wrap(index int) int {
	n := len(p.Days)
	return ((index % n) + n) % n
}

// Workout returns a day as a suggestion ready for matching against the catalog.
func (p *Program) Workout(index int) suggest.SuggestedWorkout {
	d := p.Day(index)
	return suggest.SuggestedWorkout{
		Name:      p.Name + ": " + d.Name,
		Reasoning: p.Description,
		Exercises: d.Exercises,
	}
}

// State persists which program is followed and its next day.
type State interface {
	ActiveProgram() (prefs.ActiveProgram, bool, error)
	SetActiveProgram(ap prefs.ActiveProgram) error
	AdvanceProgramDay(dayCount int) (prefs.ActiveProgram, error)
}

// Catalog lists the exercises a day's names are matched against.
type Catalog interface {
	ListExercises(ctx context.Context) ([]*models.Exercise, error)
}

// Starter begins a pre-filled workout.
type Starter interface {
	StartWithExercises(ctx context.Context, name string, plan []models.PlannedExercise) (*models.Workout, error)
}

// Started reports a program day that became the active workout.
type Started struct {
	Program   *Program
	DayIndex  int
	Workout   *models.Workout
	Unmatched []string
	NextDay   int
}

// Current returns the followed program and its next day.
func Current(state State) (*Program, int, error) {
	ap, ok, err := state.ActiveProgram()
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, prefs.ErrNoActiveProgram
	}
	p, err := Find(ap.ProgramID)
	if err != nil {
		return nil, 0, err
	}
	return p, p.wrap(ap.DayIndex), nil
}

// Follow makes id the followed program, starting from its first day.
func Follow(state State, id string) (*Program, error) {
	p, err := Find(id)
	if err != nil {
		return nil, err
	}
	if err := state.SetActiveProgram(prefs.ActiveProgram{ProgramID: p.ID}); err != nil {
		return nil, err
	}
	logger.Debug("program followed", "program", p.ID)
	return p, nil
}

// StartNext starts the followed program's next day as a workout and moves the
// program on to the day after. The day only advances once the workout exists.
func StartNext(ctx context.Context, state State, catalog Catalog, starter Starter) (*Started, error) {
	p, idx, err := Current(state)
	if err != nil {
		return nil, err
	}

	exercises, err := catalog.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	day := p.Workout(idx)
	match := suggest.Match(day.Exercises, exercises)
	if len(match.Matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatches, strings.Join(match.Unmatched, ", "))
	}

	w, err := starter.StartWithExercises(ctx, day.Name, match.Plan())
	if err != nil {
		return nil, err
	}

	ap, err := state.AdvanceProgramDay(len(p.Days))
	if err != nil {
		return nil, fmt.Errorf("workout started but program day not advanced: %w", err)
	}
	logger.Debug("program day started", "program", p.ID, "day", idx+1, "workout_id", w.ID)

	return &Started{
		Program:   p,
		DayIndex:  idx,
		Workout:   w,
		Unmatched: match.Unmatched,
		NextDay:   ap.DayIndex,
	}, nil
}

// Skip moves the followed program to its next day without a workout.
func Skip(state State) (*Program, int, error) {
	p, _, err := Current(state)
	if err != nil {
		return nil, 0, err
	}
	ap, err := state.AdvanceProgramDay(len(p.Days))
	if err != nil {
		return nil, 0, err
	}
	return p, ap.DayIndex, nil
}
