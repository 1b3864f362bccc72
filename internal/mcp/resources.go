// ABOUTME: MCP resource implementations for gymtrack.
// ABOUTME: Provides gymtrack://week, gymtrack://records, and gymtrack://active resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	weekURI    = "gymtrack://week"
	recordsURI = "gymtrack://records"
	activeURI  = "gymtrack://active"
)

func (s *Server) registerResources() {
	// gymtrack://week - Training since Monday
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weekURI,
		Name:        "This Week",
		Description: "Workouts, volume, and muscle groups trained since Monday",
		MIMEType:    "application/json",
	}, s.handleWeekResource)

	// gymtrack://records - Latest personal records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recordsURI,
		Name:        "Personal Records",
		Description: "The 20 most recent personal records and the all-time count",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// gymtrack://active - The workout in progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         activeURI,
		Name:        "Active Workout",
		Description: "The workout in progress with its sets and rest timer",
		MIMEType:    "application/json",
	}, s.handleActiveResource)
}

type weekSummary struct {
	WeekStart       time.Time                  `json:"week_start"`
	WorkoutCount    int                        `json:"workout_count"`
	Volume          float64                    `json:"volume"`
	VolumeDisplay   string                     `json:"volume_display"`
	MuscleFrequency map[models.MuscleGroup]int `json:"muscle_frequency"`
	Workouts        []workoutListItem          `json:"workouts"`
}

// Resource handlers

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.WorkoutsThisWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	volume, err := s.repo.TotalVolumeThisWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute volume: %w", err)
	}
	weekStart := stats.StartOfWeek(s.now())
	freq, err := s.repo.MuscleGroupFrequency(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count muscle groups: %w", err)
	}

	result := weekSummary{
		WeekStart:       weekStart,
		WorkoutCount:    len(workouts),
		Volume:          volume,
		VolumeDisplay:   stats.FormatVolume(volume, s.unit),
		MuscleFrequency: freq,
		Workouts:        []workoutListItem{},
	}
	for _, w := range workouts {
		result.Workouts = append(result.Workouts, workoutListItem{
			ID:        w.ID.String(),
			Name:      w.DisplayName(),
			StartedAt: w.StartedAt,
			Duration:  stats.FormatDuration(w.DurationSeconds),
		})
	}

	return jsonResource(weekURI, result)
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.RecentPersonalRecords(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal records: %w", err)
	}
	total, err := s.repo.PersonalRecordCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count personal records: %w", err)
	}
	if records == nil {
		records = []*models.PersonalRecord{}
	}

	return jsonResource(recordsURI, map[string]interface{}{
		"total":   total,
		"records": records,
	})
}

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	w := s.session.Active()
	if w == nil {
		return jsonResource(activeURI, map[string]interface{}{"active": false})
	}
	return jsonResource(activeURI, s.activeOutput(w))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
