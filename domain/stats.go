package domain

import "math"

// Stats aggregates the dashboard counters.
type Stats struct {
	Total          int `json:"total" yaml:"total"`
	Completed      int `json:"completed" yaml:"completed"`
	Pending        int `json:"pending" yaml:"pending"`
	CompletionRate int `json:"completion_rate" yaml:"completion_rate"`
}

// ComputeStats counts tasks by status. CompletionRate is a rounded percentage.
func ComputeStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
