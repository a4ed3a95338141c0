package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskStatsCacheWarm = "stats.cache.warm"

const TaskMonthlyAccountsReport = "accounts.monthly_report"

// StatsCacheWarmPayload lists the dashboard filters to precompute. Empty
// means all standard filters.
type StatsCacheWarmPayload struct {
	Filters []string `json:"filters,omitempty"`
}

// MonthlyAccountsReportPayload selects the month to report on. Zero values
// mean the previous calendar month.
type MonthlyAccountsReportPayload struct {
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

func NewStatsCacheWarmTask(payload StatsCacheWarmPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsCacheWarm, data), nil
}

func ParseStatsCacheWarmPayload(task *asynq.Task) (StatsCacheWarmPayload, error) {
	var payload StatsCacheWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return StatsCacheWarmPayload{}, err
	}
	return payload, nil
}

func NewMonthlyAccountsReportTask(payload MonthlyAccountsReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMonthlyAccountsReport, data), nil
}

func ParseMonthlyAccountsReportPayload(task *asynq.Task) (MonthlyAccountsReportPayload, error) {
	var payload MonthlyAccountsReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MonthlyAccountsReportPayload{}, err
	}
	return payload, nil
}
