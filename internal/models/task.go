package models

import "time"

const (
	StatusIncomplete = "incomplete"
	StatusComplete   = "complete"
)

const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Priority    int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ValidStatus(status string) bool {
	return status == StatusIncomplete || status == StatusComplete
}

func ValidPriority(priority int) bool {
	return priority >= PriorityLow && priority <= PriorityHigh
}
