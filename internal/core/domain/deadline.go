package domain

import (
	"fmt"
	"math"
	"time"
)

// DeadlineSeverity classifies how urgent a project deadline is.
type DeadlineSeverity string

const (
	DeadlineOverdue DeadlineSeverity = "overdue"
	DeadlineWarning DeadlineSeverity = "warning"
	DeadlineNormal  DeadlineSeverity = "normal"
)

// warningWindowDays is the number of remaining days at or under which a
// deadline is flagged as a warning.
const warningWindowDays = 7

// DeadlineInfo is the derived urgency view of a project deadline.
type DeadlineInfo struct {
	Days     int              `json:"days"`
	Overdue  bool             `json:"overdue"`
	Severity DeadlineSeverity `json:"severity"`
	Message  string           `json:"message"`
}

// ClassifyDeadline computes the whole-day distance between now and deadline
// and maps it to a severity. Days is always reported as a magnitude; Overdue
// carries the sign.
func ClassifyDeadline(deadline, now time.Time) DeadlineInfo {
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))

	if days < 0 {
		overdueBy := -days
		return DeadlineInfo{
			Days:     overdueBy,
			Overdue:  true,
			Severity: DeadlineOverdue,
			Message:  fmt.Sprintf("%d days overdue", overdueBy),
		}
	}

	severity := DeadlineNormal
	if days <= warningWindowDays {
		severity = DeadlineWarning
	}
	return DeadlineInfo{
		Days:     days,
		Overdue:  false,
		Severity: severity,
		Message:  fmt.Sprintf("%d days remaining", days),
	}
}
