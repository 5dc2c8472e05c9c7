package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one operator interaction so requests can be correlated
// in the logs. Nothing gates behavior on it.
type Session struct {
	ID         string
	EmployeeID string
	StartedAt  time.Time
}

func NewSession(employeeID string) Session {
	return Session{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		StartedAt:  time.Now(),
	}
}
