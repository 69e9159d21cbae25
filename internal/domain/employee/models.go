package employee

import (
	"errors"
	"time"
)

const (
	StatusActive   = "active"
	StatusOnLeave  = "on-leave"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusOnLeave, StatusInactive}

var ErrNotFound = errors.New("employee not found")

type Employee struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Department     string    `json:"department"`
	Position       string    `json:"position"`
	EmployeeNumber string    `json:"employeeId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Patch enumerates the mutable fields. Absent fields leave the stored value
// untouched; unknown keys are rejected at decode time.
type Patch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	EmployeeNumber *string `json:"employeeId"`
	Status         *string `json:"status"`
}

func (p Patch) Apply(emp *Employee) {
	if p.FirstName != nil {
		emp.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		emp.LastName = *p.LastName
	}
	if p.Email != nil {
		emp.Email = *p.Email
	}
	if p.Phone != nil {
		emp.Phone = *p.Phone
	}
	if p.Department != nil {
		emp.Department = *p.Department
	}
	if p.Position != nil {
		emp.Position = *p.Position
	}
	if p.EmployeeNumber != nil {
		emp.EmployeeNumber = *p.EmployeeNumber
	}
	if p.Status != nil {
		emp.Status = *p.Status
	}
}

type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	OnLeave  int `json:"onLeave"`
	Inactive int `json:"inactive"`
}

// CountByStatus filters the full list in memory. Fine at this scale; the
// dataset is a single company's head count.
func CountByStatus(list []Employee) Stats {
	stats := Stats{Total: len(list)}
	for _, emp := range list {
		switch emp.Status {
		case StatusActive:
			stats.Active++
		case StatusOnLeave:
			stats.OnLeave++
		case StatusInactive:
			stats.Inactive++
		}
	}
	return stats
}
