package profile

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the single current-user row, enforced one-row at the schema
// level by a unique singleton marker.
type Profile struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	ZipCode    string    `json:"zipCode"`
	Country    string    `json:"country"`
	PhotoURL   string    `json:"photoUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Patch enumerates the mutable profile fields; unknown keys are rejected at
// decode time. PhotoURL changes only through the upload endpoint.
type Patch struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	ZipCode    *string `json:"zipCode"`
	Country    *string `json:"country"`
}

func (p Patch) Apply(prof *Profile) {
	if p.FirstName != nil {
		prof.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		prof.LastName = *p.LastName
	}
	if p.Email != nil {
		prof.Email = *p.Email
	}
	if p.Phone != nil {
		prof.Phone = *p.Phone
	}
	if p.Department != nil {
		prof.Department = *p.Department
	}
	if p.Position != nil {
		prof.Position = *p.Position
	}
	if p.Address != nil {
		prof.Address = *p.Address
	}
	if p.City != nil {
		prof.City = *p.City
	}
	if p.State != nil {
		prof.State = *p.State
	}
	if p.ZipCode != nil {
		prof.ZipCode = *p.ZipCode
	}
	if p.Country != nil {
		prof.Country = *p.Country
	}
}
