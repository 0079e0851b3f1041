// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DistanceUnitImperial and DistanceUnitMetric are the accepted values for a
// user's distance display preference.
const (
	DistanceUnitImperial = "imperial"
	DistanceUnitMetric   = "metric"
)

// User represents a marketplace account.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FirstName    string     `gorm:"not null" json:"first_name"`
	LastName     string     `gorm:"not null" json:"last_name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	DistanceUnit string     `gorm:"not null;default:imperial" json:"distance_unit"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Items        []Item     `gorm:"foreignKey:UserID" json:"items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
