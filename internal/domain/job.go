package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
)

type Job struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null"`
	Company     string    `json:"company" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Salary      *float64  `json:"salary,omitempty"`
	JobType     string    `json:"jobType" gorm:"not null"`
	PostedAt    time.Time `json:"postedAt" gorm:"not null;index"`
	UserID      uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
}

var validJobTypes = map[string]struct{}{
	JobTypeFullTime: {},
	JobTypePartTime: {},
	JobTypeContract: {},
}

func IsValidJobType(jobType string) bool {
	_, ok := validJobTypes[jobType]
	return ok
}
