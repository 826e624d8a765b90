package models

import (
	"time"
)

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCollege   Role = "college"
	RoleRecruiter Role = "recruiter"
)

// StatusApplied is the status every application carries at creation. There is
// no defined transition table beyond it.
const StatusApplied = "Applied"

// User defines a platform user. UID is issued by the external identity
// provider; email must be unique in document mode.
type User struct {
	UID             string        `json:"uid" bson:"uid"`
	Name            string        `json:"name" bson:"name"`
	Email           string        `json:"email" bson:"email"`
	Role            Role          `json:"role" bson:"role"`
	CollegeID       string        `json:"collegeId,omitempty" bson:"collegeId,omitempty"` // Set only for students affiliated with a college
	Skills          []string      `json:"skills" bson:"skills"`
	ProfileStrength int           `json:"profileStrength" bson:"profileStrength"` // 0-100
	Bio             string        `json:"bio" bson:"bio"`
	Applications    []Application `json:"applications" bson:"applications"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"` // Server-assigned at creation
}

// Application records a single apply action against a job. Applications are
// append-only: never updated or deleted through the API, and a user may apply
// to the same job more than once.
type Application struct {
	JobID     string    `json:"jobId" bson:"jobId"`
	Status    string    `json:"status" bson:"status"`
	AppliedAt time.Time `json:"appliedAt" bson:"appliedAt"`
}
