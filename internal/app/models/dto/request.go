package dto

import (
	"time"
)

// UpdateJobRequest carries the replacement fields for PUT /api/jobs/:id.
// Pointer fields distinguish "omitted" from "set to zero value": document mode
// replaces only the fields present in the payload, relational mode always
// rewrites its fixed column set.
type UpdateJobRequest struct {
	Title           *string    `json:"title"`
	Company         *string    `json:"company"`
	Location        *string    `json:"location"`
	Salary          *string    `json:"salary"`
	Type            *string    `json:"type"`
	Description     *string    `json:"description"`
	MatchScore      *int       `json:"matchScore"`
	RecruiterID     *string    `json:"recruiterId"`
	SkillsRequired  *[]string  `json:"skillsRequired"`
	ExperienceLevel *string    `json:"experienceLevel"`
	Benefits        *string    `json:"benefits"`
	Deadline        *time.Time `json:"deadline"`
}

// UpdateUserRequest carries the replacement fields for PUT /api/users/:uid.
// Relational mode only ever applies Name and Bio; document mode replaces every
// field present in the payload. The narrower relational contract is
// intentional and kept as-is.
type UpdateUserRequest struct {
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Role            *string   `json:"role"`
	CollegeID       *string   `json:"collegeId"`
	Skills          *[]string `json:"skills"`
	ProfileStrength *int      `json:"profileStrength"`
	Bio             *string   `json:"bio"`
}

// ApplyRequest identifies the applying user for POST /api/jobs/:id/apply.
type ApplyRequest struct {
	UID string `json:"uid"`
}
