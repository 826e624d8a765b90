package models

import (
	"time"
)

// Default values assigned to a job at creation when the client omits them.
const (
	DefaultMatchScore      = 95
	DefaultRecruiterID     = "system"
	DefaultExperienceLevel = "Entry Level"
)

// Job defines a job posting. The ID is backend-specific: an ObjectID hex string
// in document mode, a short random token in relational mode.
type Job struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	Title           string     `json:"title" bson:"title"`
	Company         string     `json:"company" bson:"company"`
	Location        string     `json:"location" bson:"location"`
	Salary          string     `json:"salary" bson:"salary"` // Free text, e.g. "$120k - $150k"
	Type            string     `json:"type" bson:"type"`     // Free text, e.g. "Full-time"
	Description     string     `json:"description" bson:"description"`
	MatchScore      int        `json:"matchScore" bson:"matchScore"`
	RecruiterID     string     `json:"recruiterId" bson:"recruiterId"`
	SkillsRequired  []string   `json:"skillsRequired" bson:"skillsRequired"`
	ExperienceLevel string     `json:"experienceLevel" bson:"experienceLevel"`
	Benefits        string     `json:"benefits" bson:"benefits"`
	Deadline        *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	PostedAt        time.Time  `json:"postedAt" bson:"postedAt"` // Server-assigned at creation, immutable
}

// ApplyDefaults fills the server-side defaults for fields the client omitted.
// PostedAt is always overwritten by the server, never client-supplied.
func (j *Job) ApplyDefaults(now time.Time) {
	if j.MatchScore == 0 {
		j.MatchScore = DefaultMatchScore
	}
	if j.RecruiterID == "" {
		j.RecruiterID = DefaultRecruiterID
	}
	if j.ExperienceLevel == "" {
		j.ExperienceLevel = DefaultExperienceLevel
	}
	if j.SkillsRequired == nil {
		j.SkillsRequired = []string{}
	}
	j.PostedAt = now
}
