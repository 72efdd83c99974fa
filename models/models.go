// Package models defines data structures used across the application.
// File: models/models.go
package models

import "time"

// ----------------------- user model -----------------------

// User is a portal account, created on first successful login.
type User struct {
	ID    string `json:"id"`
	SRN   string `json:"srn"` // immutable external identifier
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Year  int    `json:"year"` // year of study, 1-4
	Role  Role   `json:"-"`
}

// ----------------------- domain model -----------------------

// Domain is a recruitment track students can apply to.
type Domain struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Venue        string  `json:"venue"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	WhatsAppLink *string `json:"whatsapp_link,omitempty"`
}

// ----------------------- application model -----------------------

// Status is the lifecycle state of an application.
type Status string

const (
	// StatusInterviewLeft means the student applied but has not been interviewed.
	StatusInterviewLeft Status = "interview_left"
	// StatusApplied means the interview is done and a decision is pending.
	StatusApplied Status = "applied"
	// StatusAccepted is a terminal coordinator decision.
	StatusAccepted Status = "accepted"
	// StatusRejected is a terminal coordinator decision.
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status is a final decision.
func (s Status) Terminal() bool { return s == StatusAccepted || s == StatusRejected }

// Application records one student's candidacy for one domain.
// (user_id, domain_id) pairs are unique, enforced by the database.
type Application struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	DomainID      string    `json:"domain_id"`
	Status        Status    `json:"status"`
	Score         *int      `json:"score"` // 1-10 once set
	InterviewDone bool      `json:"interview_done"`
	CreatedAt     time.Time `json:"created_at"`
}

// ----------------------- system settings -----------------------

// SystemSettings is the singleton freeze/publish state.
// Publishing implies freezing; there is no published-but-unfrozen state.
type SystemSettings struct {
	Frozen           bool      `json:"frozen"`
	ResultsPublished bool      `json:"results_published"`
	UpdatedAt        time.Time `json:"updated_at"`
}
