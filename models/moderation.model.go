package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report triage states. Once triaged a report is terminal; no further
// transitions are modeled.
const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportDismissed = "dismissed"
	ReportActioned  = "actioned"
)

// Report is a user-filed complaint about a resource (post, reply, user).
type Report struct {
	gorm.Model
	ReporterID   uint   `gorm:"index;not null"`
	ResourceType string `gorm:"not null"` // forum_post, forum_reply, user
	ResourceID   uint   `gorm:"not null"`
	Reason       string `gorm:"type:text;not null"`
	Status       string `gorm:"default:'pending'"`
	HandledBy    *uint  `json:"handledBy"`
}

// Triaged reports never transition again.
func (r *Report) IsTerminal() bool { return r.Status != ReportPending }

func ValidReportOutcome(s string) bool {
	switch s {
	case ReportReviewed, ReportDismissed, ReportActioned:
		return true
	}
	return false
}

// AuditLogEntry is an append-only record of admin/moderator actions.
type AuditLogEntry struct {
	gorm.Model
	ActorID      uint           `gorm:"index;not null"`
	Action       string         `gorm:"index;not null"` // e.g. user.ban, post.lock
	ResourceType string         `gorm:"default:''"`
	ResourceID   uint           `gorm:"default:0"`
	Details      datatypes.JSON `json:"details"`
}
