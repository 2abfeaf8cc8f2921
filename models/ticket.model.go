package models

import (
	"time"

	"gorm.io/gorm"
)

// Ticket status values. Transitions are explicit staff actions only; there are
// no automatic transitions.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketWaiting    = "waiting"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Ticket priority values. Priority is freely settable by staff at any time.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Ticket is a helpdesk ticket. Either UserID is set (registered owner) or the
// Guest* fields are: guest tickets are addressable only through AccessToken,
// which is mailed to the submitter and never tied to a session.
type Ticket struct {
	gorm.Model
	Subject  string `gorm:"not null"`
	Category string `gorm:"default:'general'"`
	Priority string `gorm:"default:'normal'"`
	Status   string `gorm:"default:'open'"`

	UserID      *uint  `json:"userId"`
	GuestEmail  string `gorm:"index;default:''"`
	GuestName   string `gorm:"default:''"`
	AccessToken string `gorm:"index;default:''" json:"-"`

	ClosedAt *time.Time `json:"closedAt"`

	Messages []TicketMessage `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

// AcceptsMessages is the reply guard: resolved and closed tickets reject new
// messages until staff reopens them.
func (t *Ticket) AcceptsMessages() bool {
	return t.Status != TicketResolved && t.Status != TicketClosed
}

// IsGuest reports whether the ticket was created without an account.
func (t *Ticket) IsGuest() bool {
	return t.UserID == nil
}

// TicketMessage is append-only; conversation order is CreatedAt order.
type TicketMessage struct {
	gorm.Model
	TicketID     uint   `gorm:"index;not null"`
	AuthorID     *uint  `json:"authorId"`
	GuestName    string `gorm:"default:''"`
	Message      string `gorm:"type:text;not null"`
	IsStaffReply bool   `gorm:"default:false"`
}

func ValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketWaiting, TicketResolved, TicketClosed:
		return true
	}
	return false
}

func ValidTicketPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
