package domain

import "time"

// InvitationStatus is one entry of an invitation's status history.
type InvitationStatus string

const (
	InvitationPending InvitationStatus = "PENDING"
	InvitationClosed  InvitationStatus = "CLOSED"
)

// Invitation records that InviterID proposed Email join. Statuses is the
// full history, most recent last; it is never empty.
type Invitation struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	InviterID string             `json:"inviter_id"`
	DateSent  time.Time          `json:"date_sent"`
	Statuses  []InvitationStatus `json:"statuses"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Status returns the current status.
func (i Invitation) Status() InvitationStatus {
	if len(i.Statuses) == 0 {
		return InvitationPending
	}
	return i.Statuses[len(i.Statuses)-1]
}

// IsOpen reports whether the invitation still blocks a re-invite.
func (i Invitation) IsOpen() bool { return i.Status() == InvitationPending }

// Close appends CLOSED unless already closed.
func (i *Invitation) Close() {
	if i.Status() != InvitationClosed {
		i.Statuses = append(i.Statuses, InvitationClosed)
	}
}
