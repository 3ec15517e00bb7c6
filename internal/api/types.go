package api

import "time"

// User is the authenticated account, as returned by /me.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

// Organization is the tenant the user belongs to.
type Organization struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Plan      string `json:"plan"`
	SeatCount int    `json:"seat_count"`
}

// Case statuses as the backend reports them.
const (
	CaseStatusOpen     = "open"
	CaseStatusPending  = "pending"
	CaseStatusClosed   = "closed"
	CaseStatusArchived = "archived"
)

// Case is an investigation case.
type Case struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"` // display number, e.g. "2026-117"
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assigned_to"`
	OpenedAt   time.Time `json:"opened_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// BilledCents is the total billed against the case so far.
	BilledCents int64  `json:"billed_cents"`
	Currency    string `json:"currency"`
}

// CaseDraft is the editable working copy of a case: the value the editor
// feeds to the autosave coordinator. Fields compare structurally, so two
// drafts with the same content are the same draft.
type CaseDraft struct {
	CaseID  string   `json:"case_id"`
	Subject string   `json:"subject"`
	Status  string   `json:"status"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags,omitempty"`
}

// DraftFromCase seeds an editor draft from the persisted case.
func DraftFromCase(c Case) CaseDraft {
	return CaseDraft{
		CaseID:  c.ID,
		Subject: c.Subject,
		Status:  c.Status,
	}
}

// Invoice is one billing history entry.
type Invoice struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	IssuedAt    time.Time `json:"issued_at"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"` // open, paid, void
}
