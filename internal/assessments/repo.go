package assessments

import "context"

// Repo defines persistence operations for risk-check sessions.
type Repo interface {
	// Create inserts the session and returns it with the ledger-assigned
	// id and creation time.
	Create(ctx context.Context, session Session) (Session, error)
	GetByID(ctx context.Context, id int64) (Session, error)
	// ListByOwner returns the owner's sessions, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
	// ClaimGuest transfers every session owned by guestOwnerID to ownerID
	// and reports how many moved.
	ClaimGuest(ctx context.Context, guestOwnerID, ownerID string) (int, error)
}
