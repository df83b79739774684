package assessments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores sessions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Session)}
}

// Create stores the session under a freshly assigned monotonic id.
func (r *MemoryRepo) Create(ctx context.Context, session Session) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = r.nextID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	r.byID[session.ID] = session
	return session, nil
}

// GetByID returns a session by its id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// ListByOwner returns the owner's session summaries, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := []Summary{}
	for _, session := range r.byID {
		if session.OwnerID != ownerID || ownerID == "" {
			continue
		}
		summaries = append(summaries, Summary{
			ID:        session.ID,
			Score:     session.Score,
			Band:      session.Band,
			CreatedAt: session.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// ClaimGuest re-owns every session held by guestOwnerID.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestOwnerID, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if guestOwnerID == "" || ownerID == "" {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	moved := 0
	for id, session := range r.byID {
		if session.OwnerID != guestOwnerID {
			continue
		}
		session.OwnerID = ownerID
		r.byID[id] = session
		moved++
	}
	return moved, nil
}
