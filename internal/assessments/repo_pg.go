package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"smarthealth-backend/internal/assessments/catalog"
	"smarthealth-backend/internal/assessments/riskengine"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new session and returns it with the assigned id.
func (r *PGRepo) Create(ctx context.Context, session Session) (Session, error) {
	const query = `
INSERT INTO risk_checks (owner_id, answers, score, risk_band, recommendations)
VALUES ($1, $2::jsonb, $3, $4, $5::jsonb)
RETURNING id, created_at`

	answersPayload, err := json.Marshal(session.Answers)
	if err != nil {
		return Session{}, err
	}
	recsPayload, err := json.Marshal(session.Recommendations)
	if err != nil {
		return Session{}, err
	}

	var owner any
	if session.OwnerID != "" {
		owner = session.OwnerID
	}

	err = r.DB.QueryRowContext(ctx, query,
		owner,
		answersPayload,
		session.Score,
		string(session.Band),
		recsPayload,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

// GetByID returns a session by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Session, error) {
	const query = `
SELECT id, owner_id, answers, score, risk_band, recommendations, created_at
FROM risk_checks
WHERE id = $1
LIMIT 1`

	var s Session
	var owner sql.NullString
	var answersPayload []byte
	var recsPayload []byte
	var band string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&owner,
		&answersPayload,
		&s.Score,
		&band,
		&recsPayload,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if owner.Valid {
		s.OwnerID = owner.String
	}
	s.Band = riskengine.Band(band)
	s.Answers = catalog.AnswerSet{}
	if err := json.Unmarshal(answersPayload, &s.Answers); err != nil {
		return Session{}, err
	}
	if len(recsPayload) > 0 {
		if err := json.Unmarshal(recsPayload, &s.Recommendations); err != nil {
			return Session{}, err
		}
	}
	return s, nil
}

// ListByOwner returns the owner's session summaries, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	const query = `
SELECT id, score, risk_band, created_at
FROM risk_checks
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC`

	if ownerID == "" {
		return []Summary{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		var band string
		if err := rows.Scan(&s.ID, &s.Score, &band, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Band = riskengine.Band(band)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ClaimGuest transfers guest-owned sessions to the authenticated owner.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestOwnerID, ownerID string) (int, error) {
	const query = `
UPDATE risk_checks
SET owner_id = $2
WHERE owner_id = $1`

	if guestOwnerID == "" || ownerID == "" {
		return 0, nil
	}
	res, err := r.DB.ExecContext(ctx, query, guestOwnerID, ownerID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
