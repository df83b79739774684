package assessments

import (
	"context"

	"smarthealth-backend/internal/assessments/catalog"
	"smarthealth-backend/internal/assessments/riskengine"
	"smarthealth-backend/internal/shared/metrics"
	"smarthealth-backend/internal/shared/telemetry"
)

// Service contains business logic for risk-check sessions.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Submit evaluates an answer set and persists the resulting session. A
// validation failure returns the riskengine error and persists nothing.
// ownerID may be empty for anonymous submissions.
func (s *Service) Submit(ctx context.Context, ownerID string, answers catalog.AnswerSet) (Session, error) {
	eval, err := riskengine.Evaluate(answers)
	if err != nil {
		metrics.IncRiskCheckRejected()
		return Session{}, err
	}

	session := Session{
		OwnerID:         ownerID,
		Answers:         answers,
		Score:           eval.Score,
		Band:            eval.Band,
		Recommendations: eval.Recommendations,
	}
	created, err := s.Repo.Create(ctx, session)
	if err != nil {
		telemetry.Error("risk_check.persist_failed", map[string]any{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
		return Session{}, err
	}

	metrics.IncRiskCheckSubmitted()
	metrics.IncRiskBand(string(created.Band))
	metrics.ObserveRiskScore(float64(created.Score))
	telemetry.Info("risk_check.created", map[string]any{
		"check_id":  created.ID,
		"owner_id":  ownerID,
		"score":     created.Score,
		"risk_band": string(created.Band),
	})
	return created, nil
}

// History returns the owner's session summaries, newest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]Summary, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Get returns the session with the given id if the caller owns it.
// A session owned by someone else reads as not found.
func (s *Service) Get(ctx context.Context, ownerID string, id int64) (Session, error) {
	session, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if session.OwnerID == "" || session.OwnerID != ownerID {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// ClaimGuest moves a guest's sessions to the authenticated owner.
func (s *Service) ClaimGuest(ctx context.Context, guestOwnerID, ownerID string) (int, error) {
	moved, err := s.Repo.ClaimGuest(ctx, guestOwnerID, ownerID)
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		telemetry.Info("risk_check.claimed", map[string]any{
			"guest_owner": guestOwnerID,
			"owner_id":    ownerID,
			"moved":       moved,
		})
	}
	return moved, nil
}

// AnswerDetails restates a session's answers in catalog order with the
// points each contributed to the score.
func AnswerDetails(answers catalog.AnswerSet) []AnswerDetail {
	applicable := catalog.Applicable(answers)
	details := make([]AnswerDetail, 0, len(applicable))
	for _, q := range applicable {
		answer := answers[q.ID]
		value := 0
		if q.Scored() && answer == q.RiskAnswer {
			value = q.Weight
		}
		details = append(details, AnswerDetail{
			QuestionID: q.ID,
			Question:   q.Prompt,
			Answer:     answer,
			Value:      value,
		})
	}
	return details
}
