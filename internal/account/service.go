package account

import (
	"context"
	"errors"
	"strings"

	"smarthealth-backend/internal/assessments"
)

type Service struct {
	Assessments *assessments.Service
}

type ClaimResult struct {
	MigratedRiskChecks int `json:"migratedRiskChecks"`
}

func NewService(assessmentSvc *assessments.Service) *Service {
	return &Service{Assessments: assessmentSvc}
}

// ClaimGuest moves a guest's risk-check history onto the authenticated
// account. Safe to call repeatedly; a second claim finds nothing to move.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}
	moved, err := s.Assessments.ClaimGuest(ctx, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedRiskChecks: moved}, nil
}
