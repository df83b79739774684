package assessments

import (
	"context"
	"errors"
	"testing"

	"smarthealth-backend/internal/assessments/riskengine"
)

func TestServiceSubmitRejectsInvalidAnswers(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Submit(context.Background(), "guest:g1", answersFromBody(t, map[string]any{
		"q_age": float64(200),
		"q_sex": "Female",
	}))
	var verr *riskengine.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if list, _ := repo.ListByOwner(context.Background(), "guest:g1"); len(list) != 0 {
		t.Fatalf("expected nothing persisted after rejection")
	}
}

func TestServiceGetEnforcesOwnership(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	session, err := svc.Submit(ctx, "google:owner", answersFromBody(t, highRiskFemaleBody()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Get(ctx, "google:owner", session.ID); err != nil {
		t.Fatalf("owner should see their session: %v", err)
	}
	if _, err := svc.Get(ctx, "google:stranger", session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign caller, got %v", err)
	}
	if _, err := svc.Get(ctx, "google:owner", session.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestServiceClaimGuestMovesSessions(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(ctx, "guest:g1", answersFromBody(t, highRiskFemaleBody())); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := svc.Submit(ctx, "guest:other", answersFromBody(t, highRiskFemaleBody())); err != nil {
		t.Fatalf("submit: %v", err)
	}

	moved, err := svc.ClaimGuest(ctx, "guest:g1", "google:u1")
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 moved, got %d", moved)
	}

	claimed, err := svc.History(ctx, "google:u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("expected 2 claimed sessions, got %d", len(claimed))
	}
	remaining, err := svc.History(ctx, "guest:g1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected guest history emptied, got %d", len(remaining))
	}
	untouched, err := svc.History(ctx, "guest:other")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(untouched) != 1 {
		t.Fatalf("expected unrelated guest untouched, got %d", len(untouched))
	}
}
