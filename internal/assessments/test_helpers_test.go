package assessments

import (
	"strconv"
	"testing"

	"smarthealth-backend/internal/assessments/catalog"
	"smarthealth-backend/internal/shared/auth"
)

func signTestToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Email: sub + "@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func answersFromBody(t *testing.T, body map[string]any) catalog.AnswerSet {
	t.Helper()
	answers, err := normalizeAnswers(body)
	if err != nil {
		t.Fatalf("normalize answers: %v", err)
	}
	return answers
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
