package assessments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/shared/server/middleware"
)

func setupRiskCheckRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	handler := NewHandler(NewService(repo))

	router := gin.New()
	router.Use(middleware.Auth("test"))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func submitAnswers(t *testing.T, router *gin.Engine, answers map[string]any, identity func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("marshal answers: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk-checks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if identity != nil {
		identity(req)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func asGuest(id string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("X-Guest-Id", id)
	}
}

func highRiskFemaleBody() map[string]any {
	return map[string]any{
		"q_age":      float64(34),
		"q_sex":      "Female",
		"q_lump":     "Yes",
		"q_pain":     "No",
		"q_family":   "Yes",
		"q_bleeding": "Yes",
	}
}

func TestSubmitRiskCheckPersistsAndReturnsResult(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)

	resp := submitAnswers(t, router, highRiskFemaleBody(), asGuest("guest-1"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		CheckID         int64    `json:"checkId"`
		RiskLevel       string   `json:"riskLevel"`
		Score           int      `json:"score"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.RiskLevel != "HIGH" || created.Score != 60 {
		t.Fatalf("expected HIGH/60, got %s/%d", created.RiskLevel, created.Score)
	}
	if len(created.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}

	session, err := repo.GetByID(context.Background(), created.CheckID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session.OwnerID != "guest:guest-1" {
		t.Fatalf("expected guest owner, got %q", session.OwnerID)
	}
}

func TestSubmitRiskCheckAcceptsNumericStringAge(t *testing.T) {
	router, _ := setupRiskCheckRouter(t)

	body := highRiskFemaleBody()
	body["q_age"] = "34"
	resp := submitAnswers(t, router, body, asGuest("guest-1"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubmitRiskCheckValidationFailurePersistsNothing(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)

	body := highRiskFemaleBody()
	body["q_age"] = 9
	resp := submitAnswers(t, router, body, asGuest("guest-1"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
				Issue string `json:"issue"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", errResp.Error.Code)
	}
	if len(errResp.Error.Details) != 1 || errResp.Error.Details[0].Field != "q_age" {
		t.Fatalf("expected q_age detail, got %+v", errResp.Error.Details)
	}

	if list, _ := repo.ListByOwner(context.Background(), "guest:guest-1"); len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %d sessions", len(list))
	}
}

func TestSubmitRiskCheckWorksAnonymously(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)

	resp := submitAnswers(t, router, highRiskFemaleBody(), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		CheckID int64 `json:"checkId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	session, err := repo.GetByID(context.Background(), created.CheckID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session.OwnerID != "" {
		t.Fatalf("expected anonymous session, got owner %q", session.OwnerID)
	}
}

func TestListRiskChecksRequiresLogin(t *testing.T) {
	router, _ := setupRiskCheckRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	asGuest("guest-1")(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest, got %d", resp.Code)
	}
}

func TestListRiskChecksReturnsProgressNewestFirst(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)
	ownerID := "google:user-1"

	svc := NewService(repo)
	ctx := context.Background()
	first, err := svc.Submit(ctx, ownerID, answersFromBody(t, highRiskFemaleBody()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	lowBody := highRiskFemaleBody()
	lowBody["q_lump"] = "No"
	lowBody["q_family"] = "No"
	lowBody["q_bleeding"] = "No"
	second, err := svc.Submit(ctx, ownerID, answersFromBody(t, lowBody))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, ownerID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Progress []struct {
			ID    int64  `json:"id"`
			Risk  string `json:"risk"`
			Score int    `json:"score"`
		} `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Progress) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(payload.Progress))
	}
	if payload.Progress[0].ID != second.ID || payload.Progress[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", payload.Progress)
	}
	if payload.Progress[1].Risk != "HIGH" || payload.Progress[0].Risk != "LOW" {
		t.Fatalf("unexpected bands: %+v", payload.Progress)
	}
}

func TestGetRiskCheckHidesForeignSessions(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)

	svc := NewService(repo)
	session, err := svc.Submit(context.Background(), "google:owner", answersFromBody(t, highRiskFemaleBody()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks/"+itoa(session.ID), nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "google:stranger"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d", resp.Code)
	}
}

func TestGetRiskCheckReturnsAnswerBreakdown(t *testing.T) {
	router, repo := setupRiskCheckRouter(t)
	ownerID := "google:user-1"

	svc := NewService(repo)
	session, err := svc.Submit(context.Background(), ownerID, answersFromBody(t, highRiskFemaleBody()))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks/"+itoa(session.ID), nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, ownerID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var detail struct {
		Score   int    `json:"score"`
		Risk    string `json:"riskLevel"`
		Answers []struct {
			QuestionID string `json:"questionId"`
			Question   string `json:"question"`
			Answer     string `json:"answer"`
			Value      int    `json:"value"`
		} `json:"answers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Risk != "HIGH" || detail.Score != 60 {
		t.Fatalf("expected HIGH/60, got %s/%d", detail.Risk, detail.Score)
	}
	if len(detail.Answers) != 6 {
		t.Fatalf("expected 6 answers for female respondent, got %d", len(detail.Answers))
	}
	values := map[string]int{}
	for _, a := range detail.Answers {
		values[a.QuestionID] = a.Value
		if a.Question == "" {
			t.Fatalf("expected prompt text for %s", a.QuestionID)
		}
	}
	if values["q_lump"] != 25 || values["q_family"] != 20 || values["q_bleeding"] != 15 {
		t.Fatalf("unexpected contribution values: %v", values)
	}
	if values["q_pain"] != 0 || values["q_age"] != 0 {
		t.Fatalf("expected zero contributions for non-fired answers: %v", values)
	}
}

func TestListQuestionsExposesCatalog(t *testing.T) {
	router, _ := setupRiskCheckRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks/questions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without identity, got %d", resp.Code)
	}
	var payload struct {
		Questions []struct {
			ID        string   `json:"id"`
			Prompt    string   `json:"prompt"`
			Type      string   `json:"type"`
			Options   []string `json:"options"`
			AppliesTo string   `json:"appliesTo"`
		} `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Questions) != 7 {
		t.Fatalf("expected 7 questions, got %d", len(payload.Questions))
	}
	if payload.Questions[0].ID != "q_age" {
		t.Fatalf("expected q_age first, got %s", payload.Questions[0].ID)
	}
	for _, q := range payload.Questions {
		if q.ID == "q_bleeding" && q.AppliesTo != "Female" {
			t.Fatalf("expected q_bleeding gated to Female, got %q", q.AppliesTo)
		}
	}
}
