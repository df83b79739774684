package assessments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/assessments/catalog"
	"smarthealth-backend/internal/assessments/riskengine"
	"smarthealth-backend/internal/shared/server/middleware"
	"smarthealth-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the assessments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches risk-check routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/risk-checks", h.submitRiskCheck)
	rg.GET("/risk-checks", h.listRiskChecks)
	rg.GET("/risk-checks/questions", h.listQuestions)
	rg.GET("/risk-checks/:id", h.getRiskCheck)
}

func (h *Handler) submitRiskCheck(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be a JSON object of answers", nil)
		return
	}

	answers, err := normalizeAnswers(body)
	if err != nil {
		var verr *riskengine.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid submission", []map[string]string{
				{"field": verr.Field, "issue": verr.Issue},
			})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid submission", nil)
		return
	}

	ownerID := middleware.UserIDFromContext(c)
	session, err := h.Svc.Submit(c.Request.Context(), ownerID, answers)
	if err != nil {
		var verr *riskengine.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid submission", []map[string]string{
				{"field": verr.Field, "issue": verr.Issue},
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to save risk check", nil)
		return
	}

	c.Set("sessionId", session.ID)
	c.Set("riskBand", string(session.Band))

	respond.JSON(c, http.StatusCreated, gin.H{
		"checkId":         session.ID,
		"riskLevel":       session.Band,
		"score":           session.Score,
		"recommendations": session.Recommendations,
	})
}

func (h *Handler) listRiskChecks(c *gin.Context) {
	ownerID, ok := requireLogin(c)
	if !ok {
		return
	}

	summaries, err := h.Svc.History(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to list risk checks", nil)
		return
	}

	progress := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		progress = append(progress, gin.H{
			"id":    s.ID,
			"date":  s.CreatedAt,
			"risk":  s.Band,
			"score": s.Score,
		})
	}
	respond.JSON(c, http.StatusOK, gin.H{"progress": progress})
}

func (h *Handler) getRiskCheck(c *gin.Context) {
	ownerID, ok := requireLogin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "check id must be numeric", nil)
		return
	}

	session, err := h.Svc.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "risk check not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to fetch risk check", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"id":              session.ID,
		"score":           session.Score,
		"riskLevel":       session.Band,
		"recommendations": session.Recommendations,
		"answers":         AnswerDetails(session.Answers),
		"createdAt":       session.CreatedAt,
	})
}

func (h *Handler) listQuestions(c *gin.Context) {
	questions := catalog.All()
	resp := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		item := gin.H{
			"id":     q.ID,
			"prompt": q.Prompt,
			"type":   q.Type,
		}
		if len(q.Options) > 0 {
			item["options"] = q.Options
		}
		if q.Type == catalog.TypeInteger {
			item["min"] = q.Min
			item["max"] = q.Max
		}
		if q.AppliesTo != "" {
			item["appliesTo"] = q.AppliesTo
		}
		resp = append(resp, item)
	}
	respond.JSON(c, http.StatusOK, gin.H{"questions": resp})
}

// requireLogin rejects anonymous and guest callers. History endpoints only
// make sense for a durable identity.
func requireLogin(c *gin.Context) (string, bool) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" || middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return "", false
	}
	return ownerID, true
}

// normalizeAnswers coerces a decoded JSON object into an answer set. Ages
// arrive as numbers from the interactive flow and as strings elsewhere.
func normalizeAnswers(body map[string]any) (catalog.AnswerSet, error) {
	answers := catalog.AnswerSet{}
	for key, raw := range body {
		switch v := raw.(type) {
		case string:
			answers[key] = v
		case float64:
			if v != float64(int64(v)) {
				return nil, &riskengine.ValidationError{Field: key, Issue: "must be a whole number"}
			}
			answers[key] = strconv.FormatInt(int64(v), 10)
		default:
			return nil, &riskengine.ValidationError{Field: key, Issue: "must be a string or number"}
		}
	}
	return answers, nil
}
