package assessments

import (
	"time"

	"smarthealth-backend/internal/assessments/catalog"
	"smarthealth-backend/internal/assessments/riskengine"
)

// Session is one completed risk check. Sessions are append-only: answers,
// score and band never change after creation; only ownership can move when a
// guest claims their history after login.
type Session struct {
	ID              int64             `json:"id"`
	OwnerID         string            `json:"ownerId,omitempty"`
	Answers         catalog.AnswerSet `json:"answers"`
	Score           int               `json:"score"`
	Band            riskengine.Band   `json:"riskBand"`
	Recommendations []string          `json:"recommendations"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Summary is the history-list projection of a session.
type Summary struct {
	ID        int64           `json:"id"`
	Score     int             `json:"score"`
	Band      riskengine.Band `json:"riskBand"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AnswerDetail restates one answer for the session detail view, with the
// points it contributed to the total score.
type AnswerDetail struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Value      int    `json:"value"`
}
