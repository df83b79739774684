package riskengine

import "fmt"

// Band is the discrete risk category for a computed score.
type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// Contribution records how a single answer affected the score.
type Contribution struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Points     int    `json:"points"`
}

// Evaluation is the immutable result of scoring one complete answer set.
type Evaluation struct {
	Score           int            `json:"score"`
	Band            Band           `json:"riskBand"`
	Recommendations []string       `json:"recommendations"`
	Contributions   []Contribution `json:"contributions"`
}

// ValidationError reports a malformed or incomplete submission. The caller
// can resubmit corrected input; nothing is persisted.
type ValidationError struct {
	Field string
	Issue string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s %s", e.Field, e.Issue)
}

func invalid(field, issue string) *ValidationError {
	return &ValidationError{Field: field, Issue: issue}
}
