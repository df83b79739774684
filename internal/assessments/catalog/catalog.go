// Package catalog defines the risk questionnaire as data: every assessable
// question, its applicability, and the weight/threshold table shared by the
// interactive flow and the scoring engine.
package catalog

import "strconv"

// AnswerType discriminates how a question is answered.
type AnswerType string

const (
	TypeInteger AnswerType = "integer"
	TypeChoice  AnswerType = "choice"
)

// Sex option values for q_sex.
const (
	SexFemale = "Female"
	SexMale   = "Male"
)

// Banding thresholds. Scores below MediumThreshold band LOW, scores in
// [MediumThreshold, HighThreshold) band MEDIUM, scores at or above
// HighThreshold band HIGH.
const (
	MediumThreshold = 25
	HighThreshold   = 45
)

// Question is one immutable catalog entry.
type Question struct {
	ID         string     `json:"id"`
	Prompt     string     `json:"prompt"`
	Type       AnswerType `json:"type"`
	Options    []string   `json:"options,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`
	AppliesTo  string     `json:"appliesTo,omitempty"` // empty = everyone; otherwise required q_sex value
	Weight     int        `json:"weight,omitempty"`    // 0 = non-scored
	RiskAnswer string     `json:"riskAnswer,omitempty"`
}

// Scored reports whether the question contributes to the risk score.
func (q Question) Scored() bool {
	return q.Weight > 0
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// AnswerSet maps question ids to raw answers. Integer answers are kept in
// their submitted string form and parsed on demand.
type AnswerSet map[string]string

// Int parses the answer for id as an integer.
func (a AnswerSet) Int(id string) (int, bool) {
	raw, ok := a[id]
	if !ok {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}

var yesNo = []string{"No", "Yes"}

// questions is the authoritative catalog, in presentation order. q_sex comes
// before every sex-gated question so applicability never looks ahead.
var questions = []Question{
	{
		ID:     "q_age",
		Prompt: "What is your age?",
		Type:   TypeInteger,
		Min:    10,
		Max:    100,
	},
	{
		ID:      "q_sex",
		Prompt:  "What is your biological sex?",
		Type:    TypeChoice,
		Options: []string{SexFemale, SexMale},
	},
	{
		ID:         "q_lump",
		Prompt:     "Have you noticed any unexplained lump, swelling, or mass anywhere on your body?",
		Type:       TypeChoice,
		Options:    yesNo,
		Weight:     25,
		RiskAnswer: "Yes",
	},
	{
		ID:         "q_pain",
		Prompt:     "Do you have unexplained persistent pain in one area (e.g., chest, abdomen, back)?",
		Type:       TypeChoice,
		Options:    yesNo,
		Weight:     10,
		RiskAnswer: "Yes",
	},
	{
		ID:         "q_family",
		Prompt:     "Do you have a first-degree relative (parent, sibling, child) who has had cancer?",
		Type:       TypeChoice,
		Options:    yesNo,
		Weight:     20,
		RiskAnswer: "Yes",
	},
	{
		ID:         "q_bleeding",
		Prompt:     "Have you experienced unusual vaginal bleeding or post-menopausal bleeding?",
		Type:       TypeChoice,
		Options:    yesNo,
		AppliesTo:  SexFemale,
		Weight:     15,
		RiskAnswer: "Yes",
	},
	{
		ID:         "q_urine_issue",
		Prompt:     "Have you had difficulty passing urine or noticed blood in your urine?",
		Type:       TypeChoice,
		Options:    yesNo,
		AppliesTo:  SexMale,
		Weight:     10,
		RiskAnswer: "Yes",
	},
}

var questionsByID = func() map[string]Question {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID
}()

// All returns the full catalog in order.
func All() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// ByID returns the catalog entry for id.
func ByID(id string) (Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}
