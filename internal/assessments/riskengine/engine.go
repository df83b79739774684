// Package riskengine converts a complete answer set into a score, a risk
// band, and recommendations. Evaluation is deterministic and pure; the weight
// and threshold table lives in the catalog package.
package riskengine

import (
	"fmt"

	"smarthealth-backend/internal/assessments/catalog"
)

// Evaluate validates a complete answer set and computes its evaluation.
// The answer set must contain exactly one entry per applicable question:
// missing applicable answers, answers for filtered-out questions, and
// unrecognized option values are all rejected before any scoring happens.
func Evaluate(answers catalog.AnswerSet) (Evaluation, error) {
	if err := validateDemographics(answers); err != nil {
		return Evaluation{}, err
	}

	applicable := catalog.Applicable(answers)

	applicableIDs := make(map[string]bool, len(applicable))
	for _, q := range applicable {
		applicableIDs[q.ID] = true
	}
	for id := range answers {
		if _, known := catalog.ByID(id); !known {
			return Evaluation{}, invalid(id, "is not a known question")
		}
		if !applicableIDs[id] {
			return Evaluation{}, invalid(id, "does not apply to this respondent")
		}
	}

	score := 0
	contributions := make([]Contribution, 0, len(applicable))
	var fired []catalog.Question
	for _, q := range applicable {
		raw, ok := answers[q.ID]
		if !ok || raw == "" {
			return Evaluation{}, invalid(q.ID, "is required")
		}
		if q.Type == catalog.TypeChoice && !q.HasOption(raw) {
			return Evaluation{}, invalid(q.ID, fmt.Sprintf("must be one of %v", q.Options))
		}

		points := 0
		if q.Scored() && raw == q.RiskAnswer {
			points = q.Weight
			fired = append(fired, q)
		}
		score += points
		contributions = append(contributions, Contribution{
			QuestionID: q.ID,
			Answer:     raw,
			Points:     points,
		})
	}

	band := bandFor(score)
	return Evaluation{
		Score:           score,
		Band:            band,
		Recommendations: buildRecommendations(band, fired),
		Contributions:   contributions,
	}, nil
}

func validateDemographics(answers catalog.AnswerSet) error {
	age, ok := answers.Int("q_age")
	if !ok {
		if _, present := answers["q_age"]; !present {
			return invalid("q_age", "is required")
		}
		return invalid("q_age", "must be a whole number")
	}
	ageQ, _ := catalog.ByID("q_age")
	if age < ageQ.Min || age > ageQ.Max {
		return invalid("q_age", fmt.Sprintf("must be between %d and %d", ageQ.Min, ageQ.Max))
	}

	sex, present := answers["q_sex"]
	if !present || sex == "" {
		return invalid("q_sex", "is required")
	}
	sexQ, _ := catalog.ByID("q_sex")
	if !sexQ.HasOption(sex) {
		return invalid("q_sex", fmt.Sprintf("must be one of %v", sexQ.Options))
	}
	return nil
}

// bandFor maps a score to a band, evaluated low to high with the lower bound
// of each higher band closed.
func bandFor(score int) Band {
	switch {
	case score < catalog.MediumThreshold:
		return BandLow
	case score < catalog.HighThreshold:
		return BandMedium
	default:
		return BandHigh
	}
}
