package catalog

// Applicable filters the catalog to questions whose applicability predicate is
// satisfied by the answers collected so far, preserving catalog order. It is
// pure and cheap, so callers re-resolve after every new answer: sex-gated
// questions enter or leave the sequence once q_sex is known.
func Applicable(answers AnswerSet) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.AppliesTo != "" && q.AppliesTo != answers["q_sex"] {
			continue
		}
		out = append(out, q)
	}
	return out
}

// IsLast reports whether questionID is the final step of the resolved
// sequence for the given partial answers. The comparison is against the
// applicable sequence, never the full catalog length.
func IsLast(answers AnswerSet, questionID string) bool {
	applicable := Applicable(answers)
	if len(applicable) == 0 {
		return false
	}
	return applicable[len(applicable)-1].ID == questionID
}

// Position returns the 1-based position of questionID within the resolved
// sequence and the sequence length, for progress display. ok is false when
// the question is not currently applicable.
func Position(answers AnswerSet, questionID string) (pos, total int, ok bool) {
	applicable := Applicable(answers)
	for i, q := range applicable {
		if q.ID == questionID {
			return i + 1, len(applicable), true
		}
	}
	return 0, len(applicable), false
}
