package riskengine

import "smarthealth-backend/internal/assessments/catalog"

const urgentActionMessage = "URGENT: Your score indicates high risk. Please schedule a professional consultation at a screening clinic as soon as possible."

var generalMessages = map[Band]string{
	BandLow:    "Your responses indicate low risk. Maintain routine screenings appropriate for your age and keep up healthy habits.",
	BandMedium: "Your responses indicate moderate risk. Consider booking a screening appointment and discussing your symptoms with a clinician.",
	BandHigh:   "Your responses indicate high risk. A clinical evaluation is strongly recommended to investigate the reported symptoms.",
}

// targetedMessages key factor-specific advice by the question that fired, so
// two people in the same band can receive different guidance.
var targetedMessages = map[string]string{
	"q_lump":        "An unexplained lump or swelling should be examined by a clinician; ask about imaging or a biopsy referral.",
	"q_pain":        "Persistent unexplained pain warrants a medical review to identify its cause.",
	"q_family":      "With a first-degree relative affected, ask your clinician about earlier or more frequent screening.",
	"q_bleeding":    "Unusual vaginal or post-menopausal bleeding should be evaluated; a Pap smear or pelvic exam may be advised.",
	"q_urine_issue": "Urinary difficulty or blood in urine merits a prostate health check, including a PSA test.",
}

// buildRecommendations assembles the advisory list: urgent message first for
// HIGH, then the band-general message, then one entry per fired risk factor
// in catalog order.
func buildRecommendations(band Band, fired []catalog.Question) []string {
	out := make([]string, 0, len(fired)+2)
	if band == BandHigh {
		out = append(out, urgentActionMessage)
	}
	out = append(out, generalMessages[band])
	for _, q := range fired {
		if msg, ok := targetedMessages[q.ID]; ok {
			out = append(out, msg)
		}
	}
	return out
}
