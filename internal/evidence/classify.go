package evidence

import (
	"strings"

	"triangulate/internal/model"
)

// Typer classifies raw chunk text into an attribute-specific evidence
// type with its quality rank (lower = stronger). Pure and stateless;
// ties in rank are intentional.
type Typer func(text string) (model.EvidenceType, int)

// BirthType classifies evidence about a birth year.
// Ranking: born-field(0) > born-narrative(1) > other(2) > category(3).
// Category mentions are often weaker than explicit narrative for a date
// of birth, hence the demotion below "other".
func BirthType(text string) (model.EvidenceType, int) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "date of birth") || strings.Contains(t, "place and date of birth"):
		return model.EvidenceBornField, 0
	case strings.Contains(t, "born") || strings.Contains(t, "née") ||
		strings.Contains(t, "né ") || strings.Contains(t, " b. "):
		return model.EvidenceBornNarrative, 1
	case strings.Contains(t, " births") ||
		(strings.Contains(t, "births") && strings.Contains(t, "category")):
		return model.EvidenceCategory, 3
	default:
		return model.EvidenceOther, 2
	}
}

// DeathType classifies evidence about death or current-activity status.
// Ranking: obituary(0) > death-narrative(1) = alive-current(1) > other(2).
func DeathType(text string) (model.EvidenceType, int) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "obituary") || strings.Contains(t, "memorial"):
		return model.EvidenceObituary, 0
	case strings.Contains(t, "died") || strings.Contains(t, "death") || strings.Contains(t, " d. "):
		return model.EvidenceDeathNarrative, 1
	case strings.Contains(t, "current") || strings.Contains(t, "serves as") || strings.Contains(t, "is the"):
		return model.EvidenceAliveCurrent, 1
	default:
		return model.EvidenceOther, 2
	}
}
