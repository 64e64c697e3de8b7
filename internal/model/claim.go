package model

// LifeStatus is the extractor's verdict on whether a person is living
type LifeStatus string

const (
	StatusDeceased LifeStatus = "deceased"
	StatusAlive    LifeStatus = "alive"
	StatusUnknown  LifeStatus = "unknown"
)

// Claim is a single extraction result for one evidence chunk.
// Only the fields relevant to the attribute being verified are populated:
// Year for birth-year claims, Status+Year for death claims, Codes for
// nationality claims. A zero Claim means "nothing found in this chunk".
type Claim struct {
	Present bool       `json:"present"`
	Year    int        `json:"year,omitempty"`   // 1600-2099 when set
	Status  LifeStatus `json:"status,omitempty"` // death attribute only
	Codes   []string   `json:"codes,omitempty"`  // ISO-3166 alpha-3, nationality only
}

// Absent reports whether the claim carries no usable value
func (c Claim) Absent() bool {
	return !c.Present && c.Status != StatusDeceased && c.Status != StatusAlive && len(c.Codes) == 0
}

// YearValid reports whether the claim's year is inside the accepted range
func (c Claim) YearValid() bool {
	return c.Year >= MinYear && c.Year <= MaxYear
}

// Accepted year bounds, shared with the extractor parsers
const (
	MinYear = 1600
	MaxYear = 2099
)
