package model

// Outcome names how (or whether) a claim value survived corroboration
type Outcome string

const (
	OutcomeVerified             Outcome = "verified"
	OutcomeConflictResolved     Outcome = "conflict_resolved"
	OutcomeNoCorroboration      Outcome = "no_corroboration"
	OutcomeConflictInconclusive Outcome = "conflict_inconclusive"
	OutcomePartial              Outcome = "partial" // set-shape: only single-source values
	OutcomeNoEvidence           Outcome = "no_evidence"
)

// Verification levels: 0 = no evidence, 1 = single source, 2 = quorum
const (
	LevelNone        = 0
	LevelSingle      = 1
	LevelCorroborate = 2
)

// PersonReport bundles the attribute records produced for one person in
// one verification run
type PersonReport struct {
	PersonName  string             `json:"person_name"`
	RunID       string             `json:"run_id"`
	Birth       *BirthRecord       `json:"birth,omitempty"`
	Death       *DeathRecord       `json:"death,omitempty"`
	Nationality *NationalityRecord `json:"nationality,omitempty"`
	Education   *EducationRecord   `json:"education,omitempty"`
}

// RunnerUp summarizes a losing value for the audit trail
type RunnerUp struct {
	Value        string          `json:"value"`
	Count        int             `json:"count"`
	SampleSource *EvidenceRecord `json:"sample_source,omitempty"`
}

// BirthRecord is the output line of a birth-year verification run.
// Written once per person per run; never mutated after creation.
type BirthRecord struct {
	PersonName    string           `json:"person_name"`
	BirthYear     *int             `json:"birth_year"`
	Verified      int              `json:"verified"`
	Outcome       Outcome          `json:"corroboration_outcome"`
	Scanned       int              `json:"scanned"`
	WinnerYear    *int             `json:"winner_year"`
	WinnerSources []EvidenceRecord `json:"winner_sources"`
	RunnerUpYears []RunnerUp       `json:"runner_up_years"`
	Error         string           `json:"error,omitempty"`
}

// DeathRecord is the output line of a death/alive verification run
type DeathRecord struct {
	PersonName       string           `json:"person_name"`
	Status           LifeStatus       `json:"status"`
	DeathYear        *int             `json:"death_year"`
	Verified         int              `json:"verified"`
	Outcome          Outcome          `json:"corroboration_outcome"`
	Scanned          int              `json:"scanned"`
	DeathYearSources []EvidenceRecord `json:"death_year_sources"`
	AliveSignals     []EvidenceRecord `json:"alive_signals"`
	RunnerUpYears    []RunnerUp       `json:"runner_up_years,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// NationalityDetail carries the per-code tally for the audit trail
type NationalityDetail struct {
	Count   int              `json:"count"`
	Sources []EvidenceRecord `json:"sources"`
}

// NationalityRecord is the output line of a nationality verification run.
// Nationalities holds codes that reached quorum; Unverified holds codes
// seen from a single domain only.
type NationalityRecord struct {
	PersonName    string                       `json:"person_name"`
	Nationalities []string                     `json:"nationalities"`
	Unverified    []string                     `json:"unverified_nationalities"`
	Verified      int                          `json:"verified"`
	Outcome       Outcome                      `json:"corroboration_outcome"`
	Scanned       int                          `json:"scanned"`
	Details       map[string]NationalityDetail `json:"nationality_details,omitempty"`
	Error         string                       `json:"error,omitempty"`
}

// EducationEvent is one structured education entry
type EducationEvent struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartYear   *int   `json:"start_year"`
	EndYear     *int   `json:"end_year"`
}

// EducationSource ties one extracted mention back to its chunk
type EducationSource struct {
	URL        string `json:"url"`
	ChunkIndex int    `json:"chunk_index"`
	Domain     string `json:"domain"`
	Mention    string `json:"mention"`
}

// EducationRecord is the output line of an education extraction run.
// Education is collected, not corroborated: mentions are gathered across
// the scanned chunks and structured into events in a second pass.
type EducationRecord struct {
	PersonName  string            `json:"person_name"`
	Events      []EducationEvent  `json:"education_events"`
	RawMentions []string          `json:"raw_mentions"`
	Sources     []EducationSource `json:"sources"`
	Scanned     int               `json:"scanned"`
	Error       string            `json:"error,omitempty"`
}
