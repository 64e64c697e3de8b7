// Package aggregate joins the per-attribute verification outputs into
// one person-level dataset plus a parallel provenance file.
package aggregate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"triangulate/internal/model"
	"triangulate/internal/pipeline"
)

// PersonData is the joined, source-free view of one person
type PersonData struct {
	PersonID     string                 `json:"person_id"`
	PersonName   string                 `json:"person_name"`
	Biographical Biographical           `json:"biographical"`
	Education    []model.EducationEvent `json:"education"`
}

// Biographical carries the verified facts
type Biographical struct {
	BirthYear     *int             `json:"birth_year"`
	DeathYear     *int             `json:"death_year"`
	Status        model.LifeStatus `json:"status"`
	Nationalities []string         `json:"nationalities"`
}

// PersonSources carries the provenance for each fact in PersonData
type PersonSources struct {
	PersonID  string                `json:"person_id"`
	Sources   BiographicalSources   `json:"biographical_sources"`
	Education []EducationProvenance `json:"education_sources"`
}

// BiographicalSources mirrors Biographical field by field
type BiographicalSources struct {
	BirthYear     *BirthProvenance       `json:"birth_year,omitempty"`
	DeathYear     *DeathProvenance       `json:"death_year,omitempty"`
	Nationalities *NationalityProvenance `json:"nationalities,omitempty"`
}

// BirthProvenance is the audit trail behind a birth year
type BirthProvenance struct {
	Verified      int                    `json:"verified"`
	Outcome       model.Outcome          `json:"corroboration_outcome"`
	WinnerSources []model.EvidenceRecord `json:"winner_sources"`
}

// DeathProvenance is the audit trail behind a death year or alive status
type DeathProvenance struct {
	Status           model.LifeStatus       `json:"status"`
	Verified         int                    `json:"verified"`
	Outcome          model.Outcome          `json:"corroboration_outcome"`
	AliveSignals     []model.EvidenceRecord `json:"alive_signals"`
	DeathYearSources []model.EvidenceRecord `json:"death_year_sources"`
}

// NationalityProvenance is the audit trail behind the nationality set
type NationalityProvenance struct {
	Verified int                                `json:"verified"`
	Outcome  model.Outcome                      `json:"corroboration_outcome"`
	Details  map[string]model.NationalityDetail `json:"nationality_details"`
}

// EducationProvenance ties one education event to the mention sources it
// was structured from
type EducationProvenance struct {
	EventIndex int                     `json:"event_index"`
	Sources    []model.EducationSource `json:"sources"`
}

// NormalizePersonID derives the stable person id from a display name
func NormalizePersonID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Aggregator joins attribute outputs from one directory
type Aggregator struct {
	dir string
}

// New creates an aggregator over an output directory
func New(dir string) *Aggregator {
	return &Aggregator{dir: dir}
}

// Run reads the three attribute files and writes the joined data and
// sources files. Missing attribute files are treated as empty. When the
// same person appears more than once in a file, the last record wins.
func (a *Aggregator) Run(dataOut, sourcesOut string) (int, error) {
	births, err := loadJSONL[model.BirthRecord](filepath.Join(a.dir, pipeline.BirthOutputFile))
	if err != nil {
		return 0, err
	}
	deaths, err := loadJSONL[model.DeathRecord](filepath.Join(a.dir, pipeline.DeathOutputFile))
	if err != nil {
		return 0, err
	}
	nats, err := loadJSONL[model.NationalityRecord](filepath.Join(a.dir, pipeline.NationalityOutputFile))
	if err != nil {
		return 0, err
	}
	edus, err := loadJSONL[model.EducationRecord](filepath.Join(a.dir, pipeline.EducationOutputFile))
	if err != nil {
		return 0, err
	}

	birthMap := make(map[string]model.BirthRecord)
	for _, r := range births {
		birthMap[r.PersonName] = r
	}
	deathMap := make(map[string]model.DeathRecord)
	for _, r := range deaths {
		deathMap[r.PersonName] = r
	}
	natMap := make(map[string]model.NationalityRecord)
	for _, r := range nats {
		natMap[r.PersonName] = r
	}
	eduMap := make(map[string]model.EducationRecord)
	for _, r := range edus {
		eduMap[r.PersonName] = r
	}

	nameSet := make(map[string]bool)
	for name := range birthMap {
		nameSet[name] = true
	}
	for name := range deathMap {
		nameSet[name] = true
	}
	for name := range natMap {
		nameSet[name] = true
	}
	for name := range eduMap {
		nameSet[name] = true
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	dataFile, err := createFile(dataOut)
	if err != nil {
		return 0, err
	}
	defer dataFile.Close()
	sourcesFile, err := createFile(sourcesOut)
	if err != nil {
		return 0, err
	}
	defer sourcesFile.Close()

	dataEnc := json.NewEncoder(dataFile)
	sourcesEnc := json.NewEncoder(sourcesFile)

	for _, name := range names {
		data, sources := joinPerson(name, birthMap, deathMap, natMap, eduMap)
		if err := dataEnc.Encode(data); err != nil {
			return 0, fmt.Errorf("write data record: %w", err)
		}
		if err := sourcesEnc.Encode(sources); err != nil {
			return 0, fmt.Errorf("write sources record: %w", err)
		}
	}

	return len(names), nil
}

func joinPerson(name string, births map[string]model.BirthRecord, deaths map[string]model.DeathRecord, nats map[string]model.NationalityRecord, edus map[string]model.EducationRecord) (PersonData, PersonSources) {
	data := PersonData{
		PersonID:   NormalizePersonID(name),
		PersonName: name,
		Biographical: Biographical{
			Status:        model.StatusUnknown,
			Nationalities: []string{},
		},
		Education: []model.EducationEvent{},
	}
	sources := PersonSources{
		PersonID:  data.PersonID,
		Education: []EducationProvenance{},
	}

	if birth, ok := births[name]; ok {
		data.Biographical.BirthYear = birth.BirthYear
		sources.Sources.BirthYear = &BirthProvenance{
			Verified:      birth.Verified,
			Outcome:       birth.Outcome,
			WinnerSources: birth.WinnerSources,
		}
	}
	if death, ok := deaths[name]; ok {
		data.Biographical.DeathYear = death.DeathYear
		data.Biographical.Status = death.Status
		sources.Sources.DeathYear = &DeathProvenance{
			Status:           death.Status,
			Verified:         death.Verified,
			Outcome:          death.Outcome,
			AliveSignals:     death.AliveSignals,
			DeathYearSources: death.DeathYearSources,
		}
	}
	if nat, ok := nats[name]; ok {
		if nat.Nationalities != nil {
			data.Biographical.Nationalities = nat.Nationalities
		}
		sources.Sources.Nationalities = &NationalityProvenance{
			Verified: nat.Verified,
			Outcome:  nat.Outcome,
			Details:  nat.Details,
		}
	}
	if edu, ok := edus[name]; ok && len(edu.Events) > 0 {
		data.Education = edu.Events
		// Mentions are not attributed to individual events at this level;
		// every event carries the full mention source list
		for idx := range edu.Events {
			sources.Education = append(sources.Education, EducationProvenance{
				EventIndex: idx,
				Sources:    edu.Sources,
			})
		}
	}

	return data, sources
}

// loadJSONL reads a JSONL file of records; a missing file yields nil
func loadJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec T
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create dir for %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
