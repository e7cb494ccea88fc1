package resume

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateDirty   State = "dirty"
)

// Editor holds the canonical in-memory resume document for one user and
// tracks whether it diverges from the last-saved profile. All mutations run
// within a single request turn; the editor itself is not goroutine-safe and
// is guarded by its Store.
type Editor struct {
	state    State
	doc      models.ResumeDocument
	baseline string // serialization of the last loaded/saved document
}

func NewEditor() *Editor {
	return &Editor{state: StateIdle, doc: EmptyDocument()}
}

func (e *Editor) State() State {
	e.refresh()
	return e.state
}

// BeginLoad marks a profile load in flight. A load is rejected while the
// document carries unsaved edits: a slow fetch completing late must not
// clobber what the user already typed.
func (e *Editor) BeginLoad() error {
	const op = "Editor.BeginLoad"
	e.refresh()
	if e.state == StateDirty {
		return utils.E(utils.CodeConflict, op, "unsaved changes present; save or discard before reloading", nil)
	}
	if e.state == StateLoading {
		return utils.E(utils.CodeConflict, op, "load already in progress", nil)
	}
	e.state = StateLoading
	return nil
}

func (e *Editor) CompleteLoad(doc models.ResumeDocument) error {
	const op = "Editor.CompleteLoad"
	if e.state != StateLoading {
		return utils.E(utils.CodeConflict, op, "no load in progress", nil)
	}
	e.doc = cloneDocument(doc)
	e.baseline = serialize(e.doc)
	e.state = StateReady
	return nil
}

func (e *Editor) FailLoad() {
	if e.state == StateLoading {
		e.state = StateIdle
	}
}

// Document returns a copy of the canonical document; exports and analysis
// read this so unsaved edits are always reflected.
func (e *Editor) Document() models.ResumeDocument {
	return cloneDocument(e.doc)
}

func (e *Editor) Dirty() bool {
	return e.State() == StateDirty
}

// Replace swaps in a full manually-edited document, preserving item ids that
// the caller carried through. It is the bulk-edit path behind PUT /resume.
func (e *Editor) Replace(doc models.ResumeDocument) error {
	const op = "Editor.Replace"
	if e.state == StateLoading {
		return utils.E(utils.CodeConflict, op, "load in progress", nil)
	}
	if e.state == StateIdle {
		// first touch without a profile: start from an empty baseline
		e.baseline = serialize(EmptyDocument())
	}
	e.doc = cloneDocument(doc)
	ensureItemIDs(&e.doc)
	e.refresh()
	return nil
}

// MarkSaved resets the baseline after a successful persist.
func (e *Editor) MarkSaved() {
	e.baseline = serialize(e.doc)
	e.state = StateReady
}

func (e *Editor) AddExperience() models.ResumeExperience {
	exp := models.ResumeExperience{ID: uuid.NewString()}
	e.doc.Experiences = append(e.doc.Experiences, exp)
	e.refresh()
	return exp
}

func (e *Editor) UpdateExperience(exp models.ResumeExperience) bool {
	for i := range e.doc.Experiences {
		if e.doc.Experiences[i].ID == exp.ID {
			exp.StartDate = FormatMonthYear(exp.StartDate)
			exp.EndDate = FormatMonthYear(exp.EndDate)
			e.doc.Experiences[i] = exp
			e.refresh()
			return true
		}
	}
	return false
}

func (e *Editor) RemoveExperience(id string) {
	out := e.doc.Experiences[:0]
	for _, exp := range e.doc.Experiences {
		if exp.ID != id {
			out = append(out, exp)
		}
	}
	e.doc.Experiences = out
	e.refresh()
}

func (e *Editor) AddEducation() models.ResumeEducation {
	edu := models.ResumeEducation{ID: uuid.NewString()}
	e.doc.Education = append(e.doc.Education, edu)
	e.refresh()
	return edu
}

func (e *Editor) UpdateEducation(edu models.ResumeEducation) bool {
	for i := range e.doc.Education {
		if e.doc.Education[i].ID == edu.ID {
			edu.StartDate = FormatMonthYear(edu.StartDate)
			edu.EndDate = FormatMonthYear(edu.EndDate)
			e.doc.Education[i] = edu
			e.refresh()
			return true
		}
	}
	return false
}

func (e *Editor) RemoveEducation(id string) {
	out := e.doc.Education[:0]
	for _, edu := range e.doc.Education {
		if edu.ID != id {
			out = append(out, edu)
		}
	}
	e.doc.Education = out
	e.refresh()
}

func (e *Editor) AddLanguage() models.ResumeLanguage {
	lang := models.ResumeLanguage{ID: uuid.NewString(), Level: proficiencyLabel(models.ProficiencyBasic)}
	e.doc.Languages = append(e.doc.Languages, lang)
	e.refresh()
	return lang
}

func (e *Editor) UpdateLanguage(lang models.ResumeLanguage) bool {
	for i := range e.doc.Languages {
		if e.doc.Languages[i].ID == lang.ID {
			e.doc.Languages[i] = lang
			e.refresh()
			return true
		}
	}
	return false
}

func (e *Editor) RemoveLanguage(id string) {
	out := e.doc.Languages[:0]
	for _, lang := range e.doc.Languages {
		if lang.ID != id {
			out = append(out, lang)
		}
	}
	e.doc.Languages = out
	e.refresh()
}

// ApplyAnalysis merges an AI result into the document (see suggestions.go).
func (e *Editor) ApplyAnalysis(res models.AnalysisResult) {
	applyAnalysis(&e.doc, res)
	e.refresh()
}

func (e *Editor) refresh() {
	switch e.state {
	case StateIdle, StateLoading:
		return
	}
	if serialize(e.doc) != e.baseline {
		e.state = StateDirty
	} else {
		e.state = StateReady
	}
}

func serialize(doc models.ResumeDocument) string {
	b, _ := json.Marshal(doc)
	return string(b)
}

func cloneDocument(doc models.ResumeDocument) models.ResumeDocument {
	b, _ := json.Marshal(doc)
	var out models.ResumeDocument
	_ = json.Unmarshal(b, &out)
	if out.Skills == nil {
		out.Skills = []models.ResumeItem{}
	}
	if out.Languages == nil {
		out.Languages = []models.ResumeLanguage{}
	}
	if out.Certifications == nil {
		out.Certifications = []models.ResumeItem{}
	}
	if out.Experiences == nil {
		out.Experiences = []models.ResumeExperience{}
	}
	if out.Education == nil {
		out.Education = []models.ResumeEducation{}
	}
	return out
}

func ensureItemIDs(doc *models.ResumeDocument) {
	for i := range doc.Experiences {
		doc.Experiences[i].ID = itemID(doc.Experiences[i].ID)
	}
	for i := range doc.Education {
		doc.Education[i].ID = itemID(doc.Education[i].ID)
	}
	for i := range doc.Skills {
		doc.Skills[i].ID = itemID(doc.Skills[i].ID)
	}
	for i := range doc.Languages {
		doc.Languages[i].ID = itemID(doc.Languages[i].ID)
	}
	for i := range doc.Certifications {
		doc.Certifications[i].ID = itemID(doc.Certifications[i].ID)
	}
}

// Store hands out one editor per user. With serializes request turns on a
// per-user lock, so editor mutations never interleave even under concurrent
// requests from the same account.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	mu sync.Mutex
	ed *Editor
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

func (s *Store) With(uid string, fn func(*Editor) error) error {
	s.mu.Lock()
	en, ok := s.entries[uid]
	if !ok {
		en = &storeEntry{ed: NewEditor()}
		s.entries[uid] = en
	}
	s.mu.Unlock()

	en.mu.Lock()
	defer en.mu.Unlock()
	return fn(en.ed)
}

func (s *Store) Drop(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, uid)
}
