package resume

import (
	"regexp"
	"strings"

	"github.com/entrevistaja/backend/internal/models"
)

// Keyword distribution is bounded so one analysis cannot flood a document.
const maxKeywordsPerExperience = 3

var (
	reSuggestedTitle    = regexp.MustCompile(`(?im)^\s*(?:cargo|t[íi]tulo(?:\s+profissional)?)\s*[:\-]\s*(.+?)\s*$`)
	reSuggestedLocation = regexp.MustCompile(`(?im)^\s*(?:localiza[çc][ãa]o|local)\s*[:\-]\s*(.+?)\s*$`)
)

// SplitKeywords turns the comma-joined missing-keywords string into a clean
// list.
func SplitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// applyAnalysis merges an AI result into the document. It only ever touches
// the summary, experience descriptions, and (when a suggestion pattern
// matches) the title and location; every other manually-entered field is
// left alone.
func applyAnalysis(doc *models.ResumeDocument, res models.AnalysisResult) {
	if s := strings.TrimSpace(res.OptimizedSummary); s != "" {
		doc.Summary = s
	}

	distributeKeywords(doc, SplitKeywords(res.MissingKeywords))

	// Best-effort extraction from free prose. These heuristics may find
	// nothing; on no match the fields keep their current values.
	if title, ok := ExtractSuggestedTitle(res.Suggestions); ok {
		doc.Title = title
	}
	if loc, ok := ExtractSuggestedLocation(res.Suggestions); ok {
		doc.Contact.Location = loc
	}
}

// distributeKeywords appends missing keywords to experience descriptions, at
// most maxKeywordsPerExperience per entry. Keywords already present anywhere
// in the document (case-insensitive) are considered covered and skipped.
func distributeKeywords(doc *models.ResumeDocument, keywords []string) {
	if len(keywords) == 0 || len(doc.Experiences) == 0 {
		return
	}

	pending := keywords[:0:0]
	for _, kw := range keywords {
		if !documentContains(doc, kw) {
			pending = append(pending, kw)
		}
	}

	for i := range doc.Experiences {
		if len(pending) == 0 {
			break
		}
		n := maxKeywordsPerExperience
		if n > len(pending) {
			n = len(pending)
		}
		batch := pending[:n]
		pending = pending[n:]

		desc := strings.TrimRight(doc.Experiences[i].Description, "\n")
		line := "Habilidades relevantes: " + strings.Join(batch, ", ")
		if desc == "" {
			doc.Experiences[i].Description = line
		} else {
			doc.Experiences[i].Description = desc + "\n" + line
		}
	}
}

func documentContains(doc *models.ResumeDocument, keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(doc.Summary), kw) {
		return true
	}
	for _, exp := range doc.Experiences {
		if strings.Contains(strings.ToLower(exp.Description), kw) {
			return true
		}
	}
	for _, skill := range doc.Skills {
		if strings.EqualFold(skill.Name, keyword) {
			return true
		}
	}
	return false
}

// ExtractSuggestedTitle sniffs a professional title out of suggestion prose.
// The format is not guaranteed; callers must treat a miss as normal.
func ExtractSuggestedTitle(s string) (string, bool) {
	m := reSuggestedTitle.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], `"*`), true
}

func ExtractSuggestedLocation(s string) (string, bool) {
	m := reSuggestedLocation.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], `"*`), true
}
