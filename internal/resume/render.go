package resume

import (
	"html/template"
	"strings"

	"github.com/entrevistaja/backend/internal/models"
)

// RenderText projects the document into the deterministic plain-text layout
// used by the txt export and by the analysis prompt. Empty sections are
// omitted entirely.
func RenderText(doc models.ResumeDocument) string {
	var b strings.Builder

	writeLine(&b, doc.Name)
	writeLine(&b, doc.Title)
	writeLine(&b, contactLine(doc.Contact))
	b.WriteString("\n")

	if doc.Summary != "" {
		b.WriteString("RESUMO PROFISSIONAL\n")
		b.WriteString(doc.Summary)
		b.WriteString("\n\n")
	}

	if len(doc.Experiences) > 0 {
		b.WriteString("EXPERIÊNCIA PROFISSIONAL\n")
		for _, exp := range doc.Experiences {
			b.WriteString(exp.Position)
			if exp.Company != "" {
				b.WriteString(" | " + exp.Company)
			}
			b.WriteString("\n")
			if period := periodLine(exp.StartDate, exp.EndDate, exp.Current); period != "" {
				b.WriteString(period + "\n")
			}
			if exp.Description != "" {
				b.WriteString(exp.Description + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(doc.Education) > 0 {
		b.WriteString("FORMAÇÃO ACADÊMICA\n")
		for _, edu := range doc.Education {
			b.WriteString(edu.Degree)
			if edu.Field != "" {
				b.WriteString(" em " + edu.Field)
			}
			b.WriteString("\n")
			writeLine(&b, edu.Institution)
			if period := periodLine(edu.StartDate, edu.EndDate, false); period != "" {
				b.WriteString(period + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(doc.Skills) > 0 {
		b.WriteString("HABILIDADES\n")
		b.WriteString(joinItems(doc.Skills) + "\n\n")
	}

	if len(doc.Languages) > 0 {
		b.WriteString("IDIOMAS\n")
		for _, lang := range doc.Languages {
			b.WriteString(lang.Name + " - " + lang.Level + "\n")
		}
		b.WriteString("\n")
	}

	if len(doc.Certifications) > 0 {
		b.WriteString("CERTIFICAÇÕES\n")
		for _, cert := range doc.Certifications {
			b.WriteString(cert.Name + "\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeLine(b *strings.Builder, s string) {
	if s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
}

func contactLine(c models.ResumeContact) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Email, c.Phone, c.Location, c.LinkedIn, c.GitHub} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func periodLine(start, end string, current bool) string {
	if start == "" && end == "" && !current {
		return ""
	}
	until := end
	if current {
		until = "Atual"
	}
	if until == "" {
		return start
	}
	if start == "" {
		return until
	}
	return start + " - " + until
}

func joinItems(items []models.ResumeItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	return strings.Join(names, ", ")
}

var htmlTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"period":  periodLine,
	"contact": contactLine,
	"skills":  joinItems,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1a1a1a; margin: 0; padding: 32px 40px; font-size: 12px; line-height: 1.45; }
  h1 { font-size: 22px; margin: 0; }
  h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #444; padding-bottom: 2px; margin: 18px 0 8px; }
  .title { font-size: 14px; color: #444; margin: 2px 0 4px; }
  .contact { color: #555; font-size: 11px; }
  .entry { margin-bottom: 10px; }
  .entry-head { font-weight: bold; }
  .period { color: #666; font-size: 11px; }
  .desc { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{if .Title}}<div class="title">{{.Title}}</div>{{end}}
<div class="contact">{{contact .Contact}}</div>
{{if .Summary}}<h2>Resumo Profissional</h2><div class="desc">{{.Summary}}</div>{{end}}
{{if .Experiences}}<h2>Experiência Profissional</h2>
{{range .Experiences}}<div class="entry">
<div class="entry-head">{{.Position}}{{if .Company}} | {{.Company}}{{end}}</div>
<div class="period">{{period .StartDate .EndDate .Current}}</div>
{{if .Description}}<div class="desc">{{.Description}}</div>{{end}}
</div>{{end}}{{end}}
{{if .Education}}<h2>Formação Acadêmica</h2>
{{range .Education}}<div class="entry">
<div class="entry-head">{{.Degree}}{{if .Field}} em {{.Field}}{{end}}</div>
<div>{{.Institution}}</div>
<div class="period">{{period .StartDate .EndDate false}}</div>
</div>{{end}}{{end}}
{{if .Skills}}<h2>Habilidades</h2><div>{{skills .Skills}}</div>{{end}}
{{if .Languages}}<h2>Idiomas</h2>
{{range .Languages}}<div>{{.Name}} - {{.Level}}</div>{{end}}{{end}}
{{if .Certifications}}<h2>Certificações</h2>
{{range .Certifications}}<div>{{.Name}}</div>{{end}}{{end}}
</body>
</html>`))

// RenderHTML produces the printable HTML page fed to the PDF renderer.
func RenderHTML(doc models.ResumeDocument) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
