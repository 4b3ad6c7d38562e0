// Package renderer renders ledgers as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"cell": cell,
}

// cellEscaper escapes the characters markdown would read as table or emphasis syntax.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// cell escapes text for a markdown table cell, so that it renders literally.
func cell(s string) string {
	return strings.Join(strings.Fields(cellEscaper.Replace(s)), " ")
}

// RenderLedger renders the Ledger struct to a markdown string.
func RenderLedger(l *Ledger) string {
	partials := map[string]string{
		"ledger_filters": "ledger_filters.md",
		"ledger_table":   "ledger_table.md",
		"ledger_summary": "ledger_summary.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// RenderTotal renders only the balance line of the Ledger.
func RenderTotal(l *Ledger) string {
	return renderTemplate("total", "ledger_summary.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
