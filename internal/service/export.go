package service

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

var ErrNothingToExport = errors.New("no missed words to export")

// StudySheet is a rendered study document ready to be sent or written.
type StudySheet struct {
	FileName string
	Title    string
	Words    int
	Content  []byte
}

// StudySheetExporter renders missed words into an HTML study sheet.
type StudySheetExporter struct {
	md  goldmark.Markdown
	now func() time.Time
}

// NewStudySheetExporter creates an exporter with GFM tables enabled.
func NewStudySheetExporter() *StudySheetExporter {
	return &StudySheetExporter{
		md:  goldmark.New(goldmark.WithExtensions(extension.Table)),
		now: time.Now,
	}
}

// Export renders missed words, most recent first. Rows keep the number the
// word had in the original order.
func (e *StudySheetExporter) Export(missed []entities.MissedEntry, mode entities.Mode) (*StudySheet, error) {
	if len(missed) == 0 {
		return nil, ErrNothingToExport
	}

	title := studySheetTitle(mode)

	var src strings.Builder
	fmt.Fprintf(&src, "# %s\n\n", escapeMarkdown(title))
	fmt.Fprintf(&src, "Total: %d palabras  \n", len(missed))
	fmt.Fprintf(&src, "Fecha: %s\n\n", e.now().Format("02/01/2006"))
	src.WriteString("| # | Palabra | Correcta | Tu respuesta |\n")
	src.WriteString("|---:|---|---|---|\n")

	for i := len(missed) - 1; i >= 0; i-- {
		m := missed[i]
		fmt.Fprintf(&src, "| %d | %s | %s | %s |\n",
			i+1,
			escapeMarkdown(m.Prompt),
			escapeMarkdown(m.Expected),
			escapeMarkdown(m.UserAnswer),
		)
	}

	var body bytes.Buffer
	if err := e.md.Convert([]byte(src.String()), &body); err != nil {
		return nil, fmt.Errorf("render study sheet: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(title))
	doc.WriteString(studySheetStyle)
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("<footer>Palabras</footer>\n</body>\n</html>\n")

	return &StudySheet{
		FileName: studySheetFileName(mode),
		Title:    title,
		Words:    len(missed),
		Content:  doc.Bytes(),
	}, nil
}

const studySheetStyle = `<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #111; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; font-size: 0.9em; }
th, td { border-bottom: 1px solid #ddd; padding: 4px 8px; text-align: left; }
td:last-child { color: #c00; }
footer { margin-top: 2em; color: #999; font-size: 0.8em; }
</style>
`

func studySheetTitle(mode entities.Mode) string {
	if mode.Valid() {
		return "Palabras para estudiar - " + mode.Label()
	}
	return "Palabras para estudiar"
}

func studySheetFileName(mode entities.Mode) string {
	switch mode {
	case entities.ModeSpanishToEnglish:
		return "palabras-para-estudiar-espanol-ingles.html"
	case entities.ModeEnglishToSpanish:
		return "palabras-para-estudiar-ingles-espanol.html"
	default:
		return "palabras-para-estudiar.html"
	}
}

// escapeMarkdown backslash-escapes ASCII punctuation so user input renders as
// plain text inside a table cell.
func escapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var sb strings.Builder
	for _, r := range s {
		if r < 128 && strings.ContainsRune("\\`*_{}[]()<>#+-.!|&~\"'=:;,/?@$%^", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
