package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Exporter renders collected responses to a file and returns its path.
type Exporter interface {
	GenerateResponseSheet(sheet ResponseSheet) (string, error)
}

type ResponseSheet struct {
	FormID      int
	Heading     string
	Description string
	GeneratedAt time.Time
	Responses   []ResponseEntry
}

type ResponseEntry struct {
	SubmittedAt time.Time
	Answers     []AnswerLine
}

type AnswerLine struct {
	Question string
	Values   []string
}

type SheetGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewSheetGenerator(rootDir string) *SheetGenerator {
	return &SheetGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *SheetGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create export dir: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

func (g *SheetGenerator) GenerateResponseSheet(sheet ResponseSheet) (string, error) {
	filename := fmt.Sprintf("form_%d_responses.pdf", sheet.FormID)
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Responses — %s", sheet.Heading), true)
	pdf.SetAuthor("Formiverse", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, sheet.Heading, "", "C", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, sheet.Description, "", "C", false)
	pdf.CellFormat(0, 7,
		fmt.Sprintf("%d responses, generated %s",
			len(sheet.Responses), sheet.GeneratedAt.Format("2006-01-02 15:04")),
		"", 1, "C", false, 0, "")
	g.hr(pdf)

	for i, entry := range sheet.Responses {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8,
			fmt.Sprintf("Response #%d — %s", i+1, entry.SubmittedAt.Format("2006-01-02 15:04")),
			"", 1, "L", false, 0, "")

		for _, a := range entry.Answers {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5.5, a.Question, "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			value := strings.Join(a.Values, ", ")
			if value == "" {
				value = "—"
			}
			pdf.MultiCell(0, 5.5, value, "", "L", false)
			pdf.Ln(1.5)
		}
		g.hr(pdf)
	}

	if len(sheet.Responses) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "No responses yet.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", absPath, err)
	}
	return absPath, nil
}

func (g *SheetGenerator) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(x, y, pageW-20, y)
	pdf.Ln(4)
}
