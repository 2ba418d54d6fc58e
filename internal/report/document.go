package report

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"goforms/pkg/utils"
)

// Page geometry in millimeters (A4 portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 15.0

	lineHeight   = 6.0
	sectionGap   = 4.0
	imageGap     = 4.0
	paragraphGap = 2.0
)

// RenderState is the assembler's cursor. It is owned by one Generator and
// threaded through every draw helper; there is no package-level state, so
// concurrent report generations never interfere.
type RenderState struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Y          float64
}

func (s *RenderState) ContentWidth() float64 { return s.PageWidth - 2*s.Margin }

// Limit is the lowest Y a draw may start at before a page break is required.
func (s *RenderState) Limit() float64 { return s.PageHeight - s.Margin }

func (s *RenderState) Remaining() float64 { return s.Limit() - s.Y }

// Options selects the output mode. The document is always rendered to memory
// first; OutputPath, when set, writes the finished bytes to disk afterwards so
// a failed render never leaves a partial file behind.
type Options struct {
	OutputPath string
}

// Generator assembles one report document. Each call to Generate owns its own
// Generator; nothing here is shared across calls.
type Generator struct {
	pdf         *gofpdf.Fpdf
	state       *RenderState
	client      *http.Client
	imageSeq    int
	imagesDrawn int
}

func newGenerator() *Generator {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	g := &Generator{
		pdf:    pdf,
		state:  &RenderState{PageWidth: pageWidth, PageHeight: pageHeight, Margin: pageMargin},
		client: &http.Client{Timeout: 20 * time.Second},
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(0, 4, "Generated by GoForms", "", 2, "C", false, 0, "")
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	return g
}

// Generate renders a complete report for one response. When opts.OutputPath is
// empty the caller gets the document bytes only (email attachment path).
func Generate(data ReportData, opts Options) ([]byte, error) {
	g := newGenerator()
	g.render(data)
	return g.output(opts)
}

func (g *Generator) render(data ReportData) {
	r := data.Response

	g.pdf.SetTitle("Quiz Results - "+r.Name, true)
	g.pdf.SetAuthor("GoForms", true)
	g.pdf.SetCreator("GoForms Report Engine", true)
	g.pdf.SetSubject("Quiz results report", true)
	g.pdf.SetKeywords("quiz, results, report, goforms", true)

	g.pdf.AddPage()
	g.state.Y = g.state.Margin

	g.drawTitle(data)
	g.drawRespondentBlock(data)
	g.drawScoreSummary(r)

	vars := Variables(data)
	switch {
	case strings.TrimSpace(r.CustomFeedbackHTML) != "":
		// Explicit override: a resolved template never appears alongside it.
		g.drawSectionTitle("Feedback")
		g.renderRichBlock(Interpolate(r.CustomFeedbackHTML, vars))
	case data.Template != nil && len(data.Template.Sections) > 0:
		for _, sec := range data.Template.Sections {
			if strings.TrimSpace(sec.Title) != "" {
				g.drawSectionTitle(sec.Title)
			}
			g.renderRichBlock(Interpolate(sec.ContentHTML, vars))
		}
	default:
		g.drawPerformanceAnalysis(r.Score)
	}

	if len(data.Questions) > 0 {
		g.drawSectionTitle("Question Breakdown")
		for i, q := range data.Questions {
			g.renderQuestionPanel(i+1, q, r.Answers[q.ID])
		}
	}
}

func (g *Generator) output(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write report file: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// pageBreak starts a new page and resets the cursor to the top margin.
func (g *Generator) pageBreak() {
	g.pdf.AddPage()
	g.state.Y = g.state.Margin
}

// ensureRoom breaks the page when drawing h more millimeters would cross the
// bottom margin.
func (g *Generator) ensureRoom(h float64) {
	if g.state.Y+h > g.state.Limit() {
		g.pageBreak()
	}
}

// advance moves the cursor down by a gap, clamped to the bottom margin so the
// cursor bound invariant holds between draws. Gaps at the page bottom carry no
// meaning; the next draw starts a fresh page anyway.
func (g *Generator) advance(h float64) {
	g.state.Y += h
	if g.state.Y > g.state.Limit() {
		g.state.Y = g.state.Limit()
	}
}

func (g *Generator) setBodyFont() {
	g.pdf.SetFont("Arial", "", 11)
	g.pdf.SetTextColor(40, 40, 40)
}

// drawTextLine writes one already-wrapped line at the cursor and advances it.
func (g *Generator) drawTextLine(line string) {
	g.drawTextLineAt(g.state.Margin, g.state.ContentWidth(), line)
}

func (g *Generator) drawTextLineAt(x, w float64, line string) {
	g.ensureRoom(lineHeight)
	g.setBodyFont()
	g.pdf.SetXY(x, g.state.Y)
	g.pdf.CellFormat(w, lineHeight, line, "", 0, "L", false, 0, "")
	g.state.Y += lineHeight
}

func (g *Generator) drawTitle(data ReportData) {
	g.pdf.SetFont("Arial", "B", 20)
	g.pdf.SetTextColor(30, 30, 30)
	g.pdf.SetXY(g.state.Margin, g.state.Y)
	g.pdf.CellFormat(g.state.ContentWidth(), 10, "Quiz Results", "", 0, "L", false, 0, "")
	g.state.Y += 10

	title := data.QuizTitle
	if title == "" {
		title = "Quiz"
	}
	g.pdf.SetFont("Arial", "", 12)
	g.pdf.SetTextColor(90, 90, 90)
	g.pdf.SetXY(g.state.Margin, g.state.Y)
	g.pdf.CellFormat(g.state.ContentWidth(), 7, title, "", 0, "L", false, 0, "")
	g.state.Y += 7 + sectionGap
}

func (g *Generator) drawRespondentBlock(data ReportData) {
	r := data.Response
	lines := []string{
		"Name: " + r.Name,
		"Email: " + r.Email,
	}
	if r.Phone != "" {
		lines = append(lines, "Phone: "+r.Phone)
	}
	lines = append(lines,
		"Submitted: "+utils.FormatReportDate(r.SubmittedAt)+" at "+utils.FormatReportTime(r.SubmittedAt),
		"Completion time: "+utils.FormatCompletionTime(r.CompletionTimeSeconds),
	)
	for _, line := range lines {
		g.drawTextLine(line)
	}
	g.advance(sectionGap)
}

func (g *Generator) drawScoreSummary(r Response) {
	const boxH = 18.0
	g.ensureRoom(boxH + sectionGap)

	g.pdf.SetFillColor(240, 244, 250)
	g.pdf.SetDrawColor(200, 210, 225)
	g.pdf.Rect(g.state.Margin, g.state.Y, g.state.ContentWidth(), boxH, "FD")

	g.pdf.SetFont("Arial", "B", 16)
	g.pdf.SetTextColor(30, 60, 120)
	g.pdf.SetXY(g.state.Margin+4, g.state.Y+3)
	g.pdf.CellFormat(60, 8, fmt.Sprintf("Score: %.0f / 100", r.Score), "", 0, "L", false, 0, "")

	g.pdf.SetFont("Arial", "", 11)
	g.pdf.SetTextColor(60, 60, 60)
	g.pdf.SetXY(g.state.Margin+4, g.state.Y+11)
	g.pdf.CellFormat(g.state.ContentWidth()-8, 5, PerformanceCategory(r.Score), "", 0, "L", false, 0, "")

	g.state.Y += boxH
	g.advance(sectionGap)
}

func (g *Generator) drawSectionTitle(title string) {
	// Keep the heading attached to at least one following line.
	g.ensureRoom(8 + lineHeight)
	g.advance(paragraphGap)
	g.pdf.SetFont("Arial", "B", 14)
	g.pdf.SetTextColor(30, 30, 30)
	g.pdf.SetXY(g.state.Margin, g.state.Y)
	g.pdf.CellFormat(g.state.ContentWidth(), 8, title, "", 0, "L", false, 0, "")
	g.state.Y += 8
}

// drawPerformanceAnalysis is the built-in fallback block used when neither a
// template nor custom feedback resolved for the response.
func (g *Generator) drawPerformanceAnalysis(score float64) {
	g.drawSectionTitle("Performance Analysis")
	g.setBodyFont()
	for _, line := range g.pdf.SplitText(performanceAnalysisCopy(score), g.state.ContentWidth()) {
		g.drawTextLine(line)
	}
	g.advance(sectionGap)
}

func performanceAnalysisCopy(score float64) string {
	switch {
	case score >= 90:
		return "Outstanding result. You answered almost everything correctly and show a complete command of this material."
	case score >= 80:
		return "A very good result. You have a strong grasp of the material, with only a few areas worth revisiting."
	case score >= 70:
		return "A good result. You understand most of the material well; reviewing the questions you missed will close the remaining gaps."
	case score >= 60:
		return "A satisfactory result. You have the fundamentals in place, but several topics deserve another pass."
	default:
		return "This result suggests the material has not clicked yet. Revisit the topics covered and retake the quiz when you are ready."
	}
}
