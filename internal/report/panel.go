package report

import (
	"fmt"
	"strings"
)

const (
	panelPadding   = 4.0
	panelMinHeight = 34.0
	panelGap       = 6.0
	colGap         = 6.0
	blockTagHeight = 2.0
)

// renderQuestionPanel draws one bordered breakdown panel. The panel height is
// estimated up front so the page break happens before the border is drawn; a
// panel never splits visually across pages.
func (g *Generator) renderQuestionPanel(num int, q Question, a Answer) {
	g.setBodyFont()
	est := g.estimatePanelHeight(q, a)
	// Cap the panel at one full page; column text past the cap is truncated
	// at the panel bottom so nothing draws below the bottom margin.
	if maxEst := g.state.Limit() - g.state.Margin - panelGap; est > maxEst {
		est = maxEst
	}
	if est+panelGap > g.state.Remaining() && g.state.Y > g.state.Margin {
		g.pageBreak()
	}

	top := g.state.Y
	x := g.state.Margin
	w := g.state.ContentWidth()
	inner := w - 2*panelPadding
	bottom := top + est - panelPadding

	g.pdf.SetDrawColor(205, 205, 205)
	g.pdf.Rect(x, top, w, est, "D")

	y := top + panelPadding

	g.pdf.SetFont("Arial", "B", 11)
	g.pdf.SetTextColor(30, 30, 30)
	g.pdf.SetXY(x+panelPadding, y)
	g.pdf.CellFormat(inner, lineHeight, fmt.Sprintf("Question %d", num), "", 0, "L", false, 0, "")
	y += lineHeight

	g.setBodyFont()
	for _, line := range g.pdf.SplitText(q.Text, inner) {
		if y+lineHeight > bottom {
			break
		}
		g.pdf.SetXY(x+panelPadding, y)
		g.pdf.CellFormat(inner, lineHeight, line, "", 0, "L", false, 0, "")
		y += lineHeight
	}

	if y+lineHeight > bottom {
		g.finishPanel(x, w, top, est)
		return
	}
	selected := q.OptionText(a.SelectedOptionID)
	if selected == "" {
		selected = "Not answered"
	}
	g.pdf.SetFont("Arial", "I", 10)
	g.pdf.SetTextColor(80, 80, 80)
	g.pdf.SetXY(x+panelPadding, y)
	g.pdf.CellFormat(inner, lineHeight, "Answer: "+selected, "", 0, "L", false, 0, "")
	y += lineHeight + 2

	if y+3*lineHeight > bottom {
		g.finishPanel(x, w, top, est)
		return
	}
	colW := (inner - colGap) / 2
	leftX := x + panelPadding
	rightX := leftX + colW + colGap
	colTop := y

	g.pdf.SetFont("Arial", "B", 10)
	g.pdf.SetTextColor(30, 30, 30)
	g.pdf.SetXY(leftX, y)
	g.pdf.CellFormat(colW, lineHeight, "Impact Analysis", "", 0, "L", false, 0, "")
	g.pdf.SetXY(rightX, y)
	g.pdf.CellFormat(colW, lineHeight, "Score & Performance", "", 0, "L", false, 0, "")
	y += lineHeight

	if strings.TrimSpace(a.ImpactAnalysisHTML) == "" {
		g.pdf.SetFont("Arial", "I", 10)
		g.pdf.SetTextColor(120, 120, 120)
		g.pdf.SetXY(leftX, y)
		g.pdf.CellFormat(colW, lineHeight, "No Impact Analysis Available", "", 0, "L", false, 0, "")
	} else {
		g.drawHTMLTextColumn(a.ImpactAnalysisHTML, leftX, colW, y, bottom)
	}

	points := q.Points
	if points <= 0 {
		points = 10
	}
	g.pdf.SetFont("Arial", "B", 12)
	g.pdf.SetTextColor(30, 60, 120)
	g.pdf.SetXY(rightX, y)
	g.pdf.CellFormat(colW, lineHeight, fmt.Sprintf("%.0f / %.0f", a.Value, points), "", 0, "L", false, 0, "")
	g.pdf.SetFont("Arial", "", 10)
	g.pdf.SetTextColor(60, 60, 60)
	g.pdf.SetXY(rightX, y+lineHeight)
	g.pdf.CellFormat(colW, lineHeight, PerformanceCategory(a.Value/points*100), "", 0, "L", false, 0, "")

	g.pdf.SetDrawColor(220, 220, 220)
	g.pdf.Line(rightX-colGap/2, colTop, rightX-colGap/2, bottom)

	g.finishPanel(x, w, top, est)
}

// finishPanel settles the cursor below the panel and draws the divider.
func (g *Generator) finishPanel(x, w, top, est float64) {
	g.state.Y = top + est
	g.advance(panelGap / 2)
	g.pdf.SetDrawColor(235, 235, 235)
	g.pdf.Line(x, g.state.Y, x+w, g.state.Y)
	g.advance(panelGap / 2)
}

// estimatePanelHeight pre-walks the panel content with the same tokenizer the
// draw pass uses: text nodes contribute their wrapped line count, block-level
// tags a fixed increment. The estimate is an upper bound on the drawn height.
func (g *Generator) estimatePanelHeight(q Question, a Answer) float64 {
	g.setBodyFont()
	inner := g.state.ContentWidth() - 2*panelPadding
	colW := (inner - colGap) / 2

	h := panelPadding
	h += lineHeight // question number
	h += float64(len(g.pdf.SplitText(q.Text, inner))) * lineHeight
	h += lineHeight + 2 // selected answer
	h += lineHeight     // column headings

	left := lineHeight // fallback line
	if strings.TrimSpace(a.ImpactAnalysisHTML) != "" {
		left = g.estimateHTMLTextHeight(a.ImpactAnalysisHTML, colW)
	}
	right := 2 * lineHeight
	if left > right {
		h += left
	} else {
		h += right
	}
	h += panelPadding

	if h < panelMinHeight {
		h = panelMinHeight
	}
	return h
}

// estimateHTMLTextHeight accumulates text-only height for src wrapped to w.
func (g *Generator) estimateHTMLTextHeight(src string, w float64) float64 {
	g.setBodyFont()
	var h float64
	sawText := false
	WalkHTML(src, Visitor{
		OnOpenTag: func(name string, _ map[string]string) {
			if isBlockTag(name) {
				h += blockTagHeight
			}
		},
		OnText: func(text string) {
			t := strings.Join(strings.Fields(text), " ")
			if t == "" {
				return
			}
			sawText = true
			h += float64(len(g.pdf.SplitText(t, w))) * lineHeight
		},
	})
	// The column draw ends every paragraph with a trailing gap; cover the
	// last one so the estimate stays an upper bound even without block tags.
	if sawText {
		h += blockTagHeight
	}
	return h
}

// drawHTMLTextColumn renders src as wrapped plain text inside a column. No
// page breaks happen here; lines that would cross maxY are dropped, which
// only occurs for panels capped at one page. Returns the cursor position
// below the drawn text.
func (g *Generator) drawHTMLTextColumn(src string, x, w, y, maxY float64) float64 {
	g.pdf.SetFont("Arial", "", 10)
	g.pdf.SetTextColor(40, 40, 40)
	text := extractText(src, nil)
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, line := range g.pdf.SplitText(para, w) {
			if y+lineHeight > maxY {
				return y
			}
			g.pdf.SetXY(x, y)
			g.pdf.CellFormat(w, lineHeight, line, "", 0, "L", false, 0, "")
			y += lineHeight
		}
		y += blockTagHeight
	}
	return y
}
