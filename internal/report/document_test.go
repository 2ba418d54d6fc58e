package report

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// renderUncompressed renders data with stream compression off so tests can
// assert on literal text inside the page content streams.
func renderUncompressed(t *testing.T, data ReportData) []byte {
	t.Helper()
	g := newGenerator()
	g.pdf.SetCompression(false)
	g.render(data)
	out, err := g.output(Options{})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	return out
}

func sampleData() ReportData {
	return ReportData{
		Response: Response{
			Name:                  "Linh Tran",
			Email:                 "linh@example.com",
			FormID:                SampleFormID,
			Score:                 85,
			CompletionTimeSeconds: 95,
			SubmittedAt:           time.Date(2025, time.March, 14, 15, 4, 0, 0, time.UTC),
		},
		QuizTitle: "Go Basics",
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	out, err := Generate(sampleData(), Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header: %q", out[:10])
	}
}

func TestGenerateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	out, err := Generate(sampleData(), Options{OutputPath: path})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !bytes.Equal(onDisk, out) {
		t.Error("file content differs from returned bytes")
	}
}

func TestCustomFeedbackOverridesTemplate(t *testing.T) {
	data := sampleData()
	data.Response.CustomFeedbackHTML = "<p>CUSTOMMARK for {{name}}</p>"
	data.Template = &ResolvedTemplate{Sections: []TemplateSection{
		{Title: "Overview", ContentHTML: "<p>TEMPLATEMARK</p>"},
	}}

	out := renderUncompressed(t, data)

	if !bytes.Contains(out, []byte("CUSTOMMARK")) {
		t.Error("custom feedback content missing from document")
	}
	if !bytes.Contains(out, []byte("Linh")) {
		t.Error("custom feedback was not interpolated")
	}
	if bytes.Contains(out, []byte("TEMPLATEMARK")) {
		t.Error("template content rendered despite custom feedback override")
	}
	if !bytes.Contains(out, []byte("Feedback")) {
		t.Error("feedback section heading missing")
	}
}

func TestTemplateSectionsRender(t *testing.T) {
	data := sampleData()
	data.Template = &ResolvedTemplate{Sections: []TemplateSection{
		{Title: "Overview", ContentHTML: "<p>Hello {{name}}, you scored {{score}}.</p>"},
		{Title: "Next Steps", ContentHTML: "<p>SECONDMARK</p>"},
	}}

	out := renderUncompressed(t, data)

	for _, want := range []string{"Overview", "Next Steps", "SECONDMARK", "you scored 85."} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("document missing %q", want)
		}
	}
	if bytes.Contains(out, []byte("{{name}}")) {
		t.Error("name token left uninterpolated")
	}
	if bytes.Contains(out, []byte("Performance Analysis")) {
		t.Error("built-in fallback rendered alongside a template")
	}
}

func TestFallbackPerformanceAnalysis(t *testing.T) {
	data := sampleData()
	data.Response.Score = 75

	out := renderUncompressed(t, data)

	if !bytes.Contains(out, []byte("Performance Analysis")) {
		t.Error("fallback section heading missing")
	}
	if !bytes.Contains(out, []byte("A good result.")) {
		t.Error("fallback copy for the 70-79 band missing")
	}
}

func TestPerformanceAnalysisCopyBands(t *testing.T) {
	scores := []float64{95, 85, 75, 65, 30}
	seen := map[string]bool{}
	for _, s := range scores {
		copyText := performanceAnalysisCopy(s)
		if copyText == "" {
			t.Fatalf("empty copy for score %v", s)
		}
		if seen[copyText] {
			t.Errorf("score %v reuses copy from another band", s)
		}
		seen[copyText] = true
	}
}

func TestFooterPageNumbers(t *testing.T) {
	out := renderUncompressed(t, sampleData())
	if !bytes.Contains(out, []byte("Page 1 of 1")) {
		t.Error("single-page document missing resolved page numbering")
	}
	if bytes.Contains(out, []byte("{nb}")) {
		t.Error("page count alias left unresolved")
	}
	if !bytes.Contains(out, []byte("Generated by GoForms")) {
		t.Error("footer branding line missing")
	}
}

func TestMultiPagePageNumbers(t *testing.T) {
	data := sampleData()
	long := strings.Repeat("<p>Filler paragraph with enough words to wrap across several lines of the page body.</p>", 40)
	data.Template = &ResolvedTemplate{Sections: []TemplateSection{{Title: "Long", ContentHTML: long}}}

	out := renderUncompressed(t, data)

	if bytes.Contains(out, []byte("Page 1 of 1")) {
		t.Fatal("long document rendered as a single page")
	}
	if !bytes.Contains(out, []byte("Page 1 of ")) || !bytes.Contains(out, []byte("Page 2 of ")) {
		t.Error("per-page numbering missing on a multi-page document")
	}
}

// The cursor must sit inside the printable band after every draw call.
func TestCursorStaysInBounds(t *testing.T) {
	g := newGenerator()
	g.pdf.AddPage()
	g.state.Y = g.state.Margin

	blocks := []string{
		"<p>short</p>",
		strings.Repeat("<p>a longer paragraph that wraps and wraps and keeps going for a while</p>", 12),
		"<ul><li>one</li><li>two</li><li>three</li></ul>",
		strings.Repeat("word ", 400),
	}
	for i := 0; i < 6; i++ {
		for _, b := range blocks {
			g.renderRichBlock(b)
			if g.state.Y < g.state.Margin || g.state.Y > g.state.Limit() {
				t.Fatalf("cursor out of bounds after block: Y=%v (margin %v, limit %v)",
					g.state.Y, g.state.Margin, g.state.Limit())
			}
		}
	}
	if _, err := g.output(Options{}); err != nil {
		t.Fatalf("output: %v", err)
	}
}

// Same invariant over seeded-random text and image sequences.
func TestCursorStaysInBoundsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := newGenerator()
	g.pdf.AddPage()
	g.state.Y = g.state.Margin

	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta",
		"considerably", "longerwordhere", "wrap", "cursor", "panel", "report"}
	tiny := testPNG(t, 4, 4)

	checkBounds := func(step int, what string) {
		t.Helper()
		if g.state.Y < g.state.Margin || g.state.Y > g.state.Limit() {
			t.Fatalf("step %d (%s): cursor out of bounds: Y=%v (margin %v, limit %v)",
				step, what, g.state.Y, g.state.Margin, g.state.Limit())
		}
	}

	for step := 0; step < 120; step++ {
		if rng.Intn(4) == 0 {
			a := &imageAsset{
				Name:      fmt.Sprintf("rand-img-%d", step),
				ImageType: "PNG",
				PixelW:    40 + rng.Intn(4000),
				PixelH:    40 + rng.Intn(5000),
			}
			g.pdf.RegisterImageOptionsReader(a.Name,
				gofpdf.ImageOptions{ImageType: a.ImageType}, bytes.NewReader(tiny))
			g.drawImage(a)
			checkBounds(step, "image")
			continue
		}

		var b strings.Builder
		for p, paras := 0, 1+rng.Intn(4); p < paras; p++ {
			b.WriteString("<p>")
			for w, n := 0, 1+rng.Intn(120); w < n; w++ {
				b.WriteString(words[rng.Intn(len(words))])
				b.WriteString(" ")
			}
			b.WriteString("</p>")
		}
		g.renderRichBlock(b.String())
		checkBounds(step, "text")
	}

	if _, err := g.output(Options{}); err != nil {
		t.Fatalf("output: %v", err)
	}
}
