package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Placeholders are delimited with NUL bytes. The tokenizer replaces NUL in
// text nodes with U+FFFD, so user-authored content can never collide with
// the placeholder namespace.
var imagePlaceholderRe = regexp.MustCompile("\x00IMAGE_(\\d+)\x00")

// renderRichBlock draws one block of rich HTML content at the cursor:
// embedded images are pulled out into positional placeholders, probed for
// their natural size (all probes finish before any drawing starts), and then
// re-interleaved with word-wrapped text in textual order. A failed image load
// drops that image only; the surrounding text still renders.
func (g *Generator) renderRichBlock(src string) {
	if strings.TrimSpace(src) == "" {
		return
	}

	var srcs []string
	text := extractText(src, func(imgSrc string) string {
		if imgSrc == "" {
			return ""
		}
		srcs = append(srcs, imgSrc)
		return fmt.Sprintf("\x00IMAGE_%d\x00", len(srcs)-1)
	})

	assets := probeImages(g.client, srcs)
	for _, asset := range assets {
		if asset == nil {
			continue
		}
		g.imageSeq++
		asset.Name = fmt.Sprintf("rich-img-%d", g.imageSeq)
		g.pdf.RegisterImageOptionsReader(asset.Name,
			gofpdf.ImageOptions{ImageType: asset.ImageType}, bytes.NewReader(asset.Data))
	}

	g.setBodyFont()
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, line := range g.pdf.SplitText(para, g.state.ContentWidth()) {
			g.drawRichLine(line, assets)
		}
		g.advance(paragraphGap)
	}
	g.advance(sectionGap - paragraphGap)
}

// drawRichLine draws one wrapped line, splitting around image placeholders so
// that text before the image, the image itself, and text after it keep their
// original order.
func (g *Generator) drawRichLine(line string, assets []*imageAsset) {
	m := imagePlaceholderRe.FindStringSubmatchIndex(line)
	if m == nil {
		if line = strings.TrimSpace(line); line != "" {
			g.drawTextLine(line)
		}
		return
	}

	before := strings.TrimSpace(line[:m[0]])
	after := line[m[1]:]
	idx, _ := strconv.Atoi(line[m[2]:m[3]])

	if before != "" {
		g.drawTextLine(before)
	}
	if idx >= 0 && idx < len(assets) && assets[idx] != nil {
		g.drawImage(assets[idx])
	}
	// The remainder may hold further placeholders on the same line.
	g.drawRichLine(after, assets)
}

// drawImage scales the image to fit the content width (and, for very tall
// images, the page height), breaks the page if it would overflow, draws it and
// advances the cursor.
func (g *Generator) drawImage(a *imageAsset) {
	w, h := a.WidthMM(), a.HeightMM()
	if maxW := g.state.ContentWidth(); w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if maxH := g.state.PageHeight - 2*g.state.Margin - imageGap; h > maxH {
		w = w * maxH / h
		h = maxH
	}

	g.ensureRoom(h + imageGap)
	g.pdf.ImageOptions(a.Name, g.state.Margin, g.state.Y, w, h, false,
		gofpdf.ImageOptions{ImageType: a.ImageType}, 0, "")
	g.state.Y += h
	g.advance(imageGap)
	g.imagesDrawn++
}
