package report

import (
	"strings"

	"golang.org/x/net/html"
)

// Visitor receives streaming tokenizer events. Both the rich-text draw pass
// and the panel height estimator run over this one walker so the two can
// never disagree about what a block of HTML contains.
type Visitor struct {
	OnOpenTag  func(name string, attrs map[string]string)
	OnText     func(text string)
	OnCloseTag func(name string)
}

// WalkHTML tokenizes src and feeds every tag and text node to v. Malformed
// markup is tolerated; the walk simply stops at the end of input.
func WalkHTML(src string, v Visitor) {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if v.OnOpenTag != nil {
				attrs := make(map[string]string, len(tok.Attr))
				for _, a := range tok.Attr {
					attrs[a.Key] = a.Val
				}
				v.OnOpenTag(tok.Data, attrs)
			}
			if tok.Type == html.SelfClosingTagToken && v.OnCloseTag != nil {
				v.OnCloseTag(tok.Data)
			}
		case html.TextToken:
			if v.OnText != nil {
				v.OnText(string(z.Text()))
			}
		case html.EndTagToken:
			if v.OnCloseTag != nil {
				name, _ := z.TagName()
				v.OnCloseTag(string(name))
			}
		}
	}
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "tr": true, "blockquote": true, "section": true,
}

func isBlockTag(name string) bool { return blockTags[name] }

// extractText flattens src to plain text. Block-level tags become newlines,
// runs of whitespace collapse to single spaces, and every <img> is replaced
// by whatever onImage returns for its src attribute (empty string drops it).
func extractText(src string, onImage func(imgSrc string) string) string {
	var b strings.Builder
	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
	WalkHTML(src, Visitor{
		OnOpenTag: func(name string, attrs map[string]string) {
			if name == "img" {
				if onImage != nil {
					if ph := onImage(attrs["src"]); ph != "" {
						b.WriteString(" " + ph + " ")
					}
				}
				return
			}
			if isBlockTag(name) {
				newline()
			}
		},
		OnText: func(text string) {
			fields := strings.Fields(text)
			if len(fields) == 0 {
				return
			}
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") && !strings.HasSuffix(b.String(), " ") {
				b.WriteString(" ")
			}
			b.WriteString(strings.Join(fields, " "))
		},
		OnCloseTag: func(name string) {
			if isBlockTag(name) {
				newline()
			}
		},
	})
	return strings.TrimSpace(b.String())
}
