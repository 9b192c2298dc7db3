// Package extract turns URL and PDF inputs into the plain text the scoring
// core consumes. The core itself never performs I/O; this package is the
// input-side collaborator.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/credence-io/credence/pkg/credence/internalerr"
)

// noiseSelectors are removed before content extraction.
const noiseSelectors = `nav, footer, .ads, .advertisement, .sidebar, [class*="ad-"], [id*="ad-"], script, style`

// articleSelectors are tried in order to locate the main article body.
var articleSelectors = []string{
	"article", ".article", ".post-content", ".entry-content", ".content", "#content", "main",
}

// minParagraphLength skips boilerplate fragments.
const minParagraphLength = 20

// Article is plain text extracted from an HTML page.
type Article struct {
	Title  string
	Source string
	Text   string
}

// FromHTML extracts the readable article text from an HTML document.
// sourceHost is the host the page came from, included in the text header.
func FromHTML(r io.Reader, sourceHost string) (Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Article{}, fmt.Errorf("parse html: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No title found"
	}

	container := doc.Selection
	for _, sel := range articleSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			container = found
			break
		}
	}

	var parts []string
	for i := 1; i <= 6; i++ {
		container.Find(fmt.Sprintf("h%d", i)).Each(func(_ int, h *goquery.Selection) {
			if text := strings.TrimSpace(h.Text()); text != "" {
				parts = append(parts, "Heading: "+text)
			}
		})
	}
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); len(text) > minParagraphLength {
			parts = append(parts, text)
		}
	})

	text := strings.Join(parts, "\n\n")
	if text == "" {
		// Last resort: every paragraph on the page.
		var fallback []string
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			if t := strings.TrimSpace(p.Text()); t != "" {
				fallback = append(fallback, t)
			}
		})
		text = strings.Join(fallback, " ")
	}
	if text == "" {
		return Article{}, fmt.Errorf("%w: no content found in page", internalerr.ErrExtractFailed)
	}

	if sourceHost == "" {
		sourceHost = "Unknown source"
	}

	return Article{
		Title:  title,
		Source: sourceHost,
		Text:   fmt.Sprintf("Source: %s\nTitle: %s\n\n%s", sourceHost, title, text),
	}, nil
}
