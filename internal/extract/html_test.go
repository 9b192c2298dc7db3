package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/credence-io/credence/pkg/credence/internalerr"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Quarterly Budget Review</title></head>
<body>
<nav>Home | Politics | Sports</nav>
<article>
  <h1>Council Approves Budget</h1>
  <p>The council approved the new budget after a lengthy public debate held on Tuesday evening.</p>
  <p>Short.</p>
  <p>Officials said the revised plan keeps spending flat while protecting core services.</p>
</article>
<div class="ads">Buy things now!</div>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestFromHTMLExtractsArticle(t *testing.T) {
	article, err := FromHTML(strings.NewReader(samplePage), "example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}

	if article.Title != "Quarterly Budget Review" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.Source != "example.com" {
		t.Errorf("Source = %q", article.Source)
	}
	if !strings.HasPrefix(article.Text, "Source: example.com\nTitle: Quarterly Budget Review\n\n") {
		t.Errorf("Text header missing: %q", article.Text[:min(80, len(article.Text))])
	}
	if !strings.Contains(article.Text, "Heading: Council Approves Budget") {
		t.Error("heading line missing from extracted text")
	}
	if !strings.Contains(article.Text, "lengthy public debate") {
		t.Error("paragraph text missing")
	}
}

func TestFromHTMLSkipsNoiseAndShortFragments(t *testing.T) {
	article, err := FromHTML(strings.NewReader(samplePage), "example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}

	for _, noise := range []string{"Home | Politics", "Buy things now", "Copyright 2026", "Short."} {
		if strings.Contains(article.Text, noise) {
			t.Errorf("extracted text should not contain %q", noise)
		}
	}
}

func TestFromHTMLFallbackParagraphs(t *testing.T) {
	// No article container and only short paragraphs: the fallback takes
	// every paragraph on the page.
	page := `<html><head><title>T</title></head><body><p>tiny one</p><p>tiny two</p></body></html>`

	article, err := FromHTML(strings.NewReader(page), "")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(article.Text, "tiny one") || !strings.Contains(article.Text, "tiny two") {
		t.Errorf("fallback text = %q", article.Text)
	}
	if !strings.Contains(article.Text, "Unknown source") {
		t.Errorf("empty host should render as unknown: %q", article.Text)
	}
}

func TestFromHTMLNoContent(t *testing.T) {
	page := `<html><head><title>Empty</title></head><body><script>var x;</script></body></html>`

	_, err := FromHTML(strings.NewReader(page), "example.com")
	if !errors.Is(err, internalerr.ErrExtractFailed) {
		t.Errorf("err = %v, want ErrExtractFailed", err)
	}
}

func TestFromHTMLMissingTitle(t *testing.T) {
	page := `<html><body><article><p>A perfectly reasonable paragraph of article content here.</p></article></body></html>`

	article, err := FromHTML(strings.NewReader(page), "example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if article.Title != "No title found" {
		t.Errorf("Title = %q", article.Title)
	}
}
