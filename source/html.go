package source

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/c360studio/salience/corpus"
)

// yearRe matches the first plausible four-digit year in a date string.
var yearRe = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// articleExtractor turns a saved HTML article page into a corpus
// document: readability strips boilerplate, the remaining article body
// is converted to markdown-flavored plain text, and the publication
// year is read from the page's metadata.
type articleExtractor struct {
	converter *md.Converter
}

func newArticleExtractor() *articleExtractor {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &articleExtractor{converter: converter}
}

// extract reads one HTML article file.
func (e *articleExtractor) extract(path string) (corpus.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return corpus.Document{}, err
	}

	pageURL := &url.URL{Scheme: "file", Path: path}
	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return corpus.Document{}, fmt.Errorf("extract article: %w", err)
	}

	content := article.TextContent
	if article.Content != "" {
		if markdown, err := e.converter.ConvertString(article.Content); err == nil {
			content = markdown
		}
	}

	return corpus.Document{
		Year:    extractYear(data),
		Content: strings.TrimSpace(content),
	}, nil
}

// extractYear walks the page metadata for a publication date and
// returns its year, or 0 when no date is found (classified Unknown
// downstream).
func extractYear(data []byte) int {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return 0
	}

	var candidates []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var key, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property", "name", "itemprop":
						key = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				switch key {
				case "article:published_time", "date", "publish-date", "pubdate", "datepublished", "og:pubdate":
					candidates = append(candidates, content)
				}
			case "time":
				for _, attr := range n.Attr {
					if attr.Key == "datetime" {
						candidates = append(candidates, attr.Val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, c := range candidates {
		if m := yearRe.FindString(c); m != "" {
			year, _ := strconv.Atoi(m)
			return year
		}
	}
	return 0
}
