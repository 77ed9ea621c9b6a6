package parser

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// PlainText strips markup from a rich-text fragment and returns the visible
// text with whitespace collapsed. Diary content is stored as editor HTML
// ("<p>Went hiking today...</p>"), so this is what the title generator sees.
func PlainText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

// ArticleText extracts the readable body from a full HTML document.
// Falls back to PlainText when readability finds nothing, which is the
// usual case for short editor fragments.
func ArticleText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return strings.Join(strings.Fields(article.TextContent), " "), nil
	}
	return PlainText(htmlStr)
}
