// Package preview renders response bodies for display according to their
// media type. Rendering never fails: input that does not parse is returned
// unchanged.
package preview

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Render returns a display form of body for the given media type.
func Render(mediaType, body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}
	switch kind(mediaType) {
	case "json":
		return renderJSON(body)
	case "xml":
		return renderXML(body)
	case "html":
		return renderHTML(body)
	default:
		return body
	}
}

func kind(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	switch {
	case mt == "application/json", strings.HasSuffix(mt, "+json"):
		return "json"
	case mt == "application/xml", mt == "text/xml", strings.HasSuffix(mt, "+xml"):
		return "xml"
	case mt == "text/html":
		return "html"
	default:
		return "text"
	}
}

func renderJSON(body string) string {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return body
	}
	return out.String()
}

func renderXML(body string) string {
	decoder := xml.NewDecoder(strings.NewReader(body))
	var out bytes.Buffer
	encoder := xml.NewEncoder(&out)
	encoder.Indent("", "  ")
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return body
		}
		// whitespace between elements is replaced by the encoder's indentation
		if data, ok := token.(xml.CharData); ok && len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		if err := encoder.EncodeToken(xml.CopyToken(token)); err != nil {
			return body
		}
	}
	if err := encoder.Flush(); err != nil {
		return body
	}
	return out.String()
}

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"pre": true, "table": true, "ul": true, "ol": true, "blockquote": true,
}

// renderHTML reduces a document to its title and visible text.
func renderHTML(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
	}

	title := ""
	if n := findElement(doc, "title"); n != nil {
		title = collapse(nodeText(n))
	}

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := collapse(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteString(" ")
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}
	walk(doc)
	flush()

	var out strings.Builder
	if title != "" {
		out.WriteString("# " + title + "\n\n")
	}
	out.WriteString(strings.Join(lines, "\n"))
	return strings.TrimRight(out.String(), "\n")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
