package scraper

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseWorldOnline extracts the online player table from a tibia.com world
// page: character name mapped to level.
func ParseWorldOnline(r io.Reader) (map[string]int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	players := make(map[string]int)
	var traverse func(*html.Node)

	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if isPlayerRow(n) {
				name, level := extractPlayerData(n)
				if name != "" && level > 0 {
					players[name] = level
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)
	return players, nil
}

func isPlayerRow(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && (attr.Val == "Odd" || attr.Val == "Even") {
			return true
		}
	}
	return false
}

func extractPlayerData(tr *html.Node) (string, int) {
	var cells []*html.Node

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, c)
		}
	}

	if len(cells) < 2 {
		return "", 0
	}

	return extractPlayerName(cells[0]), extractLevel(cells[1])
}

func extractPlayerName(td *html.Node) string {
	for c := td.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "a" {
			continue
		}
		for _, attr := range c.Attr {
			if attr.Key == "href" && strings.Contains(attr.Val, "name=") {
				return extractNameFromURL(attr.Val)
			}
		}
	}
	return ""
}

var nameParamRe = regexp.MustCompile(`[?&]name=([^&]+)`)

func extractNameFromURL(link string) string {
	matches := nameParamRe.FindStringSubmatch(link)
	if len(matches) < 2 {
		return ""
	}

	decoded, err := url.QueryUnescape(matches[1])
	if err != nil {
		return ""
	}
	return decoded
}

func extractLevel(td *html.Node) int {
	text := strings.TrimSpace(getTextContent(td))

	level, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return level
}

func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(getTextContent(c))
	}
	return text.String()
}
