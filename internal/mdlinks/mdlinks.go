// Package mdlinks extracts link destinations from markdown for reporting.
// It is an analysis API over the written output; it never modifies content.
package mdlinks

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// ExtractLinks parses a markdown body and collects link-like constructs.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// Report summarizes the links of one written document.
type Report struct {
	Total    int
	Relative int
}

// Summarize counts the extracted links and how many remained relative
// (neither scheme-qualified, site-absolute, mail, nor anchor-only). After an
// absolutize pass a non-zero Relative count indicates a rewrite miss worth
// surfacing.
func Summarize(body []byte) Report {
	links := ExtractLinks(body)
	r := Report{Total: len(links)}
	for _, l := range links {
		if isRelative(l.Destination) {
			r.Relative++
		}
	}
	return r
}

func isRelative(dest string) bool {
	if dest == "" {
		return false
	}
	if strings.Contains(dest, "://") ||
		strings.HasPrefix(dest, "mailto:") ||
		strings.HasPrefix(dest, "#") ||
		strings.HasPrefix(dest, "/") {
		return false
	}
	return true
}
