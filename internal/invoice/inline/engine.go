// Package inline compiles a shared stylesheet into per-element inline styles,
// producing a snapshot of a rendered fragment that is visually self-contained:
// every element carries its own resolved property set and no class, selector,
// or external stylesheet is needed to reproduce it.
package inline

import (
	"bytes"
	"errors"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// ErrSourceUnavailable is returned when the source fragment is missing or
// carries no element to snapshot. No partial output is produced.
var ErrSourceUnavailable = errors.New("invoice_source_unavailable")

// rootProperties is the property whitelist captured on the fragment root.
var rootProperties = []string{
	"font-family", "color", "background-color", "padding", "max-width", "margin",
}

// descendantProperties is the broader whitelist captured on every descendant.
var descendantProperties = []string{
	"font-family", "font-size", "font-weight", "font-style",
	"color", "background-color", "background",
	"border", "border-top", "border-bottom", "border-left", "border-right",
	"border-collapse",
	"padding", "padding-top", "padding-bottom", "padding-left", "padding-right",
	"margin", "margin-top", "margin-bottom", "margin-left", "margin-right",
	"text-align", "vertical-align", "line-height", "letter-spacing",
	"display", "flex-direction", "justify-content", "align-items", "gap",
	"grid-template-columns",
	"width", "max-width", "min-width", "height",
	"text-transform", "text-decoration",
}

// inheritedProperties flow from a parent's resolved style into children that
// do not declare them, mirroring the cascade's inheritance step.
var inheritedProperties = map[string]bool{
	"font-family":    true,
	"font-size":      true,
	"font-weight":    true,
	"font-style":     true,
	"color":          true,
	"line-height":    true,
	"letter-spacing": true,
	"text-align":     true,
	"text-transform": true,
}

type declaration struct {
	property string
	value    string
}

type simpleSelector struct {
	tag     string
	classes []string
}

// selector is a descendant chain; the last part is the subject.
type selector struct {
	parts       []simpleSelector
	specificity int
}

type styleRule struct {
	sel      selector
	decls    []declaration
	position int
}

// Engine resolves the effective style of each element in a fragment against
// a parsed stylesheet.
type Engine struct {
	rules []styleRule
}

func NewEngine(stylesheet string) (*Engine, error) {
	sheet, err := parser.Parse(stylesheet)
	if err != nil {
		return nil, err
	}

	engine := &Engine{}
	position := 0
	for _, rule := range sheet.Rules {
		if len(rule.Declarations) == 0 {
			continue
		}
		decls := make([]declaration, 0, len(rule.Declarations))
		for _, d := range rule.Declarations {
			prop := strings.ToLower(strings.TrimSpace(d.Property))
			value := strings.TrimSpace(d.Value)
			if prop == "" || value == "" {
				continue
			}
			decls = append(decls, declaration{property: prop, value: value})
		}
		for _, raw := range rule.Selectors {
			sel, ok := parseSelector(raw)
			if !ok {
				continue
			}
			engine.rules = append(engine.rules, styleRule{sel: sel, decls: decls, position: position})
			position++
		}
	}
	return engine, nil
}

// parseSelector understands tags, classes, and descendant chains, which is
// the full selector vocabulary of the invoice stylesheet.
func parseSelector(raw string) (selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, ">+~:[*#") {
		return selector{}, false
	}

	var sel selector
	for _, field := range strings.Fields(raw) {
		var part simpleSelector
		for _, token := range strings.Split(field, ".") {
			if token == "" {
				continue
			}
			if strings.HasPrefix(field, token) && !strings.HasPrefix(field, ".") {
				part.tag = strings.ToLower(token)
				sel.specificity++
			} else {
				part.classes = append(part.classes, token)
				sel.specificity += 10
			}
		}
		sel.parts = append(sel.parts, part)
	}
	if len(sel.parts) == 0 {
		return selector{}, false
	}
	return sel, true
}

type resolvedNode struct {
	node  *html.Node
	style []declaration
}

// Snapshot returns a copy of the fragment in which every element's visual
// appearance is carried by its own style attribute. Class attributes are
// dropped from the output. A fresh snapshot is computed on every call.
func (e *Engine) Snapshot(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", ErrSourceUnavailable
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", ErrSourceUnavailable
	}
	rootSel := doc.Find("body").ChildrenFiltered("*").First()
	if len(rootSel.Nodes) == 0 {
		return "", ErrSourceUnavailable
	}
	root := rootSel.Nodes[0]

	// Resolve the whole tree before mutating it: descendant matching needs
	// the original class attributes of every ancestor.
	var resolved []resolvedNode
	e.resolve(root, nil, nil, rootProperties, &resolved)

	for _, rn := range resolved {
		removeAttr(rn.node, "class")
		if len(rn.style) > 0 {
			setAttr(rn.node, "style", renderDeclarations(rn.style))
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) resolve(n *html.Node, ancestors []simpleSelector, inherited map[string]string, whitelist []string, out *[]resolvedNode) {
	self := describe(n)

	effective := make(map[string]string, len(inherited))
	for prop, value := range inherited {
		effective[prop] = value
	}

	type match struct {
		rule styleRule
	}
	var matches []match
	for _, rule := range e.rules {
		if ruleMatches(rule.sel, self, ancestors) {
			matches = append(matches, match{rule: rule})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].rule, matches[j].rule
		if a.sel.specificity != b.sel.specificity {
			return a.sel.specificity < b.sel.specificity
		}
		return a.position < b.position
	})
	for _, m := range matches {
		for _, d := range m.rule.decls {
			effective[d.property] = d.value
		}
	}

	// A pre-existing style attribute wins over everything from the sheet.
	// The parser treats an unterminated final declaration as valueless, so
	// close the attribute before parsing and drop anything still empty.
	if raw := getAttr(n, "style"); raw != "" {
		if decls, err := parser.ParseDeclarations(raw + ";"); err == nil {
			for _, d := range decls {
				prop := strings.ToLower(strings.TrimSpace(d.Property))
				value := strings.TrimSpace(d.Value)
				if prop == "" || value == "" {
					continue
				}
				effective[prop] = value
			}
		}
	}

	var style []declaration
	for _, prop := range whitelist {
		if value, ok := effective[prop]; ok {
			style = append(style, declaration{property: prop, value: value})
		}
	}
	*out = append(*out, resolvedNode{node: n, style: style})

	childInherited := map[string]string{}
	for prop, value := range effective {
		if inheritedProperties[prop] {
			childInherited[prop] = value
		}
	}
	childAncestors := append(append([]simpleSelector{}, ancestors...), self)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			e.resolve(c, childAncestors, childInherited, descendantProperties, out)
		}
	}
}

func ruleMatches(sel selector, self simpleSelector, ancestors []simpleSelector) bool {
	if !partMatches(sel.parts[len(sel.parts)-1], self) {
		return false
	}
	remaining := sel.parts[:len(sel.parts)-1]
	idx := len(ancestors) - 1
	for i := len(remaining) - 1; i >= 0; i-- {
		found := false
		for idx >= 0 {
			if partMatches(remaining[i], ancestors[idx]) {
				found = true
				idx--
				break
			}
			idx--
		}
		if !found {
			return false
		}
	}
	return true
}

func partMatches(part, node simpleSelector) bool {
	if part.tag != "" && part.tag != node.tag {
		return false
	}
	for _, class := range part.classes {
		if !containsString(node.classes, class) {
			return false
		}
	}
	return true
}

func describe(n *html.Node) simpleSelector {
	return simpleSelector{
		tag:     strings.ToLower(n.Data),
		classes: strings.Fields(getAttr(n, "class")),
	}
}

func renderDeclarations(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
