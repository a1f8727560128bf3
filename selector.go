package grip

import (
	"fmt"
	"strings"
)

// Selector is a compiled element selector. The supported grammar is a CSS
// subset:
//
//	list      = complex { "," complex }
//	complex   = compound { (" " | ">") compound }
//	compound  = [ tag | "*" ] { "#" name | "." class | "[" attr [ "=" value ] "]" }
//
// Attribute values may be quoted with ' or ".
type Selector struct {
	source string
	alts   [][]selectorStep
}

type combinator uint8

const (
	combDescendant combinator = iota
	combChild
)

// selectorStep is one compound selector plus the combinator that links it
// to the step on its left.
type selectorStep struct {
	tag     string
	name    string
	classes []string
	attrs   []attrTest
	comb    combinator
}

type attrTest struct {
	name     string
	value    string
	hasValue bool
}

// CompileSelector parses a selector. An empty string is an error.
func CompileSelector(src string) (*Selector, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("selector: empty")
	}
	sel := &Selector{source: src}
	for _, part := range splitTopLevel(src, ',') {
		steps, err := parseComplex(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", src, err)
		}
		sel.alts = append(sel.alts, steps)
	}
	return sel, nil
}

// MustCompileSelector is like CompileSelector but panics on error.
func MustCompileSelector(src string) *Selector {
	sel, err := CompileSelector(src)
	if err != nil {
		panic("grip: " + err.Error())
	}
	return sel
}

// String returns the selector source.
func (s *Selector) String() string {
	return s.source
}

// selectorCache memoizes compiled selectors for the string helpers.
// Invalid selectors are cached as nil.
var selectorCache = map[string]*Selector{}

func lookupSelector(src string) *Selector {
	if sel, ok := selectorCache[src]; ok {
		return sel
	}
	sel, err := CompileSelector(src)
	if err != nil {
		sel = nil
	}
	selectorCache[src] = sel
	return sel
}

// Match reports whether n matches the selector.
func (s *Selector) Match(n *Node) bool {
	if s == nil || n == nil {
		return false
	}
	for _, steps := range s.alts {
		if matchSteps(n, steps, len(steps)-1) {
			return true
		}
	}
	return false
}

func matchSteps(n *Node, steps []selectorStep, i int) bool {
	if !steps[i].matches(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch steps[i].comb {
	case combChild:
		return n.Parent != nil && matchSteps(n.Parent, steps, i-1)
	default:
		for p := n.Parent; p != nil; p = p.Parent {
			if matchSteps(p, steps, i-1) {
				return true
			}
		}
		return false
	}
}

func (st *selectorStep) matches(n *Node) bool {
	if st.tag != "" && st.tag != "*" && !strings.EqualFold(st.tag, n.Tag) {
		return false
	}
	if st.name != "" && st.name != n.Name {
		return false
	}
	for _, c := range st.classes {
		if !n.HasClass(c) {
			return false
		}
	}
	for _, a := range st.attrs {
		v, ok := n.Attr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// Matches reports whether n matches the selector string. Invalid selectors
// match nothing.
func (n *Node) Matches(selector string) bool {
	return lookupSelector(selector).Match(n)
}

// Closest returns the nearest node, starting with n itself and walking up
// through its ancestors, that matches selector. Returns nil if none does.
func (n *Node) Closest(selector string) *Node {
	sel := lookupSelector(selector)
	if sel == nil {
		return nil
	}
	for p := n; p != nil; p = p.Parent {
		if sel.Match(p) {
			return p
		}
	}
	return nil
}

// Query returns the first descendant of n (depth-first, document order)
// that matches selector, or nil.
func (n *Node) Query(selector string) *Node {
	sel := lookupSelector(selector)
	if sel == nil {
		return nil
	}
	return queryFirst(n, sel)
}

func queryFirst(n *Node, sel *Selector) *Node {
	for _, c := range n.children {
		if sel.Match(c) {
			return c
		}
		if found := queryFirst(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns every descendant of n matching selector in document order.
func (n *Node) QueryAll(selector string) []*Node {
	sel := lookupSelector(selector)
	if sel == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.children {
			if sel.Match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// --- Parsing ---

// splitTopLevel splits s on sep outside brackets and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func parseComplex(s string) ([]selectorStep, error) {
	if s == "" {
		return nil, fmt.Errorf("empty selector in list")
	}
	var steps []selectorStep
	comb := combDescendant
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n':
			i++
			continue
		case '>':
			if len(steps) == 0 {
				return nil, fmt.Errorf("leading combinator")
			}
			comb = combChild
			i++
			continue
		}
		step, next, err := parseCompound(s, i)
		if err != nil {
			return nil, err
		}
		step.comb = comb
		steps = append(steps, step)
		comb = combDescendant
		i = next
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no compound selector")
	}
	return steps, nil
}

func parseCompound(s string, i int) (selectorStep, int, error) {
	var st selectorStep
	start := i
	if i < len(s) && s[i] == '*' {
		st.tag = "*"
		i++
	} else {
		j := scanIdent(s, i)
		st.tag = s[i:j]
		i = j
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			j := scanIdent(s, i+1)
			if j == i+1 {
				return st, i, fmt.Errorf("empty name at %d", i)
			}
			st.name = s[i+1 : j]
			i = j
		case '.':
			j := scanIdent(s, i+1)
			if j == i+1 {
				return st, i, fmt.Errorf("empty class at %d", i)
			}
			st.classes = append(st.classes, s[i+1:j])
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return st, i, fmt.Errorf("unterminated attribute at %d", i)
			}
			at, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return st, i, err
			}
			st.attrs = append(st.attrs, at)
			i += end + 1
		case ' ', '\t', '\n', '>':
			return st, i, nil
		default:
			return st, i, fmt.Errorf("unexpected %q at %d", s[i], i)
		}
	}
	if i == start {
		return st, i, fmt.Errorf("empty compound at %d", i)
	}
	return st, i, nil
}

func parseAttr(body string) (attrTest, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrTest{}, fmt.Errorf("empty attribute name")
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return attrTest{name: name, value: value, hasValue: hasValue}, nil
}

func scanIdent(s string, i int) int {
	for i < len(s) {
		c := s[i]
		if c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			i++
			continue
		}
		break
	}
	return i
}
