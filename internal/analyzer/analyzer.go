package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mcncl/jsonpc/internal/models"
)

// Summary describes the shape of a parsed JSON value
type Summary struct {
	RootKind models.Kind
	// Depth is the number of nested containers on the deepest path; a scalar has depth 0
	Depth int
	// Nodes counts every value, including the root
	Nodes       int
	Counts      map[models.Kind]int
	MaxArrayLen int
	// Keys holds every distinct object key, sorted
	Keys []string
}

// Analyzer walks parsed JSON values and collects a Summary
type Analyzer struct {
	summary Summary
	keys    map[string]struct{}
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks value and returns its summary. Values outside the JSON model
// are reported as an error.
func (a *Analyzer) Analyze(value models.JSONValue) (Summary, error) {
	a.summary = Summary{
		RootKind: models.KindOf(value),
		Counts:   make(map[models.Kind]int),
	}
	a.keys = make(map[string]struct{})

	depth, err := a.analyzeNode(value)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to analyze root node: %w", err)
	}
	a.summary.Depth = depth

	a.summary.Keys = make([]string, 0, len(a.keys))
	for k := range a.keys {
		a.summary.Keys = append(a.summary.Keys, k)
	}
	sort.Strings(a.summary.Keys)

	return a.summary, nil
}

// analyzeNode counts node and its children and returns the container depth below it
func (a *Analyzer) analyzeNode(node models.JSONValue) (int, error) {
	kind := models.KindOf(node)
	if kind == models.KindInvalid {
		return 0, fmt.Errorf("unexpected json value type: %T", node)
	}
	a.summary.Nodes++
	a.summary.Counts[kind]++

	switch v := node.(type) {
	case models.JSONObject:
		deepest := 0
		for key, child := range v {
			a.keys[key] = struct{}{}
			d, err := a.analyzeNode(child)
			if err != nil {
				return 0, fmt.Errorf("key %q: %w", key, err)
			}
			deepest = max(deepest, d)
		}
		return deepest + 1, nil
	case models.JSONArray:
		a.summary.MaxArrayLen = max(a.summary.MaxArrayLen, len(v))
		deepest := 0
		for i, child := range v {
			d, err := a.analyzeNode(child)
			if err != nil {
				return 0, fmt.Errorf("index %d: %w", i, err)
			}
			deepest = max(deepest, d)
		}
		return deepest + 1, nil
	default:
		return 0, nil
	}
}

// String renders the summary as a few human-readable lines
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "root: %s\n", s.RootKind)
	fmt.Fprintf(&sb, "depth: %d\n", s.Depth)
	fmt.Fprintf(&sb, "nodes: %s\n", humanize.Comma(int64(s.Nodes)))

	kinds := []models.Kind{
		models.KindObject, models.KindArray, models.KindString,
		models.KindNumber, models.KindBool, models.KindNull,
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if n := s.Counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	fmt.Fprintf(&sb, "kinds: %s\n", strings.Join(parts, " "))

	if s.Counts[models.KindArray] > 0 {
		fmt.Fprintf(&sb, "longest array: %s\n", humanize.Comma(int64(s.MaxArrayLen)))
	}
	if len(s.Keys) > 0 {
		fmt.Fprintf(&sb, "keys: %s\n", strings.Join(s.Keys, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
