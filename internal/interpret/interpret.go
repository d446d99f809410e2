package interpret

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports that no tier could decode the reply. RawReply carries
// the original text for display and manual recovery; it is never dropped.
type ParseError struct {
	RawReply string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not interpret model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// strategies are attempted in order; the first success wins.
var strategies = []struct {
	name string
	fn   func(string) (*Result, error)
}{
	{"strict", parseStrict},
	{"extract", parseExtract},
}

// Interpret decodes a raw model reply into a Result. On failure the returned
// error is a *ParseError wrapping the last tier's cause.
func Interpret(raw string) (*Result, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{RawReply: raw, Err: fmt.Errorf("empty reply")}
	}
	var lastErr error
	for _, s := range strategies {
		res, err := s.fn(trimmed)
		if err == nil {
			return res, nil
		}
		lastErr = fmt.Errorf("%s parse: %w", s.name, err)
	}
	return nil, &ParseError{RawReply: raw, Err: lastErr}
}

// variantKeys is the closed set of recognized top-level keys.
var variantKeys = []Kind{KindAnswer, KindBar, KindPie, KindLine, KindScatter, KindTable}

// parseStrict treats the whole text as one JSON document with exactly one
// recognized top-level key. Zero keys, several variant keys, or any unknown
// key is ambiguous intent and fails the tier rather than being resolved.
func parseStrict(text string) (*Result, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, err
	}
	var kind Kind
	var payload json.RawMessage
	matched := 0
	for _, k := range variantKeys {
		if raw, ok := top[string(k)]; ok {
			matched++
			kind = k
			payload = raw
		}
	}
	switch {
	case matched == 0:
		return nil, fmt.Errorf("no recognized result key (want one of answer, bar, pie, line, scatter, table)")
	case matched > 1:
		return nil, fmt.Errorf("ambiguous reply: %d result keys present", matched)
	case len(top) > matched:
		return nil, fmt.Errorf("unexpected extra top-level keys alongside %q", kind)
	}
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, fmt.Errorf("%s payload is null", kind)
	}
	return decodeVariant(kind, payload)
}

func decodeVariant(kind Kind, payload json.RawMessage) (*Result, error) {
	res := &Result{Kind: kind}
	var err error
	switch kind {
	case KindAnswer:
		err = json.Unmarshal(payload, &res.Answer)
	case KindBar:
		res.Bar = &Series{}
		err = json.Unmarshal(payload, res.Bar)
	case KindLine:
		res.Line = &Series{}
		err = json.Unmarshal(payload, res.Line)
	case KindPie:
		res.Pie = &Pie{}
		err = json.Unmarshal(payload, res.Pie)
	case KindScatter:
		res.Scatter = &Scatter{}
		err = json.Unmarshal(payload, res.Scatter)
	case KindTable:
		res.Table = &Table{}
		err = json.Unmarshal(payload, res.Table)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return res, nil
}

var innerObjectRe = regexp.MustCompile(`\{[^{}]*\}`)

// parseExtract recovers a result from a reply that wrapped the JSON document
// in prose, markdown fences, or commentary. Candidates are tried smallest
// first: fenced code blocks, innermost non-nested objects, balanced-brace
// substrings, and finally the greedy first-to-last-brace span. No further
// repair is attempted beyond this brace matching.
func parseExtract(text string) (*Result, error) {
	var candidates []string
	candidates = append(candidates, fencedBlocks(text)...)
	candidates = append(candidates, innerObjectRe.FindAllString(text, -1)...)
	candidates = append(candidates, balancedObjects(text)...)
	if start := strings.IndexByte(text, '{'); start >= 0 {
		if end := strings.LastIndexByte(text, '}'); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	seen := make(map[string]bool, len(candidates))
	var lastErr error
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if cand == "" || seen[cand] {
			continue
		}
		seen[cand] = true
		res, err := parseStrict(cand)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no JSON object found in reply")
	}
	return nil, lastErr
}

// fencedBlocks returns the bodies of ```json and plain ``` fences that look
// like JSON objects.
func fencedBlocks(text string) []string {
	var out []string
	rest := text
	for {
		idx := strings.Index(rest, "```")
		if idx < 0 {
			return out
		}
		rest = rest[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		end := strings.Index(rest, "```")
		if end < 0 {
			return out
		}
		body := strings.TrimSpace(rest[:end])
		if strings.HasPrefix(body, "{") {
			out = append(out, body)
		}
		rest = rest[end+3:]
	}
}

// balancedObjects returns every top-level balanced {...} substring found by
// depth counting.
func balancedObjects(text string) []string {
	var out []string
	depth := 0
	start := -1
	for i, ch := range text {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, text[start:i+1])
				start = -1
			}
		}
	}
	return out
}
