package ai

import (
	"strings"
	"testing"
)

func TestBuildPromptStructure(t *testing.T) {
	msgs := BuildPrompt("[DATASET]\nRows: 3\n", "Which product sold the most?")
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("roles = %s, %s", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[1].Content, "Rows: 3") {
		t.Error("user message missing data context")
	}
	if !strings.Contains(msgs[1].Content, "Which product sold the most?") {
		t.Error("user message missing question")
	}
}

func TestSystemPromptContract(t *testing.T) {
	sys := BuildPrompt("ctx", "q")[0].Content
	for _, want := range []string{
		`{"answer":`,
		`{"table":`,
		`{"bar":`,
		`{"line":`,
		`{"pie":`,
		`{"scatter":`,
		"Never invent or assume values",
		"numbers without quotes",
		"equal lengths",
	} {
		if !strings.Contains(sys, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestSystemPromptWorkedExamples(t *testing.T) {
	// Every variant carries a correct and an incorrect worked example.
	sys := BuildPrompt("ctx", "q")[0].Content
	pairs := map[string][2]string{
		"answer": {
			`Correct:   {"answer": "Category X appears 5 times in the data."}`,
			`Incorrect: {"answer": "Category X appears roughly 4-6 times."}`,
		},
		"table": {
			`Correct:   {"table": {"columns": ["product", "sales"], "data": [["Product A", 150], ["Product B", 200]]}}`,
			`Incorrect: {"table": {"columns": ["product", "sales"], "data": [["Product A", 150], ["Product B"]]}}`,
		},
		"bar": {
			`Correct:   {"bar": {"columns": ["Product A", "Product B"], "data": [150, 200]}}`,
			`Incorrect: {"bar": {"columns": ["Product A", "Product B"], "data": ["150", "200"]}}`,
		},
		"line": {
			`Correct:   {"line": {"columns": ["Jan", "Feb"], "data": [10.5, 12]}}`,
			`Incorrect: {"line": {"columns": ["Jan", "Feb"], "data": ["10.5", "12"]}}`,
		},
		"pie": {
			`Correct:   {"pie": {"labels": ["North", "South"], "values": [62.5, 37.5]}}`,
			`Incorrect: {"pie": {"labels": ["North", "South"], "values": [62.5]}}`,
		},
		"scatter": {
			`Correct:   {"scatter": {"x": [1.2, 3.4], "y": [5.6, 7.8], "labels": ["p1", "p2"]}}`,
			`Incorrect: {"scatter": {"x": [1.2, 3.4, 5.0], "y": [5.6, 7.8], "labels": ["p1", "p2"]}}`,
		},
	}
	for variant, pair := range pairs {
		if !strings.Contains(sys, pair[0]) {
			t.Errorf("%s: missing correct worked example", variant)
		}
		if !strings.Contains(sys, pair[1]) {
			t.Errorf("%s: missing incorrect worked example", variant)
		}
	}
}
