package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datachat-cli/internal/ai"
	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
	"github.com/KaramelBytes/datachat-cli/internal/pipeline"
)

// stubRuntime replies with a fixed body and records the request it saw.
type stubRuntime struct {
	reply string
	err   error
	last  ai.GenerateRequest
}

func (s *stubRuntime) Generate(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &ai.GenerateResponse{
		Choices: []ai.Choice{{Message: ai.Message{Role: "assistant", Content: s.reply}}},
		Usage:   ai.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}, nil
}

func salesDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]string{"product", "sales"}, [][]dataset.Value{
		{"A", 150.0},
		{"B", 200.0},
		{"A", 50.0},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ds
}

func TestAskHappyPath(t *testing.T) {
	rt := &stubRuntime{reply: `{"answer": "Product B sold the most."}`}
	eng := pipeline.New(rt, "test-model")

	out, err := eng.Ask(context.Background(), salesDataset(t), "Which product sold the most?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !out.Verdict.Accepted {
		t.Fatalf("verdict rejected: %s", out.Verdict.Reason)
	}
	if out.Result.Kind != interpret.KindAnswer {
		t.Fatalf("kind = %q", out.Result.Kind)
	}
	if out.Usage.TotalTokens != 120 {
		t.Errorf("usage = %+v", out.Usage)
	}
	if out.ID == uuid.Nil {
		t.Error("outcome should carry a request id")
	}

	// The model call must carry the rendered data context and the question.
	if rt.last.Model != "test-model" {
		t.Errorf("model = %q", rt.last.Model)
	}
	if len(rt.last.Messages) != 2 || !strings.Contains(rt.last.Messages[1].Content, "product=A, sales=150") {
		t.Errorf("prompt missing row data: %+v", rt.last.Messages)
	}
}

func TestAskParseFailureKeepsRawReply(t *testing.T) {
	rt := &stubRuntime{reply: "I think the answer is probably B."}
	eng := pipeline.New(rt, "test-model")

	out, err := eng.Ask(context.Background(), salesDataset(t), "q")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *interpret.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if out == nil || out.RawReply != "I think the answer is probably B." {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestAskRejectionIsNotAnError(t *testing.T) {
	// 3 rows, 2 distinct products, factor 2: a 7-slice pie exceeds the bound.
	rt := &stubRuntime{reply: `{"pie": {"labels": ["a","b","c","d","e","f","g"], "values": [1,2,3,4,5,6,7]}}`}
	eng := pipeline.New(rt, "test-model")

	out, err := eng.Ask(context.Background(), salesDataset(t), "q")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out.Verdict.Accepted {
		t.Fatal("oversized pie accepted")
	}
	if !strings.Contains(out.Verdict.Reason, "pie chart has 7 data points") {
		t.Errorf("reason = %q", out.Verdict.Reason)
	}
	if out.Result == nil {
		t.Error("rejected outcome should still carry the parsed result")
	}
}

func TestAskModelErrorWrapped(t *testing.T) {
	rt := &stubRuntime{err: errors.New("boom")}
	eng := pipeline.New(rt, "test-model")

	out, err := eng.Ask(context.Background(), salesDataset(t), "q")
	if err == nil || !strings.Contains(err.Error(), "model call: boom") {
		t.Fatalf("err = %v", err)
	}
	if out == nil || out.ContextText == "" {
		t.Fatal("outcome should carry the built context even when the model fails")
	}
}
