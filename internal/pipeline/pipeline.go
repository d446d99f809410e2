// Package pipeline orchestrates one query end to end: data context build,
// model call, tiered interpretation, consistency validation. The stages run
// strictly in sequence; only the model call suspends.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datachat-cli/internal/ai"
	"github.com/KaramelBytes/datachat-cli/internal/datacontext"
	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
	"github.com/KaramelBytes/datachat-cli/internal/validate"
)

// Engine runs queries against a model runtime. It is stateless across
// requests and safe for concurrent use; construct once at startup and share.
type Engine struct {
	Runtime     ai.Runtime
	Builder     *datacontext.Builder
	Validator   *validate.Validator
	Model       string
	MaxTokens   int
	Temperature float64
}

// New returns an Engine with default builder and validator settings.
func New(rt ai.Runtime, model string) *Engine {
	return &Engine{
		Runtime:     rt,
		Builder:     datacontext.NewBuilder(),
		Validator:   validate.New(validate.DefaultOvershootFactor),
		Model:       model,
		Temperature: 0.1,
	}
}

// Outcome is the full record of one query. RawReply is preserved on every
// path that reached the model, including parse failures and rejections, so
// callers can show it for diagnosis.
type Outcome struct {
	ID          uuid.UUID         `json:"id"`
	Question    string            `json:"question"`
	ContextText string            `json:"-"`
	RawReply    string            `json:"raw_reply,omitempty"`
	Usage       ai.Usage          `json:"usage"`
	Result      *interpret.Result `json:"-"`
	Verdict     validate.Verdict  `json:"-"`
}

// Ask runs the pipeline for one question. When the model replied but the
// reply could not be interpreted, the returned Outcome is still populated
// (with RawReply) alongside a *interpret.ParseError; a validation rejection
// is not an error, it is carried in Outcome.Verdict. Ask never retries.
func (e *Engine) Ask(ctx context.Context, ds *dataset.Dataset, question string) (*Outcome, error) {
	out := &Outcome{ID: uuid.New(), Question: question}

	out.ContextText = e.Builder.Build(ds).Render()

	req := ai.GenerateRequest{
		Model:       e.Model,
		Messages:    ai.BuildPrompt(out.ContextText, question),
		MaxTokens:   e.MaxTokens,
		Temperature: e.Temperature,
	}
	resp, err := e.Runtime.Generate(ctx, req)
	if err != nil {
		return out, fmt.Errorf("model call: %w", err)
	}
	out.RawReply = strings.TrimSpace(resp.Content())
	out.Usage = resp.Usage

	res, err := interpret.Interpret(out.RawReply)
	if err != nil {
		return out, err
	}
	out.Result = res
	out.Verdict = e.Validator.Validate(res, ds)
	return out, nil
}
