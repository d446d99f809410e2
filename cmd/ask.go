package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/KaramelBytes/datachat-cli/internal/datacontext"
	"github.com/KaramelBytes/datachat-cli/internal/interpret"
	"github.com/KaramelBytes/datachat-cli/internal/pipeline"
	"github.com/KaramelBytes/datachat-cli/internal/render"
	"github.com/KaramelBytes/datachat-cli/internal/utils"
	"github.com/KaramelBytes/datachat-cli/internal/validate"
	"github.com/spf13/cobra"
)

var (
	askModel       string
	askProvider    string
	askSheetName   string
	askSheetIndex  int
	askMaxRows     int
	askExportPath  string
	askShowContext bool
	askTimeoutSec  int
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Ask a question about a CSV/XLSX dataset",
	Long: `Ask builds a bounded textual summary of the dataset, sends it with your
question to the configured model, then parses and validates the structured
reply before rendering it. Replies the data cannot plausibly support are
rejected with the reason and the raw model output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, question := args[0], args[1]

		ds, err := loadDataset(path, askSheetName, askSheetIndex, askMaxRows)
		if err != nil {
			return err
		}

		rt, err := newRuntime(askProvider)
		if err != nil {
			return err
		}
		model := askModel
		if model == "" && cfg != nil {
			model = cfg.DefaultModel
		}
		eng := pipeline.New(rt, model)
		if cfg != nil {
			eng.MaxTokens = cfg.MaxTokens
			eng.Temperature = cfg.Temperature
			eng.Builder = &datacontext.Builder{
				SampleThreshold: cfg.SampleThreshold,
				WindowSize:      cfg.SampleWindow,
			}
			eng.Validator = validate.New(cfg.OvershootFactor)
		}

		ctx := context.Background()
		if askTimeoutSec > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(askTimeoutSec)*time.Second)
			defer cancel()
		}

		out, err := eng.Ask(ctx, ds, question)
		if askShowContext && out != nil && out.ContextText != "" {
			fmt.Fprintf(os.Stderr, "--- data context (%d tokens est.) ---\n%s---\n",
				utils.CountTokens(out.ContextText), out.ContextText)
		}
		if err != nil {
			var perr *interpret.ParseError
			if errors.As(err, &perr) {
				fmt.Fprintf(os.Stderr, "✗ Could not interpret the model reply: %v\n", perr.Err)
				fmt.Fprintf(os.Stderr, "Raw reply:\n%s\n", perr.RawReply)
				fmt.Fprintln(os.Stderr, "Try rephrasing the question.")
				os.Exit(1)
			}
			return err
		}

		if debug {
			fmt.Fprintf(os.Stderr, "query %s: %d prompt + %d completion tokens\n",
				out.ID, out.Usage.PromptTokens, out.Usage.CompletionTokens)
		}

		if !out.Verdict.Accepted {
			fmt.Fprintf(os.Stderr, "✗ Reply rejected: %s\n", out.Verdict.Reason)
			fmt.Fprintf(os.Stderr, "Raw reply:\n%s\n", out.RawReply)
			fmt.Fprintln(os.Stderr, "Try rephrasing the question.")
			os.Exit(1)
		}

		if askJSON {
			b, err := utils.PrettyJSON(map[string]any{
				"id":       out.ID,
				"question": out.Question,
				"kind":     out.Result.Kind,
				"reply":    out.RawReply,
			})
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		} else if err := render.Render(os.Stdout, out.Result); err != nil {
			return err
		}

		if askExportPath != "" {
			if out.Result.Kind != interpret.KindTable {
				fmt.Fprintln(os.Stderr, "⚠ Warning: --export only applies to table results")
			} else if err := exportTable(out.Result, askExportPath); err != nil {
				return err
			} else {
				fmt.Printf("✓ Exported table to %s\n", askExportPath)
			}
		}
		return nil
	},
}

func exportTable(res *interpret.Result, path string) error {
	ds, err := render.TableDataset(res.Table)
	if err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	var buf bytes.Buffer
	if err := ds.WriteCSV(&buf); err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "", "model to use (overrides config)")
	askCmd.Flags().StringVar(&askProvider, "provider", "", "model provider: openrouter or ollama (overrides config)")
	askCmd.Flags().StringVar(&askSheetName, "sheet-name", "", "XLSX sheet name (default first sheet)")
	askCmd.Flags().IntVar(&askSheetIndex, "sheet-index", 0, "XLSX sheet index, 1-based")
	askCmd.Flags().IntVar(&askMaxRows, "max-rows", 0, "cap ingested rows (default from config)")
	askCmd.Flags().StringVar(&askExportPath, "export", "", "write a table result to this CSV path")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the data context sent to the model")
	askCmd.Flags().IntVar(&askTimeoutSec, "timeout", 0, "overall deadline for the model call in seconds")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the outcome as JSON instead of rendering")
	rootCmd.AddCommand(askCmd)
}
