package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KaramelBytes/datachat-cli/internal/ai"
	"github.com/KaramelBytes/datachat-cli/internal/dataset"
)

// loadDataset ingests a CSV/TSV/XLSX file, printing non-fatal cleanup
// warnings to stderr.
func loadDataset(path, sheetName string, sheetIndex, maxRows int) (*dataset.Dataset, error) {
	opt := dataset.Options{MaxRows: maxRows}
	var (
		ds    *dataset.Dataset
		warns []string
		err   error
	)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		ds, warns, err = dataset.ReadXLSX(path, sheetName, sheetIndex, opt)
	} else {
		ds, warns, err = dataset.ReadCSV(path, opt)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	return ds, nil
}

// newRuntime selects a model backend from config/flags.
func newRuntime(provider string) (ai.Runtime, error) {
	if provider == "" && cfg != nil {
		provider = cfg.DefaultProvider
	}
	timeout := 60 * time.Second
	if cfg != nil && cfg.HTTPTimeoutSec > 0 {
		timeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
	}
	switch provider {
	case ai.ProviderOllama, ai.ProviderLocal:
		host := ""
		if cfg != nil {
			host = cfg.OllamaHost
			if cfg.OllamaTimeoutSec > 0 {
				timeout = time.Duration(cfg.OllamaTimeoutSec) * time.Second
			}
		}
		return ai.NewOllamaClient(host, timeout), nil
	case "", ai.ProviderOpenRouter:
		apiKey := os.Getenv("DATACHAT_API_KEY")
		if apiKey == "" && cfg != nil {
			apiKey = cfg.APIKey
		}
		retryMax, baseMs, maxMs := 3, 500, 4000
		if cfg != nil {
			if cfg.RetryMaxAttempts > 0 {
				retryMax = cfg.RetryMaxAttempts
			}
			if cfg.RetryBaseDelayMs > 0 {
				baseMs = cfg.RetryBaseDelayMs
			}
			if cfg.RetryMaxDelayMs > 0 {
				maxMs = cfg.RetryMaxDelayMs
			}
		}
		return ai.NewClient(apiKey, timeout, retryMax,
			time.Duration(baseMs)*time.Millisecond, time.Duration(maxMs)*time.Millisecond), nil
	}
	return nil, fmt.Errorf("unsupported provider: %s (use openrouter or ollama)", provider)
}
