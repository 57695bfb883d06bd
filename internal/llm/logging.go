package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// LoggingProvider is a decorator that records every LLM request to stderr.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start).Round(time.Millisecond)

	model := l.inner.ModelID()
	tokens := 0
	if resp != nil {
		model = resp.Model
		tokens = resp.Usage.TotalTokens
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "llm: %s model=%s latency=%s error=%v\n",
			purpose, model, latency, err)
	} else {
		fmt.Fprintf(os.Stderr, "llm: %s model=%s latency=%s tokens=%d\n",
			purpose, model, latency, tokens)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
