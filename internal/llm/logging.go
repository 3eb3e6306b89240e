package llm

import (
	"context"
	"time"

	"github.com/abhisek/trivia/internal/logging"
)

// LoggingProvider logs every model call with its purpose, latency and
// token usage.
type LoggingProvider struct {
	inner Provider
	log   *logging.Logger
}

// WithLogging wraps p with structured logging.
func WithLogging(p Provider, log *logging.Logger) *LoggingProvider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	kv := []any{
		"model", l.inner.ModelID(),
		"purpose", PurposeFrom(ctx),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if req.Schema != nil {
		kv = append(kv, "schema", req.Schema.Name)
	}
	if err != nil {
		l.log.Warn("llm request failed", append(kv, "error", err)...)
		return nil, err
	}

	kv = append(kv,
		"served_by", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
	)
	l.log.Info("llm request", kv...)
	l.log.Debug("llm response body", "purpose", PurposeFrom(ctx), "content", string(resp.Content))
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
