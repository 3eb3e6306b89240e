package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "question-gen")
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"feedback":"no verdict"}`)})

	_, err := mock.Generate(context.Background(), UserPrompt("", "grade", verdictSchema, 64))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if string(invalid.Content) != `{"feedback":"no verdict"}` {
		t.Fatalf("expected offending content to be kept, got %s", invalid.Content)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: ProviderConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: ProviderConfig{APIKey: "sk-test"}}, false},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: ProviderConfig{APIKey: "g-test"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnv(fakeEnv(map[string]string{
		"TRIVIA_LLM_PROVIDER":   "openai",
		"TRIVIA_OPENAI_API_KEY": "sk-env",
		"TRIVIA_OPENAI_MODEL":   "gpt-4.1-mini",
	}))

	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai, got %q", cfg.Provider)
	}
	sel := cfg.Selected()
	if sel.APIKey != "sk-env" || sel.Model != "gpt-4.1-mini" {
		t.Fatalf("unexpected selected config: %+v", sel)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("unrelated provider changed: %+v", cfg.Anthropic)
	}
}

func TestConfig_Discover(t *testing.T) {
	cfg := DefaultConfig()
	ok := cfg.Discover(fakeEnv(map[string]string{
		"OPENAI_API_KEY":    "sk-openai",
		"ANTHROPIC_API_KEY": "sk-ant",
	}))
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("expected openai to win over anthropic, got %q", cfg.Provider)
	}

	// A configured key is never replaced.
	cfg = DefaultConfig()
	cfg.Anthropic.APIKey = "sk-file"
	if !cfg.Discover(fakeEnv(map[string]string{"GEMINI_API_KEY": "g"})) {
		t.Fatal("expected configured provider to be usable")
	}
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("expected anthropic to stay selected, got %q", cfg.Provider)
	}

	cfg = DefaultConfig()
	if cfg.Discover(fakeEnv(nil)) {
		t.Fatal("expected no provider without keys")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}
