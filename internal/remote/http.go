package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/abhisek/trivia/internal/quiz"
)

const (
	// DefaultBaseURL is where the study assistant backend listens locally.
	DefaultBaseURL = "http://localhost:5000/api"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 4 << 20
)

// Config holds connection settings for the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the local development settings.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// HTTPClient implements QuizService, ChatService and StatusService over
// the backend's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var (
	_ QuizService   = (*HTTPClient)(nil)
	_ ChatService   = (*HTTPClient)(nil)
	_ StatusService = (*HTTPClient)(nil)
)

// NewHTTPClient creates a client for cfg.
func NewHTTPClient(cfg Config, opts ...Option) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized backend address.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error) {
	const op = "generate quiz"

	kind := req.QuestionType
	if kind == "" {
		kind = quiz.KindMixed
	}
	prompt := req.Topic.Prompt
	if prompt == "" {
		prompt = string(req.Topic.ID)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := [][2]string{
		{"topic", prompt},
		{"questionType", string(kind)},
		{"questionCount", strconv.Itoa(req.Count)},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("%s: build form: %w", op, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("%s: build form: %w", op, err)
	}

	raw, err := c.do(ctx, op, http.MethodPost, "/chat/quiz", form.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	q, err := quiz.DecodePayload(raw, kind)
	if err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}
	q.Topic = req.Topic.ID
	q.Source = quiz.SourceRemote
	return q, nil
}

type validateBody struct {
	SessionID     string        `json:"sessionId"`
	QuestionIndex int           `json:"questionIndex"`
	UserAnswer    string        `json:"userAnswer"`
	Question      quiz.Question `json:"question"`
	QuestionType  quiz.Kind     `json:"questionType"`
	CorrectAnswer string        `json:"correctAnswer,omitempty"`
}

type validateReply struct {
	IsCorrect        *bool         `json:"isCorrect"`
	Feedback         string        `json:"feedback"`
	FallbackResponse *quiz.Verdict `json:"fallbackResponse"`
}

func (c *HTTPClient) ValidateAnswer(ctx context.Context, req ValidateRequest) (*quiz.Verdict, error) {
	const op = "validate answer"

	payload, err := json.Marshal(validateBody{
		SessionID:     req.SessionID,
		QuestionIndex: req.QuestionIndex,
		UserAnswer:    req.UserAnswer,
		Question:      req.Question,
		QuestionType:  req.QuestionType,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	raw, err := c.do(ctx, op, http.MethodPost, "/chat/validate", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var reply validateReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}

	// The backend degrades on its own by embedding a fallback verdict.
	if reply.FallbackResponse != nil {
		return reply.FallbackResponse, nil
	}
	if reply.IsCorrect == nil && reply.Feedback == "" {
		return nil, &ErrInvalidResponse{Op: op, Err: errors.New("response has neither a verdict nor feedback")}
	}
	return &quiz.Verdict{IsCorrect: reply.IsCorrect, Feedback: reply.Feedback}, nil
}

func (c *HTTPClient) Chat(ctx context.Context, prompt, sessionID string) (*ChatReply, error) {
	const op = "chat"

	payload, err := json.Marshal(map[string]string{"prompt": prompt, "sessionId": sessionID})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	raw, err := c.do(ctx, op, http.MethodPost, "/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var reply ChatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}
	return &reply, nil
}

func (c *HTTPClient) History(ctx context.Context, sessionID string) ([]Exchange, error) {
	const op = "chat history"

	path := "/chat/history?" + url.Values{"sessionId": {sessionID}}.Encode()
	raw, err := c.do(ctx, op, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var out []Exchange
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) Sessions(ctx context.Context) ([]SessionInfo, error) {
	const op = "list sessions"

	raw, err := c.do(ctx, op, http.MethodGet, "/chat/sessions", "", nil)
	if err != nil {
		return nil, err
	}

	var out []SessionInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete session: empty session id")
	}
	_, err := c.do(ctx, "delete session", http.MethodDelete, "/chat/sessions/"+url.PathEscape(id), "", nil)
	return err
}

func (c *HTTPClient) APIStatus(ctx context.Context) (*APIStatus, error) {
	const op = "api status"

	raw, err := c.do(ctx, op, http.MethodGet, "/chat/api-status", "", nil)
	if err != nil {
		return nil, err
	}

	var st APIStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Err: err}
	}
	return &st, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, op, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrServiceUnavailable{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrServiceUnavailable{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ErrServiceUnavailable{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw),
		}
	}
	return raw, nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// serverMessage extracts the backend's {error, details} text.
func serverMessage(raw []byte) string {
	var e struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return truncate(strings.TrimSpace(string(raw)), 200)
	}
	switch {
	case e.Error != "" && e.Details != "":
		return e.Error + ": " + e.Details
	case e.Error != "":
		return e.Error
	}
	return e.Details
}
