package remote

import (
	"context"
	"sync"

	"github.com/abhisek/trivia/internal/quiz"
)

// MockQuiz is a canned GenerateQuiz outcome.
type MockQuiz struct {
	Quiz *quiz.Quiz
	Err  error
}

// MockVerdict is a canned ValidateAnswer outcome.
type MockVerdict struct {
	Verdict *quiz.Verdict
	Err     error
}

// MockClient is a deterministic QuizService for testing.
// It returns canned outcomes in FIFO order and records all requests.
type MockClient struct {
	mu       sync.Mutex
	quizzes  []MockQuiz
	verdicts []MockVerdict

	GenerateCalls []GenerateRequest
	ValidateCalls []ValidateRequest
}

var _ QuizService = (*MockClient)(nil)

// NewMockClient creates an empty MockClient. An empty queue answers with
// ErrServiceUnavailable.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddQuiz queues a GenerateQuiz outcome.
func (m *MockClient) AddQuiz(q *quiz.Quiz, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes = append(m.quizzes, MockQuiz{Quiz: q, Err: err})
	return m
}

// AddVerdict queues a ValidateAnswer outcome.
func (m *MockClient) AddVerdict(v *quiz.Verdict, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts = append(m.verdicts, MockVerdict{Verdict: v, Err: err})
	return m
}

func (m *MockClient) GenerateQuiz(_ context.Context, req GenerateRequest) (*quiz.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls = append(m.GenerateCalls, req)
	if len(m.quizzes) == 0 {
		return nil, &ErrServiceUnavailable{Op: "generate quiz"}
	}
	next := m.quizzes[0]
	m.quizzes = m.quizzes[1:]
	return next.Quiz, next.Err
}

func (m *MockClient) ValidateAnswer(_ context.Context, req ValidateRequest) (*quiz.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValidateCalls = append(m.ValidateCalls, req)
	if len(m.verdicts) == 0 {
		return nil, &ErrServiceUnavailable{Op: "validate answer"}
	}
	next := m.verdicts[0]
	m.verdicts = m.verdicts[1:]
	return next.Verdict, next.Err
}

// GenerateCount returns the number of GenerateQuiz calls made.
func (m *MockClient) GenerateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateCalls)
}

// ValidateCount returns the number of ValidateAnswer calls made.
func (m *MockClient) ValidateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ValidateCalls)
}
