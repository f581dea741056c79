package testutil

import (
	"context"
	"fmt"
	"strings"
)

// MockModel is a scripted language model. Each Prompt call consumes the next
// entry of Responses (the last entry repeats); a non-nil Err is returned
// instead when set. ReplyFunc, when set, computes the reply from the data
// fragments and takes precedence over Responses.
type MockModel struct {
	Responses []string
	ReplyFunc func(prompt string, fragments []string) string
	Err       error
	Calls     []MockCall
}

// MockCall records a single Prompt invocation.
type MockCall struct {
	Prompt    string
	Fragments []string
}

// Prompt mocks a model round-trip
func (m *MockModel) Prompt(ctx context.Context, prompt string, fragments ...string) (string, error) {
	m.Calls = append(m.Calls, MockCall{Prompt: prompt, Fragments: fragments})

	if m.Err != nil {
		return "", m.Err
	}
	if m.ReplyFunc != nil {
		return m.ReplyFunc(prompt, fragments), nil
	}
	if len(m.Responses) == 0 {
		return "", nil
	}

	i := len(m.Calls) - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// Name returns the mock model name
func (m *MockModel) Name() string {
	return "mock"
}

// EchoReply answers every "id:text" data line with "id:" + transform(text),
// which lets tests run a full round-trip without scripting ids.
func EchoReply(transform func(string) string) func(string, []string) string {
	return func(_ string, fragments []string) string {
		var out []string
		for _, fragment := range fragments {
			for _, line := range strings.Split(fragment, "\n") {
				id, text, ok := strings.Cut(line, ":")
				if !ok {
					continue
				}
				out = append(out, fmt.Sprintf("%s:%s", id, transform(text)))
			}
		}
		return strings.Join(out, "\n")
	}
}
