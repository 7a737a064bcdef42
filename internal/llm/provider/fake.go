package provider

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"
)

// Fake is a deterministic in-memory provider for tests and offline use.
// It returns canned responses, can simulate latency, and counts calls.
type Fake struct {
	// Response is returned by CreateCompletion.
	Response string
	// Data is returned by CreateStructured.
	Data json.RawMessage
	// Err, when set, is returned by every call.
	Err error
	// Delay is slept (context-aware) before responding, to exercise timeouts.
	Delay time.Duration

	calls atomic.Int64
}

func init() {
	RegisterFactory("fake", func(config map[string]any) (Provider, error) {
		f := &Fake{}
		if data, ok := config["data"].(string); ok {
			f.Data = json.RawMessage(data)
		}
		if resp, ok := config["response"].(string); ok {
			f.Response = resp
		}
		return f, nil
	})
}

// Name returns the provider name.
func (f *Fake) Name() string {
	return "fake"
}

// Calls returns how many requests this fake has served.
func (f *Fake) Calls() int64 {
	return f.calls.Load()
}

func (f *Fake) wait(ctx context.Context) error {
	f.calls.Add(1)
	if f.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return NewProviderError("fake", ErrorCodeTimeout, ctx.Err().Error(), ctx.Err())
	case <-time.After(f.Delay):
		return nil
	}
}

// CreateCompletion returns the canned response.
func (f *Fake) CreateCompletion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return &CompletionResponse{Content: f.Response, FinishReason: "stop"}, nil
}

// CreateStructured returns the canned structured payload.
func (f *Fake) CreateStructured(ctx context.Context, req StructuredRequest) (*StructuredResponse, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	data := f.Data
	if data == nil {
		data = json.RawMessage(`{}`)
	}
	return &StructuredResponse{
		Data:               data,
		CompletionResponse: CompletionResponse{Content: string(data), FinishReason: "stop"},
	}, nil
}
