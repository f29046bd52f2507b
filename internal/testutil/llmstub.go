package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/tempo/internal/llm"
)

// ScriptedLLM is an llm.Client whose responses are scripted per task type.
// Each Generate call pops the next response for its task; running out of
// script is a test failure surfaced as an error.
type ScriptedLLM struct {
	mu        sync.Mutex
	scripts   map[llm.TaskType][]string
	failures  map[llm.TaskType]error
	Calls     []llm.GenerateRequest
	available bool
}

// NewScriptedLLM creates an empty scripted client.
func NewScriptedLLM() *ScriptedLLM {
	return &ScriptedLLM{
		scripts:   make(map[llm.TaskType][]string),
		failures:  make(map[llm.TaskType]error),
		available: true,
	}
}

// Script appends responses for the given task, returned in order.
func (s *ScriptedLLM) Script(task llm.TaskType, responses ...string) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[task] = append(s.scripts[task], responses...)
	return s
}

// FailWith makes every call for the given task return err instead of a
// scripted response.
func (s *ScriptedLLM) FailWith(task llm.TaskType, err error) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[task] = err
	return s
}

// ClearFailure removes a scripted failure for the given task.
func (s *ScriptedLLM) ClearFailure(task llm.TaskType) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, task)
	return s
}

func (s *ScriptedLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, req)

	if err, ok := s.failures[req.Task]; ok {
		return nil, err
	}

	queue := s.scripts[req.Task]
	if len(queue) == 0 {
		return nil, fmt.Errorf("scripted llm: no response left for task %q", req.Task)
	}
	next := queue[0]
	s.scripts[req.Task] = queue[1:]

	return &llm.GenerateResponse{Text: next, Model: "scripted"}, nil
}

func (s *ScriptedLLM) Available(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// CallCount returns how many Generate calls were made for the given task.
func (s *ScriptedLLM) CallCount(task llm.TaskType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, call := range s.Calls {
		if call.Task == task {
			n++
		}
	}
	return n
}
