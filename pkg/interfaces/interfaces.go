// Package interfaces defines the shared contracts between the supplysense
// packages. Keeping them here avoids import cycles between the graph, the
// classifier and the individual reasoning strategies.
package interfaces

import (
	"context"
	"time"
)

// Agent is anything that can answer a natural-language query about the
// supply-chain graph and explain how it got there.
type Agent interface {
	// Name returns the strategy name of the agent (e.g. "reflex").
	Name() string

	// ProcessQuery answers a single query. Implementations run to
	// completion synchronously; the returned result always carries the
	// full reasoning trace.
	ProcessQuery(ctx context.Context, query string) (*QueryResult, error)
}

// ContextMemory is a rolling record of recently processed queries. The
// default implementation is an in-process capped list; a Redis-backed
// implementation exists for callers that want the memory shared across
// processes.
type ContextMemory interface {
	// Append records one processed query. Implementations cap their
	// retention; older entries are dropped silently.
	Append(ctx context.Context, entry ContextEntry) error

	// Recent returns up to n entries, most recent last.
	Recent(ctx context.Context, n int) ([]ContextEntry, error)
}

// ContextEntry is a single remembered query.
type ContextEntry struct {
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
	Entities  []string  `json:"entities"`
}

// Thought is a single recorded reasoning step.
type Thought struct {
	Step        int     `json:"step"`
	Thought     string  `json:"thought"`
	Action      string  `json:"action"`
	Observation string  `json:"observation"`
	Confidence  float64 `json:"confidence"`
}

// Trace is an ordered list of reasoning steps. It is explanation only:
// nothing reads it back for control flow.
type Trace struct {
	steps []Thought
}

// Add appends a reasoning step, numbering it after the existing ones.
// Add on a nil trace is a no-op, so a strategy can reuse another
// strategy's handlers without inheriting their steps.
func (t *Trace) Add(thought, action, observation string, confidence float64) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, Thought{
		Step:        len(t.steps) + 1,
		Thought:     thought,
		Action:      action,
		Observation: observation,
		Confidence:  confidence,
	})
}

// Steps returns the recorded steps in order.
func (t *Trace) Steps() []Thought {
	return t.steps
}

// QueryResult is the answer to one query.
type QueryResult struct {
	// Query is the original query text.
	Query string `json:"query"`

	// Answer is the rendered natural-language answer.
	Answer string `json:"answer"`

	// Strategy is the name of the agent that produced the answer.
	Strategy string `json:"strategy"`

	// Thoughts is the reasoning trace recorded while answering.
	Thoughts []Thought `json:"thoughts"`

	// Data is the structured result the answer was rendered from.
	Data map[string]interface{} `json:"data"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`

	// ElapsedMs is the wall-clock processing time in milliseconds.
	ElapsedMs float64 `json:"execution_time_ms"`
}
