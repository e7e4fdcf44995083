// Package reflex is the rule-table reasoning strategy: one handler per
// intent, applied directly to the current graph state with no memory
// between queries. The other strategies build on these handlers, so
// they are exported individually alongside the Agent entry point.
package reflex

import (
	"context"
	"fmt"
	"time"

	"github.com/tagus/supplysense/pkg/intent"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/ontology"
)

// Strategy is the name this engine registers under.
const Strategy = "reflex"

// Engine answers queries with condition-action rules over the graph.
// It is stateless between queries and safe for concurrent use once the
// graph is populated.
type Engine struct {
	graph      *ontology.Graph
	classifier *intent.Classifier
	logger     logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a reflex engine over g.
func New(g *ontology.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:      g,
		classifier: intent.NewClassifier(g),
		logger:     logging.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements interfaces.Agent.
func (e *Engine) Name() string {
	return Strategy
}

// ProcessQuery classifies the query and applies the matching rule.
func (e *Engine) ProcessQuery(ctx context.Context, query string) (*interfaces.QueryResult, error) {
	start := time.Now()

	cls := e.classifier.Classify(query)

	tr := &interfaces.Trace{}
	tr.Add(
		fmt.Sprintf("Parsing query: %q", query),
		fmt.Sprintf("Identified intent: %s", cls.Intent),
		fmt.Sprintf("Extracted entities: %v", cls.Entities.All()),
		0.8,
	)

	answer, data, confidence := e.dispatch(cls, tr)

	e.logger.Debug(ctx, "Processed query", map[string]interface{}{
		"strategy":   Strategy,
		"intent":     string(cls.Intent),
		"confidence": confidence,
	})

	return &interfaces.QueryResult{
		Query:      query,
		Answer:     answer,
		Strategy:   Strategy,
		Thoughts:   tr.Steps(),
		Data:       data,
		Confidence: confidence,
		ElapsedMs:  float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// dispatch applies the rule for the classified intent. Recognized
// intents answer with confidence 0.8; anything outside the rule table
// degrades to 0.2 with an error payload.
func (e *Engine) dispatch(cls intent.Classification, tr *interfaces.Trace) (string, map[string]interface{}, float64) {
	switch cls.Intent {
	case intent.IntentInventory:
		r := e.Inventory(cls.Entities, tr)
		return RenderInventoryAnswer(r), map[string]interface{}{"inventory": r.Items, "total_items": r.TotalItems}, 0.8
	case intent.IntentLocation:
		r := e.Locations(cls.Entities, tr)
		return RenderLocationAnswer(r), map[string]interface{}{"locations": r.Locations}, 0.8
	case intent.IntentOrderStatus:
		r := e.OrderStatus()
		return RenderOrderAnswer(r), map[string]interface{}{"orders": r.Orders}, 0.8
	case intent.IntentSupplier:
		r := e.Suppliers()
		return RenderSupplierAnswer(r), map[string]interface{}{"suppliers": r.Suppliers}, 0.8
	case intent.IntentCapacity:
		r := e.Capacity(cls.Entities)
		return RenderCapacityAnswer(r), map[string]interface{}{"capacity_info": r.CapacityInfo}, 0.8
	case intent.IntentEmployee:
		r := e.Employees()
		return RenderEmployeeAnswer(r), map[string]interface{}{"employees": r.Employees}, 0.8
	case intent.IntentPerformance:
		r := e.Performance()
		return RenderPerformanceAnswer(r), map[string]interface{}{"performance": r}, 0.8
	case intent.IntentGeneral:
		return GeneralHelpMessage, map[string]interface{}{"message": GeneralHelpMessage}, 0.8
	default:
		return FallbackMessage, map[string]interface{}{"error": "unknown query type"}, 0.2
	}
}
