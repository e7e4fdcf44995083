// Package worldmodel is the stateful reasoning strategy. It wraps the
// reflex engine with a cached aggregate model of the network
// (utilization history, demand classification, stock snapshots) and a
// rolling context memory, and enriches reflex results with trend and
// recommendation fields.
package worldmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tagus/supplysense/pkg/intent"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/memory"
	"github.com/tagus/supplysense/pkg/ontology"
	"github.com/tagus/supplysense/pkg/reflex"
)

// Strategy is the name this agent registers under.
const Strategy = "world_model"

// Agent answers queries against a cached world model built once at
// construction and refreshed with a utilization sample per location on
// every query.
type Agent struct {
	graph      *ontology.Graph
	engine     *reflex.Engine
	classifier *intent.Classifier
	memory     interfaces.ContextMemory
	logger     logging.Logger

	mu        sync.Mutex
	locations map[string]*locationState
	products  map[string]*productState
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// WithMemory replaces the default in-process context memory.
func WithMemory(m interfaces.ContextMemory) Option {
	return func(a *Agent) {
		a.memory = m
	}
}

// New creates a world-model agent sharing the given reflex engine. The
// demand classifications and stock snapshots are computed here, once;
// utilization history starts empty.
func New(g *ontology.Graph, engine *reflex.Engine, opts ...Option) *Agent {
	a := &Agent{
		graph:      g,
		engine:     engine,
		classifier: intent.NewClassifier(g),
		memory:     memory.NewContextBuffer(memory.DefaultMaxEntries),
		logger:     logging.New(),
		locations:  make(map[string]*locationState),
		products:   make(map[string]*productState),
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, loc := range g.Locations() {
		a.locations[loc.ID] = &locationState{
			name:      loc.Name,
			connected: connectedLocations(g, loc.ID),
		}
	}
	for _, p := range g.Products() {
		a.products[p.ID] = &productState{
			name:          p.Name,
			demandPattern: classifyDemand(g, p.ID),
			stock:         stockSnapshot(g, p.ID),
		}
	}

	return a
}

// Name implements interfaces.Agent.
func (a *Agent) Name() string {
	return Strategy
}

// ProcessQuery refreshes the model, answers with model-enriched data
// and records the query in the context memory.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (*interfaces.QueryResult, error) {
	start := time.Now()

	a.refreshModel()

	cls := a.classifier.Classify(query)
	related := a.relatedContext(ctx, query)

	tr := &interfaces.Trace{}
	tr.Add(
		"Analyzing query with world model context",
		fmt.Sprintf("Intent: %s, related context entries: %d", cls.Intent, len(related)),
		fmt.Sprintf("Relevant entities: %v", cls.Entities.All()),
		0.85,
	)

	answer, data := a.dispatch(cls, tr)
	if len(related) > 0 {
		data["context"] = related
	}

	entry := interfaces.ContextEntry{
		Query:     query,
		Intent:    string(cls.Intent),
		Timestamp: time.Now(),
		Entities:  cls.Entities.All(),
	}
	if err := a.memory.Append(ctx, entry); err != nil {
		a.logger.Warn(ctx, "Failed to record query in context memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &interfaces.QueryResult{
		Query:      query,
		Answer:     answer,
		Strategy:   Strategy,
		Thoughts:   tr.Steps(),
		Data:       data,
		Confidence: 0.85,
		ElapsedMs:  float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// refreshModel appends one utilization sample per location, truncating
// each history to the most recent samples.
func (a *Agent) refreshModel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	for id, state := range a.locations {
		state.history = append(state.history, UtilizationSample{
			Timestamp:   now,
			Utilization: reflex.Utilization(a.graph, id),
		})
		if len(state.history) > maxHistorySamples {
			state.history = state.history[len(state.history)-maxHistorySamples:]
		}
	}
}

// relatedContext returns, from the most recent remembered queries, the
// ones whose extracted entities appear in the new query text.
func (a *Agent) relatedContext(ctx context.Context, query string) []interfaces.ContextEntry {
	entries, err := a.memory.Recent(ctx, contextWindow)
	if err != nil {
		a.logger.Warn(ctx, "Failed to read context memory", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	lower := strings.ToLower(query)
	var related []interfaces.ContextEntry
	for _, entry := range entries {
		for _, name := range entry.Entities {
			if strings.Contains(lower, strings.ToLower(name)) {
				related = append(related, entry)
				break
			}
		}
	}
	return related
}

func (a *Agent) dispatch(cls intent.Classification, tr *interfaces.Trace) (string, map[string]interface{}) {
	switch cls.Intent {
	case intent.IntentInventory:
		r := a.enrichedInventory(cls.Entities, tr)
		return renderInventoryInsights(r), map[string]interface{}{"inventory": r.Items, "total_items": r.TotalItems}
	case intent.IntentPerformance:
		trends, increasing := a.locationTrends()
		health := AssessNetworkHealth(a.graph)
		data := map[string]interface{}{"location_trends": trends, "network_health": health}
		return renderHealthAnswer(health, increasing), data
	case intent.IntentLocation:
		r := a.enrichedLocations(cls.Entities)
		return reflex.RenderLocationAnswer(r), map[string]interface{}{"locations": r.Locations}
	case intent.IntentOrderStatus:
		r := a.engine.OrderStatus()
		return reflex.RenderOrderAnswer(r), map[string]interface{}{"orders": r.Orders}
	case intent.IntentSupplier:
		r := a.engine.Suppliers()
		return reflex.RenderSupplierAnswer(r), map[string]interface{}{"suppliers": r.Suppliers}
	case intent.IntentCapacity:
		r := a.engine.Capacity(cls.Entities)
		return reflex.RenderCapacityAnswer(r), map[string]interface{}{"capacity_info": r.CapacityInfo}
	case intent.IntentEmployee:
		r := a.engine.Employees()
		return reflex.RenderEmployeeAnswer(r), map[string]interface{}{"employees": r.Employees}
	default:
		return reflex.GeneralHelpMessage, map[string]interface{}{"message": reflex.GeneralHelpMessage}
	}
}

// enrichedInventory takes the reflex inventory result and fills in the
// model-derived fields on every item.
func (a *Agent) enrichedInventory(entities intent.Entities, tr *interfaces.Trace) *reflex.InventoryReport {
	tr.Add(
		"Using world model for inventory analysis",
		"Analyzing stock patterns and trends",
		"Considering demand patterns and stock movement",
		0.9,
	)

	report := a.engine.Inventory(entities, nil)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, item := range report.Items {
		productID := a.productIDByName(item.Product)
		if productID == "" {
			item.ReorderRecommendation = ReorderNoData
			continue
		}
		item.DemandPattern = a.products[productID].demandPattern
		item.StockTrend = StockTrendStable
		item.ReorderRecommendation = a.reorderRecommendation(productID, item.Available)
	}
	return report
}

// enrichedLocations adds connectivity and performance fields to the
// reflex location result.
func (a *Agent) enrichedLocations(entities intent.Entities) *reflex.LocationReport {
	report := a.engine.Locations(entities, nil)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, loc := range report.Locations {
		for id, state := range a.locations {
			if state.name == loc.Name {
				loc.ConnectedLocations = len(state.connected)
				loc.PerformanceScore = EfficiencyScore(a.graph, id)
				break
			}
		}
	}
	return report
}

// locationTrends derives the per-location performance view from the
// utilization history. The second return lists, in graph insertion
// order, the names whose utilization is trending up.
func (a *Agent) locationTrends() (map[string]LocationTrend, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	trends := make(map[string]LocationTrend)
	var increasing []string

	for _, loc := range a.graph.Locations() {
		state, ok := a.locations[loc.ID]
		if !ok || len(state.history) == 0 {
			continue
		}

		recent := state.history
		if len(recent) > recentWindow {
			recent = recent[len(recent)-recentWindow:]
		}

		total := 0.0
		for _, sample := range recent {
			total += sample.Utilization
		}

		trend := "decreasing"
		if recent[len(recent)-1].Utilization > recent[0].Utilization {
			trend = "increasing"
		}
		if trend == "increasing" {
			increasing = append(increasing, state.name)
		}

		trends[state.name] = LocationTrend{
			AvgUtilization:  total / float64(len(recent)),
			Trend:           trend,
			EfficiencyScore: EfficiencyScore(a.graph, loc.ID),
		}
	}

	return trends, increasing
}

func (a *Agent) productIDByName(name string) string {
	for id, state := range a.products {
		if state.name == name {
			return id
		}
	}
	return ""
}

// reorderRecommendation compares available stock against the product's
// safety stock level.
func (a *Agent) reorderRecommendation(productID string, available int) string {
	product := a.graph.Product(productID)
	if product == nil {
		return ReorderNoData
	}
	switch {
	case float64(available) < float64(product.SafetyStockLevel)*0.5:
		return ReorderUrgent
	case available < product.SafetyStockLevel:
		return ReorderSoon
	default:
		return ReorderOK
	}
}

func renderInventoryInsights(r *reflex.InventoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on current supply chain analysis, found %d inventory records. ", len(r.Items))

	var urgent []*reflex.InventoryItem
	for _, item := range r.Items {
		if item.ReorderRecommendation == ReorderUrgent {
			urgent = append(urgent, item)
		}
	}
	if len(urgent) > 0 {
		fmt.Fprintf(&b, "WARNING: %d items need urgent reordering: ", len(urgent))
		shown := urgent
		if len(shown) > 3 {
			shown = shown[:3]
		}
		parts := make([]string, len(shown))
		for i, item := range shown {
			parts[i] = fmt.Sprintf("%s at %s", item.Product, item.Location)
		}
		b.WriteString(strings.Join(parts, ", "))
		if len(urgent) > 3 {
			fmt.Fprintf(&b, " and %d more.", len(urgent)-3)
		}
	}

	return b.String()
}

func renderHealthAnswer(health NetworkHealth, increasing []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Supply Chain Health Status: %s (Overall Score: %.1f%%). ",
		strings.ToUpper(health.HealthStatus), health.OverallHealthScore*100)
	fmt.Fprintf(&b, "Average utilization: %.1f%%, Order fulfillment: %.1f%%, On-time delivery: %.1f%%.",
		health.AvgUtilization*100, health.OrderFulfillmentRate*100, health.OnTimeDeliveryRate*100)

	if len(increasing) > 0 {
		shown := increasing
		if len(shown) > 3 {
			shown = shown[:3]
		}
		fmt.Fprintf(&b, " Locations with increasing utilization: %s.", strings.Join(shown, ", "))
	}

	return b.String()
}
