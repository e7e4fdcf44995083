// Package goalplan is the objective-driven reasoning strategy: it maps
// the query intent to a set of standing goals, plans a prioritized list
// of analysis actions, executes them in order and scores how well each
// goal was served.
package goalplan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tagus/supplysense/pkg/intent"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/ontology"
	"github.com/tagus/supplysense/pkg/reflex"
)

// Strategy is the name this planner registers under.
const Strategy = "goal_based"

// Standing goals. The weights are bookkeeping only; scoring never reads
// them.
const (
	GoalOptimizeInventory   = "optimize_inventory"
	GoalImproveDelivery     = "improve_delivery_time"
	GoalReduceCosts         = "reduce_costs"
	GoalMaximizeUtilization = "maximize_utilization"
)

// GoalWeights records the nominal importance of each standing goal.
var GoalWeights = map[string]float64{
	GoalOptimizeInventory:   0.9,
	GoalImproveDelivery:     0.8,
	GoalReduceCosts:         0.7,
	GoalMaximizeUtilization: 0.6,
}

// Action names emitted by the planner.
const (
	ActionGatherBaseData      = "gather_base_data"
	ActionAnalyzeInventory    = "analyze_inventory_optimization"
	ActionAnalyzeDelivery     = "analyze_delivery_performance"
	ActionAnalyzeCapacity     = "analyze_capacity_utilization"
	ActionIdentifyCostSavings = "identify_cost_savings"
)

// PlannedAction is one step of an action plan.
type PlannedAction struct {
	Action   string  `json:"action"`
	Goal     string  `json:"goal"`
	Priority float64 `json:"priority"`
}

// Plan is an ordered action list with a generated identifier.
type Plan struct {
	ID      string          `json:"id"`
	Actions []PlannedAction `json:"actions"`
}

// Planner answers queries by pursuing the standing goals relevant to
// the query intent.
type Planner struct {
	graph  *ontology.Graph
	engine *reflex.Engine

	classifier *intent.Classifier
	logger     logging.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// New creates a goal planner sharing the given reflex engine.
func New(g *ontology.Graph, engine *reflex.Engine, opts ...Option) *Planner {
	p := &Planner{
		graph:      g,
		engine:     engine,
		classifier: intent.NewClassifier(g),
		logger:     logging.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements interfaces.Agent.
func (p *Planner) Name() string {
	return Strategy
}

// ProcessQuery plans, executes and scores a goal-oriented answer.
func (p *Planner) ProcessQuery(ctx context.Context, query string) (*interfaces.QueryResult, error) {
	start := time.Now()

	cls := p.classifier.Classify(query)
	goals := relevantGoals(cls.Intent)

	tr := &interfaces.Trace{}
	tr.Add(
		fmt.Sprintf("Identified relevant goals: %v", goals),
		"Planning actions to achieve goals",
		fmt.Sprintf("Query intent: %s", cls.Intent),
		0.8,
	)

	plan := buildPlan(goals)

	names := make([]string, len(plan.Actions))
	for i, action := range plan.Actions {
		names[i] = action.Action
	}
	tr.Add(
		fmt.Sprintf("Generated action plan with %d steps", len(plan.Actions)),
		"Executing planned actions",
		fmt.Sprintf("Actions: %v", names),
		0.85,
	)

	results := p.execute(plan, cls)
	achievement := evaluateAchievement(goals, results)

	successRate := 0.0
	if len(achievement) > 0 {
		total := 0.0
		for _, score := range achievement {
			total += score
		}
		successRate = total / float64(len(achievement))
	}
	tr.Add(
		fmt.Sprintf("Goal achievement evaluation: %v", achievement),
		"Generating goal-oriented response",
		fmt.Sprintf("Success rate: %.1f%%", successRate*100),
		0.9,
	)

	p.logger.Debug(ctx, "Executed action plan", map[string]interface{}{
		"plan_id": plan.ID,
		"actions": len(plan.Actions),
		"intent":  string(cls.Intent),
	})

	data := results.data()
	data["plan_id"] = plan.ID
	data["action_plan"] = plan.Actions
	data["goal_achievement"] = achievement

	return &interfaces.QueryResult{
		Query:      query,
		Answer:     renderGoalAnswer(cls.Intent, results, achievement),
		Strategy:   Strategy,
		Thoughts:   tr.Steps(),
		Data:       data,
		Confidence: 0.9,
		ElapsedMs:  float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// relevantGoals maps an intent to the standing goals it serves. Intents
// outside the map pursue no goals.
func relevantGoals(in intent.Intent) []string {
	switch in {
	case intent.IntentInventory:
		return []string{GoalOptimizeInventory, GoalReduceCosts}
	case intent.IntentPerformance:
		return []string{GoalImproveDelivery, GoalMaximizeUtilization}
	case intent.IntentOrderStatus:
		return []string{GoalImproveDelivery}
	case intent.IntentCapacity:
		return []string{GoalMaximizeUtilization, GoalOptimizeInventory}
	default:
		return nil
	}
}

// buildPlan always opens with the base data gathering step, adds one
// fixed analysis action per relevant goal and orders by priority,
// highest first.
func buildPlan(goals []string) Plan {
	actions := []PlannedAction{
		{Action: ActionGatherBaseData, Goal: "information_gathering", Priority: 1.0},
	}

	for _, goal := range goals {
		switch goal {
		case GoalOptimizeInventory:
			actions = append(actions, PlannedAction{Action: ActionAnalyzeInventory, Goal: goal, Priority: 0.9})
		case GoalImproveDelivery:
			actions = append(actions, PlannedAction{Action: ActionAnalyzeDelivery, Goal: goal, Priority: 0.8})
		case GoalMaximizeUtilization:
			actions = append(actions, PlannedAction{Action: ActionAnalyzeCapacity, Goal: goal, Priority: 0.7})
		case GoalReduceCosts:
			actions = append(actions, PlannedAction{Action: ActionIdentifyCostSavings, Goal: goal, Priority: 0.6})
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority > actions[j].Priority
	})

	return Plan{ID: uuid.New().String(), Actions: actions}
}

// execute runs the planned actions strictly in order.
func (p *Planner) execute(plan Plan, cls intent.Classification) *executionResults {
	results := &executionResults{}

	for _, action := range plan.Actions {
		switch action.Action {
		case ActionGatherBaseData:
			p.gatherBaseData(cls, results)
		case ActionAnalyzeInventory:
			results.InventoryOptimization = p.analyzeInventoryOptimization()
		case ActionAnalyzeDelivery:
			results.Delivery = p.analyzeDeliveryPerformance()
		case ActionAnalyzeCapacity:
			results.Capacity = p.analyzeCapacityUtilization()
		case ActionIdentifyCostSavings:
			results.Cost = p.identifyCostSavings()
		}
	}

	return results
}

// gatherBaseData delegates to the reflex handler matching the intent.
func (p *Planner) gatherBaseData(cls intent.Classification, results *executionResults) {
	switch cls.Intent {
	case intent.IntentInventory:
		report := p.engine.Inventory(cls.Entities, nil)
		results.BaseInventory = report
		results.base = report
	case intent.IntentPerformance:
		results.base = p.engine.Performance()
	case intent.IntentOrderStatus:
		results.base = p.engine.OrderStatus()
	case intent.IntentCapacity:
		results.base = p.engine.Capacity(cls.Entities)
	default:
		results.base = map[string]interface{}{"message": reflex.GeneralHelpMessage}
	}
}

// evaluateAchievement scores each relevant goal against the analysis
// that serves it; a goal whose analysis never ran scores the 0.5
// default.
func evaluateAchievement(goals []string, results *executionResults) map[string]float64 {
	achievement := make(map[string]float64, len(goals))

	for _, goal := range goals {
		switch {
		case goal == GoalOptimizeInventory && results.InventoryOptimization != nil:
			n := float64(len(results.InventoryOptimization.Opportunities))
			achievement[goal] = saturate(n / 10)
		case goal == GoalImproveDelivery && results.Delivery != nil:
			achievement[goal] = results.Delivery.OnTimeRate
		case goal == GoalMaximizeUtilization && results.Capacity != nil:
			avg := results.Capacity.AvgUtilization
			// Deliberately unclamped: far-off utilization scores
			// negative.
			achievement[goal] = 1.0 - abs(avg-0.8)/0.8
		case goal == GoalReduceCosts && results.Cost != nil:
			n := float64(len(results.Cost.Opportunities))
			achievement[goal] = saturate(n / 5)
		default:
			achievement[goal] = 0.5
		}
	}

	return achievement
}

func saturate(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
