// Package intent maps raw query text to one of a fixed set of intents and
// extracts entity-name mentions using the ontology graph as a gazetteer.
// This is deliberately a pattern table, not a model.
package intent

import (
	"regexp"
	"strings"

	"github.com/tagus/supplysense/pkg/ontology"
)

// Intent is a classification bucket for a query.
type Intent string

const (
	IntentInventory   Intent = "inventory_query"
	IntentLocation    Intent = "location_query"
	IntentOrderStatus Intent = "order_status"
	IntentSupplier    Intent = "supplier_query"
	IntentCapacity    Intent = "capacity_query"
	IntentEmployee    Intent = "employee_query"
	IntentPerformance Intent = "performance_query"
	IntentGeneral     Intent = "general_query"
)

type intentPatterns struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// The table is ordered: classification walks it top to bottom and the
// first matching pattern wins, so earlier intents take priority on
// ambiguous text. Changing the order changes behavior.
var table = []intentPatterns{
	{IntentInventory, compile(
		`how many.*items.*store`, `inventory.*level`, `stock.*level`,
		`quantity.*available`, `items.*in.*store`, `products.*at.*location`,
	)},
	{IntentLocation, compile(
		`where.*located`, `which.*location`, `find.*location`,
		`address.*of`, `coordinates.*of`,
	)},
	{IntentOrderStatus, compile(
		`order.*status`, `track.*order`, `delivery.*status`,
		`shipment.*status`, `when.*arrive`,
	)},
	{IntentSupplier, compile(
		`who.*supplies`, `supplier.*of`, `vendor.*for`,
		`source.*of`, `manufacturer.*of`,
	)},
	{IntentCapacity, compile(
		`capacity.*of`, `how much.*can.*store`, `maximum.*capacity`,
		`storage.*space`, `warehouse.*size`,
	)},
	{IntentEmployee, compile(
		`who.*works.*at`, `manager.*of`, `employees.*at`,
		`staff.*at`, `personnel.*at`,
	)},
	{IntentPerformance, compile(
		`performance.*of`, `efficiency.*of`, `utilization.*of`,
		`throughput.*of`, `productivity.*of`,
	)},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Entities holds the entity names mentioned in a query, bucketed by
// class. Matching is a case-insensitive substring test against every
// named entity in the graph, so short or common names can produce false
// positives; that tradeoff is accepted.
type Entities struct {
	Locations []string `json:"locations"`
	Products  []string `json:"products"`
	Suppliers []string `json:"suppliers"`
	Customers []string `json:"customers"`
	Employees []string `json:"employees"`
}

// All returns every extracted name as a flat list.
func (e Entities) All() []string {
	var out []string
	out = append(out, e.Locations...)
	out = append(out, e.Products...)
	out = append(out, e.Suppliers...)
	out = append(out, e.Customers...)
	out = append(out, e.Employees...)
	return out
}

// Empty reports whether nothing was extracted.
func (e Entities) Empty() bool {
	return len(e.Locations) == 0 && len(e.Products) == 0 && len(e.Suppliers) == 0 &&
		len(e.Customers) == 0 && len(e.Employees) == 0
}

// Classification is the parsed form of one query.
type Classification struct {
	Intent   Intent   `json:"intent"`
	Entities Entities `json:"entities"`
	Query    string   `json:"original_query"`
}

// Classifier classifies query text against the fixed intent table and
// extracts entity mentions from the given graph.
type Classifier struct {
	graph *ontology.Graph
}

// NewClassifier creates a classifier reading names from g.
func NewClassifier(g *ontology.Graph) *Classifier {
	return &Classifier{graph: g}
}

// Classify parses one query.
func (c *Classifier) Classify(query string) Classification {
	return Classification{
		Intent:   classifyIntent(query),
		Entities: c.ExtractEntities(query),
		Query:    query,
	}
}

func classifyIntent(query string) Intent {
	lower := strings.ToLower(query)
	for _, row := range table {
		for _, pattern := range row.patterns {
			if pattern.MatchString(lower) {
				return row.intent
			}
		}
	}
	return IntentGeneral
}

// ExtractEntities scans every named entity in the graph for a
// case-insensitive substring match against the query. O(entities ×
// query length).
func (c *Classifier) ExtractEntities(query string) Entities {
	var entities Entities
	lower := strings.ToLower(query)

	c.graph.Entities(func(e ontology.Entity) bool {
		named, ok := e.(ontology.Named)
		if !ok || named.EntityName() == "" {
			return true
		}
		if !strings.Contains(lower, strings.ToLower(named.EntityName())) {
			return true
		}
		switch e.Class() {
		case ontology.ClassLocation:
			entities.Locations = append(entities.Locations, named.EntityName())
		case ontology.ClassProduct:
			entities.Products = append(entities.Products, named.EntityName())
		case ontology.ClassSupplier:
			entities.Suppliers = append(entities.Suppliers, named.EntityName())
		case ontology.ClassCustomer:
			entities.Customers = append(entities.Customers, named.EntityName())
		case ontology.ClassEmployee:
			entities.Employees = append(entities.Employees, named.EntityName())
		}
		return true
	})

	return entities
}
