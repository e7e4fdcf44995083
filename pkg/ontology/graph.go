// Package ontology holds the typed entity-relationship graph at the heart
// of supplysense. The graph is populated once by a collaborator (see
// pkg/datagen) and then read many times by the reasoning strategies; it
// performs no I/O of its own.
package ontology

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentifier is returned by AddEntity when an entity with the
// same identifier was already inserted. Identifiers are immutable and
// never reused, so a collision is always a caller bug.
var ErrDuplicateIdentifier = errors.New("ontology: duplicate entity identifier")

// Edge is one directed relationship between two entity identifiers.
// Neither endpoint is checked for existence: edges are weak references
// like every other cross-entity link in the model.
type Edge struct {
	Source     string                 `json:"source"`
	Target     string                 `json:"target"`
	Properties map[string]interface{} `json:"properties"`
}

// Graph owns all entities and all typed relationship edges.
//
// Concurrency: the graph is read-mostly. Population must complete before
// any query is issued; after that, concurrent readers are safe. It is the
// caller's job to serialize any later writes behind an exclusive lock.
type Graph struct {
	entities map[string]Entity
	order    []string // entity insertion order

	relationships map[string][]Edge
	kinds         []string // kind first-registration order, drives FindPath expansion
}

// Relationship kinds registered on every new graph. The set is open:
// AddRelationship accepts kinds not listed here and registers them on
// first use.
var defaultKinds = []string{
	"supplies",
	"contains",
	"stores",
	"transports",
	"produces",
	"manages",
	"operates",
	"located_at",
	"fulfills",
	"works_at",
}

// NewGraph creates an empty graph with the default relationship kinds
// registered.
func NewGraph() *Graph {
	g := &Graph{
		entities:      make(map[string]Entity),
		relationships: make(map[string][]Edge),
	}
	for _, kind := range defaultKinds {
		g.relationships[kind] = nil
		g.kinds = append(g.kinds, kind)
	}
	return g
}

// AddEntity inserts e keyed by its identifier.
func (g *Graph) AddEntity(e Entity) error {
	id := e.EntityID()
	if id == "" {
		return fmt.Errorf("ontology: entity of class %s has no identifier", e.Class())
	}
	if _, exists := g.entities[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, id)
	}
	g.entities[id] = e
	g.order = append(g.order, id)
	return nil
}

// AddRelationship appends a directed edge to the list for kind, creating
// the kind if it is new. Endpoints are not checked for existence.
func (g *Graph) AddRelationship(kind, sourceID, targetID string, properties map[string]interface{}) {
	if _, known := g.relationships[kind]; !known {
		g.kinds = append(g.kinds, kind)
	}
	if properties == nil {
		properties = map[string]interface{}{}
	}
	g.relationships[kind] = append(g.relationships[kind], Edge{
		Source:     sourceID,
		Target:     targetID,
		Properties: properties,
	})
}

// Entity returns the entity with the given identifier, if any.
func (g *Graph) Entity(id string) (Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Len returns the number of entities in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Entities calls fn for every entity in insertion order, stopping early
// if fn returns false.
func (g *Graph) Entities(fn func(Entity) bool) {
	for _, id := range g.order {
		if !fn(g.entities[id]) {
			return
		}
	}
}

// QueryByType returns all entities whose class tag equals class, in
// insertion order. Linear in the total number of entities.
func (g *Graph) QueryByType(class string) []Entity {
	var out []Entity
	for _, id := range g.order {
		if e := g.entities[id]; e.Class() == class {
			out = append(out, e)
		}
	}
	return out
}

// Products returns all products in insertion order.
func (g *Graph) Products() []*Product {
	var out []*Product
	for _, e := range g.QueryByType(ClassProduct) {
		out = append(out, e.(*Product))
	}
	return out
}

// Locations returns all locations in insertion order.
func (g *Graph) Locations() []*Location {
	var out []*Location
	for _, e := range g.QueryByType(ClassLocation) {
		out = append(out, e.(*Location))
	}
	return out
}

// Suppliers returns all suppliers in insertion order.
func (g *Graph) Suppliers() []*Supplier {
	var out []*Supplier
	for _, e := range g.QueryByType(ClassSupplier) {
		out = append(out, e.(*Supplier))
	}
	return out
}

// Orders returns all orders in insertion order.
func (g *Graph) Orders() []*Order {
	var out []*Order
	for _, e := range g.QueryByType(ClassOrder) {
		out = append(out, e.(*Order))
	}
	return out
}

// InventoryRecords returns all inventory records in insertion order.
func (g *Graph) InventoryRecords() []*Inventory {
	var out []*Inventory
	for _, e := range g.QueryByType(ClassInventory) {
		out = append(out, e.(*Inventory))
	}
	return out
}

// Shipments returns all shipments in insertion order.
func (g *Graph) Shipments() []*Shipment {
	var out []*Shipment
	for _, e := range g.QueryByType(ClassShipment) {
		out = append(out, e.(*Shipment))
	}
	return out
}

// Employees returns all employees in insertion order.
func (g *Graph) Employees() []*Employee {
	var out []*Employee
	for _, e := range g.QueryByType(ClassEmployee) {
		out = append(out, e.(*Employee))
	}
	return out
}

// Vehicles returns all vehicles in insertion order.
func (g *Graph) Vehicles() []*Vehicle {
	var out []*Vehicle
	for _, e := range g.QueryByType(ClassVehicle) {
		out = append(out, e.(*Vehicle))
	}
	return out
}

// Product resolves a product identifier, or nil.
func (g *Graph) Product(id string) *Product {
	if e, ok := g.entities[id]; ok {
		if p, ok := e.(*Product); ok {
			return p
		}
	}
	return nil
}

// Location resolves a location identifier, or nil.
func (g *Graph) Location(id string) *Location {
	if e, ok := g.entities[id]; ok {
		if l, ok := e.(*Location); ok {
			return l
		}
	}
	return nil
}

// Customer resolves a customer identifier, or nil.
func (g *Graph) Customer(id string) *Customer {
	if e, ok := g.entities[id]; ok {
		if c, ok := e.(*Customer); ok {
			return c
		}
	}
	return nil
}

// RelationshipKinds returns the registered kinds in first-registration
// order.
func (g *Graph) RelationshipKinds() []string {
	out := make([]string, len(g.kinds))
	copy(out, g.kinds)
	return out
}

// Relationships returns the edge list for one kind, in insertion order.
func (g *Graph) Relationships(kind string) []Edge {
	return g.relationships[kind]
}

// EntityRelationships returns, for every relationship kind, the edges
// where id appears as source or target. Linear in the total edge count.
func (g *Graph) EntityRelationships(id string) map[string][]Edge {
	out := make(map[string][]Edge, len(g.kinds))
	for _, kind := range g.kinds {
		touching := []Edge{}
		for _, edge := range g.relationships[kind] {
			if edge.Source == id || edge.Target == id {
				touching = append(touching, edge)
			}
		}
		out[kind] = touching
	}
	return out
}

// FindPath runs a breadth-first search from sourceID to targetID,
// treating every relationship kind as a single undirected adjacency.
// Kinds are expanded in registration order and edges in insertion order,
// so the result is deterministic. The returned path is shortest in edge
// count; it is [sourceID] when source equals target, and nil when no
// path exists.
//
// maxDepth bounds the number of nodes in the path under construction,
// not a separate hop budget: maxDepth 3 admits paths of at most three
// nodes, i.e. two edges. See TestFindPathDepthBound.
func (g *Graph) FindPath(sourceID, targetID string, maxDepth int) []string {
	type item struct {
		id   string
		path []string
	}

	queue := []item{{id: sourceID, path: []string{sourceID}}}
	visited := make(map[string]bool)

	for len(queue) > 0 && len(queue[0].path) <= maxDepth {
		current := queue[0]
		queue = queue[1:]

		if current.id == targetID {
			return current.path
		}

		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		for _, kind := range g.kinds {
			for _, edge := range g.relationships[kind] {
				next := ""
				if edge.Source == current.id {
					next = edge.Target
				} else if edge.Target == current.id {
					next = edge.Source
				}
				if next != "" && !visited[next] {
					path := make([]string, len(current.path), len(current.path)+1)
					copy(path, current.path)
					queue = append(queue, item{id: next, path: append(path, next)})
				}
			}
		}
	}

	return nil
}
