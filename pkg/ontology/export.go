package ontology

import "time"

// ExportMetadata summarizes an exported graph.
type ExportMetadata struct {
	TotalEntities     int       `json:"total_entities"`
	RelationshipKinds []string  `json:"relationship_types"`
	ExportedAt        time.Time `json:"export_timestamp"`
}

// ExportedGraph is the serialized form of the whole graph, for
// collaborators that persist or display it.
type ExportedGraph struct {
	Entities      map[string]map[string]interface{} `json:"entities"`
	Relationships map[string][]Edge                 `json:"relationships"`
	Metadata      ExportMetadata                    `json:"metadata"`
}

// ExportAll serializes every entity and every relationship edge. The
// result shares no mutable state with the graph except the edge property
// maps, which callers must treat as read-only.
func (g *Graph) ExportAll() *ExportedGraph {
	entities := make(map[string]map[string]interface{}, len(g.order))
	for _, id := range g.order {
		entities[id] = g.entities[id].Export()
	}

	relationships := make(map[string][]Edge, len(g.kinds))
	for _, kind := range g.kinds {
		edges := make([]Edge, len(g.relationships[kind]))
		copy(edges, g.relationships[kind])
		relationships[kind] = edges
	}

	return &ExportedGraph{
		Entities:      entities,
		Relationships: relationships,
		Metadata: ExportMetadata{
			TotalEntities:     len(g.order),
			RelationshipKinds: g.RelationshipKinds(),
			ExportedAt:        time.Now(),
		},
	}
}
