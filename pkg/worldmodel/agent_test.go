package worldmodel

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/supplysense/pkg/intent"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/memory"
	"github.com/tagus/supplysense/pkg/ontology"
	"github.com/tagus/supplysense/pkg/reflex"
)

func modelGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	g := ontology.NewGraph()

	require.NoError(t, g.AddEntity(&ontology.Location{
		ID: "loc-warehouse", Name: "Central Warehouse", Type: ontology.LocationWarehouse,
		Address: "12 Dock Road", CapacityM3: 1000,
	}))
	require.NoError(t, g.AddEntity(&ontology.Product{
		ID: "prod-widget", Name: "Widget", VolumeM3: 1.0, SafetyStockLevel: 100,
	}))
	require.NoError(t, g.AddEntity(&ontology.Inventory{
		ID: "inv-1", ProductID: "prod-widget", LocationID: "loc-warehouse",
		Quantity: 150, ReservedQuantity: 20,
	}))

	return g
}

func newTestAgent(t *testing.T, g *ontology.Graph) *Agent {
	t.Helper()
	engine := reflex.New(g, reflex.WithLogger(logging.Noop()))
	return New(g, engine, WithLogger(logging.Noop()))
}

func TestReorderRecommendation(t *testing.T) {
	g := modelGraph(t)
	a := newTestAgent(t, g)

	tests := []struct {
		name      string
		productID string
		available int
		want      string
	}{
		{name: "well stocked", productID: "prod-widget", available: 130, want: ReorderOK},
		{name: "at safety stock", productID: "prod-widget", available: 100, want: ReorderOK},
		{name: "below safety stock", productID: "prod-widget", available: 70, want: ReorderSoon},
		{name: "below half safety stock", productID: "prod-widget", available: 40, want: ReorderUrgent},
		{name: "unknown product", productID: "prod-nope", available: 40, want: ReorderNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.reorderRecommendation(tt.productID, tt.available))
		})
	}
}

func TestProcessQueryEnrichesInventory(t *testing.T) {
	g := modelGraph(t)
	a := newTestAgent(t, g)

	result, err := a.ProcessQuery(context.Background(), "What is the inventory level at Central Warehouse?")
	require.NoError(t, err)

	assert.Equal(t, Strategy, result.Strategy)
	assert.Equal(t, 0.85, result.Confidence)

	items, ok := result.Data["inventory"].([]*reflex.InventoryItem)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, 130, items[0].Available)
	assert.Equal(t, DemandLow, items[0].DemandPattern)
	assert.Equal(t, StockTrendStable, items[0].StockTrend)
	assert.Equal(t, ReorderOK, items[0].ReorderRecommendation)

	assert.Contains(t, result.Answer, "found 1 inventory records")
	assert.NotContains(t, result.Answer, "urgent")
}

func TestProcessQueryFlagsUrgentReorders(t *testing.T) {
	g := modelGraph(t)
	require.NoError(t, g.AddEntity(&ontology.Inventory{
		ID: "inv-2", ProductID: "prod-widget", LocationID: "loc-warehouse",
		Quantity: 45, ReservedQuantity: 10, // available 35 < 50
	}))
	a := newTestAgent(t, g)

	result, err := a.ProcessQuery(context.Background(), "What are the stock levels?")
	require.NoError(t, err)

	assert.Contains(t, result.Answer, "WARNING: 1 items need urgent reordering: Widget at Central Warehouse")
}

func TestDemandClassification(t *testing.T) {
	g := modelGraph(t)
	for i := 0; i < 6; i++ {
		require.NoError(t, g.AddEntity(&ontology.Order{
			ID:                fmt.Sprintf("ord-%d", i),
			ProductQuantities: map[string]int{"prod-widget": 1},
		}))
	}

	assert.Equal(t, DemandMedium, classifyDemand(g, "prod-widget"))
	assert.Equal(t, DemandLow, classifyDemand(g, "prod-other"))

	for i := 6; i < 11; i++ {
		require.NoError(t, g.AddEntity(&ontology.Order{
			ID:                fmt.Sprintf("ord-%d", i),
			ProductQuantities: map[string]int{"prod-widget": 1},
		}))
	}
	assert.Equal(t, DemandHigh, classifyDemand(g, "prod-widget"))
}

func TestStockSnapshot(t *testing.T) {
	g := modelGraph(t)
	require.NoError(t, g.AddEntity(&ontology.Inventory{
		ID: "inv-2", ProductID: "prod-widget", LocationID: "loc-other",
		Quantity: 50, ReservedQuantity: 10,
	}))

	snap := stockSnapshot(g, "prod-widget")
	assert.Equal(t, 200, snap.TotalStock)
	assert.Equal(t, 170, snap.AvailableStock)
	assert.Equal(t, 2, snap.LocationsCount)
}

func TestEfficiencyScore(t *testing.T) {
	tests := []struct {
		name     string
		quantity int // product volume 1 m³ in a 1000 m³ location
		want     float64
	}{
		{name: "peak at optimum", quantity: 800, want: 1.0},
		{name: "half of optimum", quantity: 400, want: 0.5},
		{name: "empty", quantity: 0, want: 0.0},
		{name: "above optimum", quantity: 900, want: 0.5},
		{name: "full", quantity: 1000, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ontology.NewGraph()
			require.NoError(t, g.AddEntity(&ontology.Location{ID: "loc-1", Name: "Hub", CapacityM3: 1000}))
			require.NoError(t, g.AddEntity(&ontology.Product{ID: "prod-1", Name: "Widget", VolumeM3: 1}))
			require.NoError(t, g.AddEntity(&ontology.Inventory{
				ID: "inv-1", ProductID: "prod-1", LocationID: "loc-1", Quantity: tt.quantity,
			}))

			assert.InDelta(t, tt.want, EfficiencyScore(g, "loc-1"), 1e-9)
		})
	}
}

func TestAssessNetworkHealth(t *testing.T) {
	g := ontology.NewGraph()
	require.NoError(t, g.AddEntity(&ontology.Location{ID: "loc-1", Name: "Hub", CapacityM3: 1000}))

	for i := 0; i < 10; i++ {
		status := ontology.OrderPending
		if i < 7 {
			status = ontology.OrderShipped
		}
		require.NoError(t, g.AddEntity(&ontology.Order{ID: fmt.Sprintf("ord-%d", i), Status: status}))
	}

	health := AssessNetworkHealth(g)
	assert.InDelta(t, 0.7, health.OrderFulfillmentRate, 1e-9)
	assert.InDelta(t, 0.0, health.AvgUtilization, 1e-9)
	assert.InDelta(t, 0.0, health.OnTimeDeliveryRate, 1e-9)
	assert.InDelta(t, 0.7/3, health.OverallHealthScore, 1e-9)
	assert.Equal(t, HealthNeedsAttention, health.HealthStatus)
}

func TestAssessNetworkHealthEmptyGraph(t *testing.T) {
	health := AssessNetworkHealth(ontology.NewGraph())
	assert.Equal(t, 0.0, health.OverallHealthScore)
	assert.Equal(t, HealthNeedsAttention, health.HealthStatus)
}

func TestUtilizationHistoryCapped(t *testing.T) {
	g := modelGraph(t)
	a := newTestAgent(t, g)

	for i := 0; i < maxHistorySamples+20; i++ {
		a.refreshModel()
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	assert.Len(t, a.locations["loc-warehouse"].history, maxHistorySamples)
}

func TestLocationTrends(t *testing.T) {
	g := modelGraph(t)
	a := newTestAgent(t, g)

	// Seed a rising history by hand instead of going through
	// refreshModel.
	a.mu.Lock()
	a.locations["loc-warehouse"].history = []UtilizationSample{
		{Timestamp: time.Now(), Utilization: 0.10},
		{Timestamp: time.Now(), Utilization: 0.20},
	}
	a.mu.Unlock()

	trends, increasing := a.locationTrends()
	require.Contains(t, trends, "Central Warehouse")
	assert.Equal(t, "increasing", trends["Central Warehouse"].Trend)
	assert.InDelta(t, 0.15, trends["Central Warehouse"].AvgUtilization, 1e-9)
	assert.Equal(t, []string{"Central Warehouse"}, increasing)

	// A flat history counts as decreasing.
	a.mu.Lock()
	a.locations["loc-warehouse"].history = []UtilizationSample{
		{Timestamp: time.Now(), Utilization: 0.20},
		{Timestamp: time.Now(), Utilization: 0.20},
	}
	a.mu.Unlock()

	trends, increasing = a.locationTrends()
	assert.Equal(t, "decreasing", trends["Central Warehouse"].Trend)
	assert.Empty(t, increasing)
}

func TestRelatedContext(t *testing.T) {
	g := modelGraph(t)
	buf := memory.NewContextBuffer(10)
	engine := reflex.New(g, reflex.WithLogger(logging.Noop()))
	a := New(g, engine, WithLogger(logging.Noop()), WithMemory(buf))
	ctx := context.Background()

	require.NoError(t, buf.Append(ctx, interfaces.ContextEntry{
		Query: "old query", Entities: []string{"Central Warehouse"},
	}))
	require.NoError(t, buf.Append(ctx, interfaces.ContextEntry{
		Query: "unrelated", Entities: []string{"Harbor Depot"},
	}))

	related := a.relatedContext(ctx, "capacity of central warehouse")
	require.Len(t, related, 1)
	assert.Equal(t, "old query", related[0].Query)
}

func TestProcessQueryRecordsContext(t *testing.T) {
	g := modelGraph(t)
	buf := memory.NewContextBuffer(10)
	engine := reflex.New(g, reflex.WithLogger(logging.Noop()))
	a := New(g, engine, WithLogger(logging.Noop()), WithMemory(buf))
	ctx := context.Background()

	_, err := a.ProcessQuery(ctx, "inventory level at Central Warehouse")
	require.NoError(t, err)

	entries, err := buf.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inventory_query", entries[0].Intent)
	assert.Contains(t, entries[0].Entities, "Central Warehouse")
}

func TestProcessQueryPerformanceAnswer(t *testing.T) {
	g := modelGraph(t)
	a := newTestAgent(t, g)

	result, err := a.ProcessQuery(context.Background(), "What is the performance of the network?")
	require.NoError(t, err)

	assert.Contains(t, result.Answer, "Supply Chain Health Status:")
	assert.Contains(t, result.Data, "network_health")
	assert.Contains(t, result.Data, "location_trends")
}

func TestEnrichedLocations(t *testing.T) {
	g := modelGraph(t)
	require.NoError(t, g.AddEntity(&ontology.Location{
		ID: "loc-store", Name: "Downtown Store", Type: ontology.LocationRetailStore, CapacityM3: 200,
	}))
	g.AddRelationship("origin", "shp-1", "loc-warehouse", nil)
	g.AddRelationship("destination", "shp-1", "loc-store", nil)

	a := newTestAgent(t, g)
	report := a.enrichedLocations(intent.Entities{Locations: []string{"Central Warehouse"}})

	require.Len(t, report.Locations, 1)
	assert.Equal(t, 1, report.Locations[0].ConnectedLocations)
	// 150 m³ used of 1000 m³: utilization 0.15, efficiency 0.15/0.8.
	assert.InDelta(t, 0.1875, report.Locations[0].PerformanceScore, 1e-9)
}
