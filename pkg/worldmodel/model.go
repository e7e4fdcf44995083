package worldmodel

import (
	"time"

	"github.com/tagus/supplysense/pkg/ontology"
	"github.com/tagus/supplysense/pkg/reflex"
)

// Demand classification buckets, computed once at construction from how
// many orders mention the product.
const (
	DemandHigh   = "high_demand"
	DemandMedium = "medium_demand"
	DemandLow    = "low_demand"
)

// Reorder recommendations, from available stock against safety stock.
const (
	ReorderUrgent = "urgent_reorder"
	ReorderSoon   = "reorder_soon"
	ReorderOK     = "stock_ok"
	ReorderNoData = "no_data"
)

// StockTrendStable is the only trend ever emitted: no historical series
// exists to compute a real trend from, so this stays a placeholder.
const StockTrendStable = "stable"

// Network health buckets.
const (
	HealthExcellent      = "excellent"
	HealthGood           = "good"
	HealthNeedsAttention = "needs_attention"
)

const (
	maxHistorySamples = 100
	recentWindow      = 10
	contextWindow     = 3
)

// UtilizationSample is one timestamped utilization reading.
type UtilizationSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Utilization float64   `json:"utilization"`
}

// StockSnapshot sums a product's stock across all locations.
type StockSnapshot struct {
	TotalStock     int `json:"total_stock"`
	AvailableStock int `json:"available_stock"`
	LocationsCount int `json:"locations_count"`
}

// LocationTrend is the per-location performance view derived from the
// utilization history.
type LocationTrend struct {
	AvgUtilization  float64 `json:"avg_utilization"`
	Trend           string  `json:"trend"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

// NetworkHealth aggregates utilization, fulfillment and delivery into
// one score.
type NetworkHealth struct {
	OverallHealthScore   float64 `json:"overall_health_score"`
	AvgUtilization       float64 `json:"avg_utilization"`
	OrderFulfillmentRate float64 `json:"order_fulfillment_rate"`
	OnTimeDeliveryRate   float64 `json:"on_time_delivery_rate"`
	HealthStatus         string  `json:"health_status"`
}

type locationState struct {
	name      string
	history   []UtilizationSample
	connected []string
}

type productState struct {
	name          string
	demandPattern string
	stock         StockSnapshot
}

// connectedLocations collects the identifiers reachable from id over
// "origin" and "destination" edges in either direction.
func connectedLocations(g *ontology.Graph, id string) []string {
	seen := map[string]bool{}
	var out []string
	for _, kind := range []string{"origin", "destination"} {
		for _, edge := range g.Relationships(kind) {
			other := ""
			if edge.Source == id {
				other = edge.Target
			} else if edge.Target == id {
				other = edge.Source
			}
			if other != "" && !seen[other] {
				seen[other] = true
				out = append(out, other)
			}
		}
	}
	return out
}

func classifyDemand(g *ontology.Graph, productID string) string {
	count := 0
	for _, order := range g.Orders() {
		if _, ok := order.ProductQuantities[productID]; ok {
			count++
		}
	}
	switch {
	case count > 10:
		return DemandHigh
	case count > 5:
		return DemandMedium
	default:
		return DemandLow
	}
}

func stockSnapshot(g *ontology.Graph, productID string) StockSnapshot {
	var snap StockSnapshot
	for _, inv := range g.InventoryRecords() {
		if inv.ProductID != productID {
			continue
		}
		snap.TotalStock += inv.Quantity
		snap.AvailableStock += inv.Available()
		snap.LocationsCount++
	}
	return snap
}

// EfficiencyScore scores a location's utilization against an optimum of
// 0.8: linear ramp up to the optimum, linear fall-off above it. The
// formula is deliberately unclamped.
func EfficiencyScore(g *ontology.Graph, locationID string) float64 {
	utilization := reflex.Utilization(g, locationID)
	if utilization <= 0.8 {
		return utilization / 0.8
	}
	return 1.0 - (utilization-0.8)/0.2
}

// AssessNetworkHealth computes the unweighted mean of average location
// utilization, order fulfillment rate (shipped or delivered) and
// on-time delivery rate (delivered shipments). Each rate is zero when
// its population is empty.
func AssessNetworkHealth(g *ontology.Graph) NetworkHealth {
	locations := g.Locations()
	orders := g.Orders()
	shipments := g.Shipments()

	avgUtilization := 0.0
	if len(locations) > 0 {
		total := 0.0
		for _, loc := range locations {
			total += reflex.Utilization(g, loc.ID)
		}
		avgUtilization = total / float64(len(locations))
	}

	fulfillmentRate := 0.0
	if len(orders) > 0 {
		fulfilled := 0
		for _, o := range orders {
			if o.Status == ontology.OrderShipped || o.Status == ontology.OrderDelivered {
				fulfilled++
			}
		}
		fulfillmentRate = float64(fulfilled) / float64(len(orders))
	}

	onTimeRate := 0.0
	if len(shipments) > 0 {
		delivered := 0
		for _, s := range shipments {
			if s.Status == ontology.ShipmentDelivered {
				delivered++
			}
		}
		onTimeRate = float64(delivered) / float64(len(shipments))
	}

	overall := (avgUtilization + fulfillmentRate + onTimeRate) / 3

	status := HealthNeedsAttention
	switch {
	case overall > 0.8:
		status = HealthExcellent
	case overall > 0.6:
		status = HealthGood
	}

	return NetworkHealth{
		OverallHealthScore:   overall,
		AvgUtilization:       avgUtilization,
		OrderFulfillmentRate: fulfillmentRate,
		OnTimeDeliveryRate:   onTimeRate,
		HealthStatus:         status,
	}
}
