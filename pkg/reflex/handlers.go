package reflex

import (
	"fmt"

	"github.com/tagus/supplysense/pkg/intent"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/ontology"
)

// Inventory joins every inventory record with its product and location.
// When the query named locations or products, records that do not match
// one of the names are dropped. Records whose references do not resolve
// are skipped entirely. tr may be nil.
func (e *Engine) Inventory(entities intent.Entities, tr *interfaces.Trace) *InventoryReport {
	tr.Add(
		"Processing inventory query",
		"Searching for inventory data",
		"Looking for matching locations and products",
		0.9,
	)

	report := &InventoryReport{Items: []*InventoryItem{}}
	for _, inv := range e.graph.InventoryRecords() {
		location := e.graph.Location(inv.LocationID)
		product := e.graph.Product(inv.ProductID)
		if location == nil || product == nil {
			continue
		}
		if len(entities.Locations) > 0 && !containsName(entities.Locations, location.Name) {
			continue
		}
		if len(entities.Products) > 0 && !containsName(entities.Products, product.Name) {
			continue
		}
		report.Items = append(report.Items, &InventoryItem{
			Location:  location.Name,
			Product:   product.Name,
			Quantity:  inv.Quantity,
			Available: inv.Available(),
			Reserved:  inv.ReservedQuantity,
		})
	}
	report.TotalItems = len(report.Items)

	tr.Add(
		"Found inventory records",
		fmt.Sprintf("Retrieved %d inventory items", len(report.Items)),
		fmt.Sprintf("Matching locations: %v, products: %v", entities.Locations, entities.Products),
		0.9,
	)

	return report
}

// Locations lists every location, or only those the query named. tr may
// be nil.
func (e *Engine) Locations(entities intent.Entities, tr *interfaces.Trace) *LocationReport {
	tr.Add(
		"Processing location query",
		"Searching for location information",
		"Looking for matching locations",
		0.9,
	)

	report := &LocationReport{Locations: []*LocationInfo{}}
	for _, location := range e.graph.Locations() {
		if len(entities.Locations) > 0 && !containsName(entities.Locations, location.Name) {
			continue
		}
		report.Locations = append(report.Locations, &LocationInfo{
			Name:             location.Name,
			Type:             string(location.Type),
			Address:          location.Address,
			Coordinates:      Coordinates{Lat: location.Latitude, Lon: location.Longitude},
			CapacityM3:       location.CapacityM3,
			OperationalHours: location.OperationalHours,
		})
	}

	return report
}

// OrderStatus lists every order with its customer name and shipment
// count. Unresolvable customers render as "Unknown".
func (e *Engine) OrderStatus() *OrderReport {
	shipments := e.graph.Shipments()

	report := &OrderReport{Orders: []*OrderInfo{}}
	for _, order := range e.graph.Orders() {
		customerName := "Unknown"
		if customer := e.graph.Customer(order.CustomerID); customer != nil {
			customerName = customer.Name
		}

		count := 0
		for _, s := range shipments {
			if s.OrderID == order.ID {
				count++
			}
		}

		report.Orders = append(report.Orders, &OrderInfo{
			OrderID:      order.ID,
			Customer:     customerName,
			Status:       string(order.Status),
			OrderDate:    order.OrderDate,
			DeliveryDate: order.RequestedDeliveryDate,
			TotalValue:   order.TotalValueUSD,
			Shipments:    count,
		})
	}

	return report
}

// Suppliers lists every supplier with the product names that resolve.
func (e *Engine) Suppliers() *SupplierReport {
	report := &SupplierReport{Suppliers: []*SupplierInfo{}}
	for _, supplier := range e.graph.Suppliers() {
		names := []string{}
		for _, pid := range supplier.ProductIDs {
			if product := e.graph.Product(pid); product != nil {
				names = append(names, product.Name)
			}
		}
		report.Suppliers = append(report.Suppliers, &SupplierInfo{
			Name:             supplier.Name,
			ReliabilityScore: supplier.ReliabilityScore,
			ProductsSupplied: names,
			ProductCount:     len(names),
		})
	}

	return report
}

// Capacity lists every location's capacity and current utilization, or
// only the locations the query named.
func (e *Engine) Capacity(entities intent.Entities) *CapacityReport {
	report := &CapacityReport{CapacityInfo: []*CapacityInfo{}}
	for _, location := range e.graph.Locations() {
		if len(entities.Locations) > 0 && !containsName(entities.Locations, location.Name) {
			continue
		}
		report.CapacityInfo = append(report.CapacityInfo, &CapacityInfo{
			Location:    location.Name,
			Type:        string(location.Type),
			CapacityM3:  location.CapacityM3,
			Utilization: Utilization(e.graph, location.ID),
		})
	}

	return report
}

// Employees lists every employee with a resolved location name, or
// "Unknown".
func (e *Engine) Employees() *EmployeeReport {
	report := &EmployeeReport{Employees: []*EmployeeInfo{}}
	for _, employee := range e.graph.Employees() {
		locationName := "Unknown"
		if location := e.graph.Location(employee.LocationID); location != nil {
			locationName = location.Name
		}
		report.Employees = append(report.Employees, &EmployeeInfo{
			Name:     employee.Name,
			Role:     string(employee.Role),
			Location: locationName,
		})
	}

	return report
}

// Performance computes network-wide counters and the order completion
// rate (zero when there are no orders).
func (e *Engine) Performance() *PerformanceSummary {
	orders := e.graph.Orders()

	completed := 0
	for _, o := range orders {
		if o.Status == ontology.OrderDelivered {
			completed++
		}
	}

	active := 0
	for _, s := range e.graph.Shipments() {
		if s.Status == ontology.ShipmentInTransit {
			active++
		}
	}

	rate := 0.0
	if len(orders) > 0 {
		rate = float64(completed) / float64(len(orders))
	}

	return &PerformanceSummary{
		TotalLocations:      len(e.graph.Locations()),
		TotalOrders:         len(orders),
		CompletedOrders:     completed,
		ActiveShipments:     active,
		OrderCompletionRate: rate,
	}
}

// Utilization computes the storage utilization of a location: total
// stocked product volume over capacity, capped at 1. Unresolvable
// locations or products contribute nothing; zero capacity yields zero.
func Utilization(g *ontology.Graph, locationID string) float64 {
	location := g.Location(locationID)
	if location == nil || location.CapacityM3 <= 0 {
		return 0.0
	}

	totalVolume := 0.0
	for _, inv := range g.InventoryRecords() {
		if inv.LocationID != locationID {
			continue
		}
		if product := g.Product(inv.ProductID); product != nil {
			totalVolume += product.VolumeM3 * float64(inv.Quantity)
		}
	}

	utilization := totalVolume / location.CapacityM3
	if utilization > 1.0 {
		return 1.0
	}
	return utilization
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
