package reflex

import (
	"fmt"
	"strings"

	"github.com/tagus/supplysense/pkg/ontology"
)

// GeneralHelpMessage is the answer to queries outside the intent table.
const GeneralHelpMessage = "I can help with inventory, locations, orders, suppliers, capacity, employees, and performance queries."

// FallbackMessage is the answer when dispatch cannot apply any rule.
const FallbackMessage = "I couldn't process your query. Please try asking about inventory, locations, orders, suppliers, capacity, employees, or performance."

// Answer rendering follows fixed templates. Breakdown lines iterate the
// controlled vocabularies in declaration order so the same report always
// renders the same string.

var orderStatusOrder = []ontology.OrderStatus{
	ontology.OrderPending,
	ontology.OrderProcessing,
	ontology.OrderShipped,
	ontology.OrderDelivered,
	ontology.OrderCancelled,
}

var employeeRoleOrder = []ontology.EmployeeRole{
	ontology.RoleManager,
	ontology.RoleOperator,
	ontology.RoleDriver,
	ontology.RoleAnalyst,
}

// RenderInventoryAnswer summarizes an inventory report. Five records or
// fewer are itemized; larger reports show the first three quantities.
func RenderInventoryAnswer(r *InventoryReport) string {
	if len(r.Items) == 0 {
		return "No inventory data found matching your query."
	}

	totalQuantity := 0
	for _, item := range r.Items {
		totalQuantity += item.Quantity
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d inventory records with a total of %d items. ", r.TotalItems, totalQuantity)

	if len(r.Items) <= 5 {
		for _, item := range r.Items {
			fmt.Fprintf(&b, "%s at %s: %d available (%d reserved). ", item.Product, item.Location, item.Available, item.Reserved)
		}
		return b.String()
	}

	parts := make([]string, 0, 3)
	for _, item := range r.Items[:3] {
		parts = append(parts, fmt.Sprintf("%s: %d", item.Location, item.Quantity))
	}
	b.WriteString("Top locations: " + strings.Join(parts, ", "))
	return b.String()
}

// RenderLocationAnswer summarizes a location report. A single match gets
// the full description; multiple matches are listed by name.
func RenderLocationAnswer(r *LocationReport) string {
	switch len(r.Locations) {
	case 0:
		return "No locations found matching your query."
	case 1:
		loc := r.Locations[0]
		return fmt.Sprintf("%s is a %s located at %s with capacity of %.0f m³.",
			loc.Name, loc.Type, loc.Address, loc.CapacityM3)
	default:
		names := make([]string, len(r.Locations))
		for i, loc := range r.Locations {
			names[i] = loc.Name
		}
		return fmt.Sprintf("Found %d locations: %s", len(r.Locations), strings.Join(names, ", "))
	}
}

// RenderOrderAnswer summarizes an order report with a status breakdown.
func RenderOrderAnswer(r *OrderReport) string {
	if len(r.Orders) == 0 {
		return "No orders found."
	}

	totalValue := 0.0
	counts := map[string]int{}
	for _, order := range r.Orders {
		totalValue += order.TotalValue
		counts[order.Status]++
	}

	parts := []string{}
	for _, status := range orderStatusOrder {
		if n := counts[string(status)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", status, n))
		}
	}

	return fmt.Sprintf("Found %d orders with total value $%.2f. Status breakdown: %s",
		len(r.Orders), totalValue, strings.Join(parts, ", "))
}

// RenderSupplierAnswer lists up to five suppliers with product counts.
func RenderSupplierAnswer(r *SupplierReport) string {
	if len(r.Suppliers) == 0 {
		return "No suppliers found."
	}

	shown := r.Suppliers
	if len(shown) > 5 {
		shown = shown[:5]
	}
	parts := make([]string, len(shown))
	for i, s := range shown {
		parts[i] = fmt.Sprintf("%s (supplies %d products)", s.Name, s.ProductCount)
	}

	return fmt.Sprintf("Found %d suppliers: %s", len(r.Suppliers), strings.Join(parts, ", "))
}

// RenderCapacityAnswer lists up to five locations with capacity and
// utilization percentage.
func RenderCapacityAnswer(r *CapacityReport) string {
	if len(r.CapacityInfo) == 0 {
		return "No capacity information found."
	}

	var b strings.Builder
	b.WriteString("Capacity information: ")
	shown := r.CapacityInfo
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, info := range shown {
		fmt.Fprintf(&b, "%s: %.0f m³ (%.1f%% utilized). ", info.Location, info.CapacityM3, info.Utilization*100)
	}
	return b.String()
}

// RenderEmployeeAnswer summarizes an employee report with a role
// breakdown.
func RenderEmployeeAnswer(r *EmployeeReport) string {
	if len(r.Employees) == 0 {
		return "No employees found."
	}

	counts := map[string]int{}
	for _, emp := range r.Employees {
		counts[emp.Role]++
	}

	parts := []string{}
	for _, role := range employeeRoleOrder {
		if n := counts[string(role)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", role, n))
		}
	}

	return fmt.Sprintf("Found %d employees. Role breakdown: %s", len(r.Employees), strings.Join(parts, ", "))
}

// RenderPerformanceAnswer summarizes the network counters.
func RenderPerformanceAnswer(r *PerformanceSummary) string {
	return fmt.Sprintf("Performance Summary: %d locations, %d orders (%d completed, %.1f%% completion rate), %d active shipments.",
		r.TotalLocations, r.TotalOrders, r.CompletedOrders, r.OrderCompletionRate*100, r.ActiveShipments)
}
