package reflex

import "time"

// InventoryItem is one inventory record joined with its product and
// location names. The DemandPattern, StockTrend and
// ReorderRecommendation fields are empty at the reflex level; the world
// model fills them in.
type InventoryItem struct {
	Location              string `json:"location"`
	Product               string `json:"product"`
	Quantity              int    `json:"quantity"`
	Available             int    `json:"available"`
	Reserved              int    `json:"reserved"`
	DemandPattern         string `json:"demand_pattern,omitempty"`
	StockTrend            string `json:"stock_trend,omitempty"`
	ReorderRecommendation string `json:"reorder_recommendation,omitempty"`
}

// InventoryReport is the structured result of an inventory query.
type InventoryReport struct {
	Items      []*InventoryItem `json:"inventory"`
	TotalItems int              `json:"total_items"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationInfo is one location's answer record. ConnectedLocations and
// PerformanceScore are world-model enrichments.
type LocationInfo struct {
	Name               string      `json:"name"`
	Type               string      `json:"type"`
	Address            string      `json:"address"`
	Coordinates        Coordinates `json:"coordinates"`
	CapacityM3         float64     `json:"capacity_m3"`
	OperationalHours   string      `json:"operational_hours"`
	ConnectedLocations int         `json:"connected_locations,omitempty"`
	PerformanceScore   float64     `json:"performance_score,omitempty"`
}

// LocationReport is the structured result of a location query.
type LocationReport struct {
	Locations []*LocationInfo `json:"locations"`
}

// OrderInfo is one order joined with its customer name and shipment
// count. Customer is "Unknown" when the reference does not resolve.
type OrderInfo struct {
	OrderID      string    `json:"order_id"`
	Customer     string    `json:"customer"`
	Status       string    `json:"status"`
	OrderDate    time.Time `json:"order_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	TotalValue   float64   `json:"total_value"`
	Shipments    int       `json:"shipments"`
}

// OrderReport is the structured result of an order-status query.
type OrderReport struct {
	Orders []*OrderInfo `json:"orders"`
}

// SupplierInfo is one supplier with its resolvable product names.
type SupplierInfo struct {
	Name             string   `json:"name"`
	ReliabilityScore float64  `json:"reliability_score"`
	ProductsSupplied []string `json:"products_supplied"`
	ProductCount     int      `json:"product_count"`
}

// SupplierReport is the structured result of a supplier query.
type SupplierReport struct {
	Suppliers []*SupplierInfo `json:"suppliers"`
}

// CapacityInfo is one location's capacity and current utilization.
type CapacityInfo struct {
	Location    string  `json:"location"`
	Type        string  `json:"type"`
	CapacityM3  float64 `json:"capacity_m3"`
	Utilization float64 `json:"utilization"`
}

// CapacityReport is the structured result of a capacity query.
type CapacityReport struct {
	CapacityInfo []*CapacityInfo `json:"capacity_info"`
}

// EmployeeInfo is one employee with a resolved location name, or
// "Unknown".
type EmployeeInfo struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

// EmployeeReport is the structured result of an employee query.
type EmployeeReport struct {
	Employees []*EmployeeInfo `json:"employees"`
}

// PerformanceSummary is the structured result of a performance query.
type PerformanceSummary struct {
	TotalLocations      int     `json:"total_locations"`
	TotalOrders         int     `json:"total_orders"`
	CompletedOrders     int     `json:"completed_orders"`
	ActiveShipments     int     `json:"active_shipments"`
	OrderCompletionRate float64 `json:"order_completion_rate"`
}
