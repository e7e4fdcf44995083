package ontology

import (
	"time"

	"github.com/google/uuid"
)

// Entity class tags. Every entity reports exactly one of these.
const (
	ClassProduct   = "Product"
	ClassLocation  = "Location"
	ClassSupplier  = "Supplier"
	ClassCustomer  = "Customer"
	ClassOrder     = "Order"
	ClassInventory = "Inventory"
	ClassVehicle   = "Vehicle"
	ClassShipment  = "Shipment"
	ClassEmployee  = "Employee"
	ClassMachine   = "Machine"
)

// LocationType is the controlled vocabulary for Location.Type.
type LocationType string

const (
	LocationWarehouse          LocationType = "warehouse"
	LocationFactory            LocationType = "factory"
	LocationPort               LocationType = "port"
	LocationRetailStore        LocationType = "retail_store"
	LocationDistributionCenter LocationType = "distribution_center"
)

// OrderStatus is the controlled vocabulary for Order.Status.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ShipmentStatus is the controlled vocabulary for Shipment.Status.
type ShipmentStatus string

const (
	ShipmentScheduled ShipmentStatus = "scheduled"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentDelayed   ShipmentStatus = "delayed"
)

// VehicleType is the controlled vocabulary for Vehicle.Type.
type VehicleType string

const (
	VehicleTruck VehicleType = "truck"
	VehicleShip  VehicleType = "ship"
	VehiclePlane VehicleType = "plane"
	VehicleTrain VehicleType = "train"
)

// EmployeeRole is the controlled vocabulary for Employee.Role.
type EmployeeRole string

const (
	RoleManager  EmployeeRole = "manager"
	RoleOperator EmployeeRole = "operator"
	RoleDriver   EmployeeRole = "driver"
	RoleAnalyst  EmployeeRole = "analyst"
)

// NewID generates a fresh globally unique entity identifier.
func NewID() string {
	return uuid.New().String()
}

// Entity is the closed set of supply-chain record types. Cross-entity
// references are plain identifier strings (weak references): resolving
// them through the graph may yield nothing, and the graph never enforces
// referential integrity.
type Entity interface {
	// EntityID returns the globally unique identifier.
	EntityID() string

	// Class returns the class tag (one of the Class* constants).
	Class() string

	// Export returns the serialized ontology form of the entity:
	// class, id, properties and outgoing weak references.
	Export() map[string]interface{}
}

// Named is implemented by entity variants that carry a human-readable
// name usable as a gazetteer entry.
type Named interface {
	EntityName() string
}

// Product is a stocked item.
type Product struct {
	ID               string   `json:"id"`
	SKU              string   `json:"sku"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	WeightKg         float64  `json:"weight_kg"`
	VolumeM3         float64  `json:"volume_m3"`
	CostUSD          float64  `json:"cost_usd"`
	SafetyStockLevel int      `json:"safety_stock_level"`
	LeadTimeDays     int      `json:"lead_time_days"`
	SupplierIDs      []string `json:"supplier_ids"`
	SemanticTags     []string `json:"semantic_tags"`
}

func (p *Product) EntityID() string   { return p.ID }
func (p *Product) Class() string      { return ClassProduct }
func (p *Product) EntityName() string { return p.Name }

func (p *Product) Export() map[string]interface{} {
	return exportEntity(p, map[string]interface{}{
		"sku":      p.SKU,
		"name":     p.Name,
		"category": p.Category,
		"physical_properties": map[string]interface{}{
			"weight_kg": p.WeightKg,
			"volume_m3": p.VolumeM3,
		},
		"economic_properties": map[string]interface{}{
			"cost_usd": p.CostUSD,
		},
		"supply_properties": map[string]interface{}{
			"safety_stock_level": p.SafetyStockLevel,
			"lead_time_days":     p.LeadTimeDays,
		},
	}, map[string]interface{}{
		"supplied_by": p.SupplierIDs,
	})
}

// Location is a warehouse, factory, port, retail store or distribution
// center.
type Location struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Type             LocationType `json:"type"`
	Address          string       `json:"address"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	CapacityM3       float64      `json:"capacity_m3"`
	OperationalHours string       `json:"operational_hours"`
	TemperatureZone  string       `json:"temperature_zone"`
	ManagerID        string       `json:"manager_id,omitempty"`
}

func (l *Location) EntityID() string   { return l.ID }
func (l *Location) Class() string      { return ClassLocation }
func (l *Location) EntityName() string { return l.Name }

func (l *Location) Export() map[string]interface{} {
	return exportEntity(l, map[string]interface{}{
		"name":    l.Name,
		"type":    string(l.Type),
		"address": l.Address,
		"coordinates": map[string]interface{}{
			"latitude":  l.Latitude,
			"longitude": l.Longitude,
		},
		"operational_properties": map[string]interface{}{
			"capacity_m3":       l.CapacityM3,
			"operational_hours": l.OperationalHours,
			"temperature_zone":  l.TemperatureZone,
		},
	}, map[string]interface{}{
		"managed_by": l.ManagerID,
	})
}

// Supplier sells products into the network.
type Supplier struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ContactInfo      string   `json:"contact_info"`
	LocationID       string   `json:"location_id"`
	ReliabilityScore float64  `json:"reliability_score"`
	ProductIDs       []string `json:"product_ids"`
}

func (s *Supplier) EntityID() string   { return s.ID }
func (s *Supplier) Class() string      { return ClassSupplier }
func (s *Supplier) EntityName() string { return s.Name }

func (s *Supplier) Export() map[string]interface{} {
	return exportEntity(s, map[string]interface{}{
		"name":              s.Name,
		"contact_info":      s.ContactInfo,
		"reliability_score": s.ReliabilityScore,
	}, map[string]interface{}{
		"located_at": s.LocationID,
		"supplies":   s.ProductIDs,
	})
}

// Customer buys from the network; retail, wholesale or business.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ContactInfo string `json:"contact_info"`
	LocationID  string `json:"location_id"`
}

func (c *Customer) EntityID() string   { return c.ID }
func (c *Customer) Class() string      { return ClassCustomer }
func (c *Customer) EntityName() string { return c.Name }

func (c *Customer) Export() map[string]interface{} {
	return exportEntity(c, map[string]interface{}{
		"name":         c.Name,
		"type":         c.Type,
		"contact_info": c.ContactInfo,
	}, map[string]interface{}{
		"located_at": c.LocationID,
	})
}

// Order links a customer to the products they bought.
type Order struct {
	ID                    string         `json:"id"`
	CustomerID            string         `json:"customer_id"`
	ProductQuantities     map[string]int `json:"product_quantities"`
	OrderDate             time.Time      `json:"order_date"`
	RequestedDeliveryDate time.Time      `json:"requested_delivery_date"`
	Status                OrderStatus    `json:"status"`
	TotalValueUSD         float64        `json:"total_value_usd"`
}

func (o *Order) EntityID() string { return o.ID }
func (o *Order) Class() string    { return ClassOrder }

func (o *Order) Export() map[string]interface{} {
	return exportEntity(o, map[string]interface{}{
		"order_date":              o.OrderDate.Format(time.RFC3339),
		"requested_delivery_date": o.RequestedDeliveryDate.Format(time.RFC3339),
		"status":                  string(o.Status),
		"total_value_usd":         o.TotalValueUSD,
	}, map[string]interface{}{
		"ordered_by":        o.CustomerID,
		"contains_products": o.ProductQuantities,
	})
}

// Inventory tracks the quantity of one product at one location.
type Inventory struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	LastUpdated      time.Time `json:"last_updated"`
}

func (i *Inventory) EntityID() string { return i.ID }
func (i *Inventory) Class() string    { return ClassInventory }

// Available returns the quantity not reserved for orders.
func (i *Inventory) Available() int {
	return i.Quantity - i.ReservedQuantity
}

func (i *Inventory) Export() map[string]interface{} {
	return exportEntity(i, map[string]interface{}{
		"quantity":           i.Quantity,
		"reserved_quantity":  i.ReservedQuantity,
		"available_quantity": i.Available(),
		"last_updated":       i.LastUpdated.Format(time.RFC3339),
	}, map[string]interface{}{
		"product":   i.ProductID,
		"stored_at": i.LocationID,
	})
}

// Vehicle moves shipments between locations.
type Vehicle struct {
	ID                string      `json:"id"`
	Type              VehicleType `json:"type"`
	CapacityM3        float64     `json:"capacity_m3"`
	MaxWeightKg       float64     `json:"max_weight_kg"`
	CurrentLocationID string      `json:"current_location_id,omitempty"`
	DriverID          string      `json:"driver_id,omitempty"`
}

func (v *Vehicle) EntityID() string { return v.ID }
func (v *Vehicle) Class() string    { return ClassVehicle }

func (v *Vehicle) Export() map[string]interface{} {
	return exportEntity(v, map[string]interface{}{
		"type":          string(v.Type),
		"capacity_m3":   v.CapacityM3,
		"max_weight_kg": v.MaxWeightKg,
	}, map[string]interface{}{
		"currently_at": v.CurrentLocationID,
		"operated_by":  v.DriverID,
	})
}

// Shipment tracks product movement for an order. ActualDeparture and
// ActualArrival stay zero until the shipment actually moves.
type Shipment struct {
	ID                    string         `json:"id"`
	OrderID               string         `json:"order_id"`
	OriginLocationID      string         `json:"origin_location_id"`
	DestinationLocationID string         `json:"destination_location_id"`
	VehicleID             string         `json:"vehicle_id"`
	ProductQuantities     map[string]int `json:"product_quantities"`
	ScheduledDeparture    time.Time      `json:"scheduled_departure"`
	ScheduledArrival      time.Time      `json:"scheduled_arrival"`
	ActualDeparture       time.Time      `json:"actual_departure,omitempty"`
	ActualArrival         time.Time      `json:"actual_arrival,omitempty"`
	Status                ShipmentStatus `json:"status"`
}

func (s *Shipment) EntityID() string { return s.ID }
func (s *Shipment) Class() string    { return ClassShipment }

func (s *Shipment) Export() map[string]interface{} {
	props := map[string]interface{}{
		"scheduled_departure": s.ScheduledDeparture.Format(time.RFC3339),
		"scheduled_arrival":   s.ScheduledArrival.Format(time.RFC3339),
		"status":              string(s.Status),
	}
	if !s.ActualDeparture.IsZero() {
		props["actual_departure"] = s.ActualDeparture.Format(time.RFC3339)
	}
	if !s.ActualArrival.IsZero() {
		props["actual_arrival"] = s.ActualArrival.Format(time.RFC3339)
	}
	return exportEntity(s, props, map[string]interface{}{
		"fulfills_order":    s.OrderID,
		"origin":            s.OriginLocationID,
		"destination":       s.DestinationLocationID,
		"transported_by":    s.VehicleID,
		"contains_products": s.ProductQuantities,
	})
}

// Employee is a member of the workforce.
type Employee struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        EmployeeRole `json:"role"`
	LocationID  string       `json:"location_id"`
	ContactInfo string       `json:"contact_info"`
}

func (e *Employee) EntityID() string   { return e.ID }
func (e *Employee) Class() string      { return ClassEmployee }
func (e *Employee) EntityName() string { return e.Name }

func (e *Employee) Export() map[string]interface{} {
	return exportEntity(e, map[string]interface{}{
		"name":         e.Name,
		"role":         string(e.Role),
		"contact_info": e.ContactInfo,
	}, map[string]interface{}{
		"works_at": e.LocationID,
	})
}

// Machine is fixed equipment at a location.
type Machine struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	LocationID        string  `json:"location_id"`
	CapacityPerHour   float64 `json:"capacity_per_hour"`
	OperationalStatus string  `json:"operational_status"`
}

func (m *Machine) EntityID() string   { return m.ID }
func (m *Machine) Class() string      { return ClassMachine }
func (m *Machine) EntityName() string { return m.Name }

func (m *Machine) Export() map[string]interface{} {
	return exportEntity(m, map[string]interface{}{
		"name":               m.Name,
		"type":               m.Type,
		"capacity_per_hour":  m.CapacityPerHour,
		"operational_status": m.OperationalStatus,
	}, map[string]interface{}{
		"located_at": m.LocationID,
	})
}

func exportEntity(e Entity, props, rels map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"class":         e.Class(),
		"id":            e.EntityID(),
		"properties":    props,
		"relationships": rels,
	}
}
