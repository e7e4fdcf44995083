// Package datagen populates an ontology graph with a realistic,
// deterministic sample supply chain. The same seed and scale factor
// always produce the same graph, so tests and demos are reproducible.
package datagen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/ontology"
)

var productNames = []string{
	"Valley Farms Milk", "CarePlus Pain Reliever", "HomeBasics Towels",
	"Summit Cola", "TrailPoint Tent", "FreshPick Salad",
	"LittleSteps Diapers", "CarePlus Vitamins", "Valley Farms Bread",
	"HomeBasics Bedding", "Meridian Dress", "Spark Energy Drink",
	"BakeHouse Cookies", "IronGrip Tools", "GardenView Decor",
	"NorthPeak Shirt", "Stride Athletic Shoes", "Pulse Electronics",
	"PagePro Supplies", "FlameMaster Grill", "TrailPoint Cooler",
	"Meridian Jeans",
}

var productCategories = []string{
	"Groceries", "Health & Wellness", "Home & Garden", "Electronics",
	"Clothing", "Sports & Outdoors", "Baby & Kids", "Automotive",
}

var sizeVariants = []string{"XL", "Regular", "Mini", "Family Size", "Travel Size"}

type locationSeed struct {
	name     string
	locType  ontology.LocationType
	address  string
	lat, lon float64
}

var locationSeeds = []locationSeed{
	{"Bentonville DC", ontology.LocationDistributionCenter, "Bentonville, AR", 36.3729, -94.2088},
	{"Dallas DC", ontology.LocationDistributionCenter, "Dallas, TX", 32.7767, -96.7970},
	{"Atlanta DC", ontology.LocationDistributionCenter, "Atlanta, GA", 33.7490, -84.3880},
	{"Los Angeles DC", ontology.LocationDistributionCenter, "Los Angeles, CA", 34.0522, -118.2437},
	{"Chicago DC", ontology.LocationDistributionCenter, "Chicago, IL", 41.8781, -87.6298},

	{"Memphis Warehouse", ontology.LocationWarehouse, "Memphis, TN", 35.1495, -90.0490},
	{"Phoenix Warehouse", ontology.LocationWarehouse, "Phoenix, AZ", 33.4484, -112.0740},
	{"Denver Warehouse", ontology.LocationWarehouse, "Denver, CO", 39.7392, -104.9903},

	{"Arkansas Food Processing", ontology.LocationFactory, "Springdale, AR", 36.1867, -94.1288},
	{"Texas Electronics Factory", ontology.LocationFactory, "Austin, TX", 30.2672, -97.7431},
	{"California Textile Mill", ontology.LocationFactory, "Fresno, CA", 36.7378, -119.7871},

	{"Supercenter #1", ontology.LocationRetailStore, "Rogers, AR", 36.3320, -94.1185},
	{"Supercenter #2", ontology.LocationRetailStore, "Plano, TX", 33.0198, -96.6989},
	{"Supercenter #3", ontology.LocationRetailStore, "Marietta, GA", 33.9526, -84.5499},
	{"Supercenter #4", ontology.LocationRetailStore, "Torrance, CA", 33.8358, -118.3406},
	{"Supercenter #5", ontology.LocationRetailStore, "Schaumburg, IL", 42.0334, -88.0834},

	{"Port of Long Beach", ontology.LocationPort, "Long Beach, CA", 33.7701, -118.1937},
	{"Port of Houston", ontology.LocationPort, "Houston, TX", 29.7604, -95.3698},
}

var supplierNames = []string{
	"Harvest Foods Group", "Beacon Consumer Goods", "Lakeside Beverages",
	"Pinnacle Health Products", "Crestline Paper", "Grainfield Mills",
	"Redwood Packaged Foods", "Bluebird Poultry", "Cascade Canning",
	"Sterling Snacks", "Orchard Confections", "Ridgeline Chocolates",
	"Prairie Dairy Cooperative", "Atlas Household Supply",
	"Juniper Personal Care", "Meadowbrook Cereals",
}

var customerNames = []string{
	"Regional Grocery Chain", "Local Restaurant Group", "School District",
	"Hospital Network", "Hotel Chain", "Corporate Cafeteria Services",
	"Emergency Services", "Military Base Supply", "University System",
	"Retail Franchise Group",
}

var employeeNames = []string{
	"John Smith", "Maria Garcia", "David Johnson", "Sarah Williams", "Michael Brown",
	"Jennifer Davis", "Robert Miller", "Lisa Wilson", "James Moore", "Jessica Taylor",
	"Christopher Anderson", "Amanda Thomas", "Matthew Jackson", "Ashley White", "Daniel Harris",
}

var machineTypes = []string{
	"conveyor_belt", "packaging_robot", "sorting_machine", "forklift", "crane", "scanner",
}

var machineDisplayNames = map[string]string{
	"conveyor_belt":   "Conveyor Belt",
	"packaging_robot": "Packaging Robot",
	"sorting_machine": "Sorting Machine",
	"forklift":        "Forklift",
	"crane":           "Crane",
	"scanner":         "Scanner",
}

var temperatureZones = []string{"ambient", "refrigerated", "frozen"}

var orderStatuses = []ontology.OrderStatus{
	ontology.OrderPending, ontology.OrderProcessing, ontology.OrderShipped,
	ontology.OrderDelivered, ontology.OrderCancelled,
}

var shipmentStatuses = []ontology.ShipmentStatus{
	ontology.ShipmentScheduled, ontology.ShipmentInTransit,
	ontology.ShipmentDelivered, ontology.ShipmentDelayed,
}

var vehicleTypes = []ontology.VehicleType{
	ontology.VehicleTruck, ontology.VehicleShip,
	ontology.VehiclePlane, ontology.VehicleTrain,
}

var employeeRoles = []ontology.EmployeeRole{
	ontology.RoleManager, ontology.RoleOperator,
	ontology.RoleDriver, ontology.RoleAnalyst,
}

// Generator builds sample supply-chain graphs from a seeded random
// source.
type Generator struct {
	rng    *rand.Rand
	now    time.Time
	logger logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for generation progress.
func WithLogger(logger logging.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithNow fixes the reference time that order dates and inventory
// timestamps are derived from. Defaults to time.Now at construction.
func WithNow(now time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator seeded with seed.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now(),
		logger: logging.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate populates a fresh graph scaled by scale. Scale 1.0 yields
// roughly 50 products, 100 orders and a few hundred inventory records;
// entity counts scale linearly except locations, which come from a
// fixed seed table.
func (g *Generator) Generate(ctx context.Context, scale float64) (*ontology.Graph, error) {
	graph := ontology.NewGraph()

	numProducts := int(50 * scale)
	numSuppliers := int(16 * scale)
	numCustomers := int(25 * scale)
	numEmployees := int(60 * scale)
	numVehicles := int(30 * scale)
	numMachines := int(20 * scale)
	numOrders := int(100 * scale)

	g.logger.Info(ctx, "generating supply chain data", map[string]interface{}{
		"scale":     scale,
		"products":  numProducts,
		"suppliers": numSuppliers,
		"customers": numCustomers,
		"employees": numEmployees,
		"vehicles":  numVehicles,
		"orders":    numOrders,
	})

	locations, err := g.generateLocations(graph)
	if err != nil {
		return nil, err
	}
	products, err := g.generateProducts(graph, numProducts)
	if err != nil {
		return nil, err
	}
	suppliers, err := g.generateSuppliers(graph, numSuppliers, locations, products)
	if err != nil {
		return nil, err
	}
	customers, err := g.generateCustomers(graph, numCustomers, locations)
	if err != nil {
		return nil, err
	}
	employees, err := g.generateEmployees(graph, numEmployees, locations)
	if err != nil {
		return nil, err
	}
	vehicles, err := g.generateVehicles(graph, numVehicles, locations, employees)
	if err != nil {
		return nil, err
	}
	machines, err := g.generateMachines(graph, numMachines, locations)
	if err != nil {
		return nil, err
	}

	inventory, err := g.generateInventory(graph, products, locations)
	if err != nil {
		return nil, err
	}
	orders, err := g.generateOrders(graph, numOrders, customers, products)
	if err != nil {
		return nil, err
	}
	shipments, err := g.generateShipments(graph, orders, locations, vehicles)
	if err != nil {
		return nil, err
	}

	establishRelationships(graph, suppliers, orders, inventory, shipments,
		employees, locations, vehicles, machines)

	g.logger.Info(ctx, "generation complete", map[string]interface{}{
		"entities":  graph.Len(),
		"inventory": len(inventory),
		"shipments": len(shipments),
	})
	return graph, nil
}

func (g *Generator) generateLocations(graph *ontology.Graph) ([]*ontology.Location, error) {
	locations := make([]*ontology.Location, 0, len(locationSeeds))
	for _, seed := range locationSeeds {
		capacity := g.uniform(10000, 100000)
		if seed.locType == ontology.LocationRetailStore {
			capacity = g.uniform(1000, 5000)
		}
		hours := "6AM-11PM"
		if seed.locType == ontology.LocationWarehouse || seed.locType == ontology.LocationDistributionCenter {
			hours = "24/7"
		}
		zone := "ambient"
		if g.rng.Float64() < 0.3 {
			zone = pick(g.rng, temperatureZones)
		}

		location := &ontology.Location{
			ID:               g.newID(),
			Name:             seed.name,
			Type:             seed.locType,
			Address:          seed.address,
			Latitude:         seed.lat,
			Longitude:        seed.lon,
			CapacityM3:       capacity,
			OperationalHours: hours,
			TemperatureZone:  zone,
		}
		if err := graph.AddEntity(location); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, nil
}

func (g *Generator) generateProducts(graph *ontology.Graph, n int) ([]*ontology.Product, error) {
	products := make([]*ontology.Product, 0, n)
	for i := 0; i < n; i++ {
		category := pick(g.rng, productCategories)
		product := &ontology.Product{
			ID:               g.newID(),
			SKU:              fmt.Sprintf("SC%06d", 100000+g.rng.Intn(900000)),
			Name:             pick(g.rng, productNames) + " " + pick(g.rng, sizeVariants),
			Category:         category,
			WeightKg:         round2(g.uniform(0.1, 50.0)),
			VolumeM3:         round3(g.uniform(0.001, 2.0)),
			CostUSD:          round2(g.uniform(1.0, 500.0)),
			SafetyStockLevel: 50 + g.rng.Intn(951),
			LeadTimeDays:     1 + g.rng.Intn(30),
			SemanticTags:     semanticTags(category),
		}
		if err := graph.AddEntity(product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func semanticTags(category string) []string {
	switch category {
	case "Groceries":
		return []string{"food", "consumable", "perishable"}
	case "Electronics":
		return []string{"technology", "durable", "warranty"}
	case "Clothing":
		return []string{"apparel", "seasonal", "fashion"}
	default:
		return nil
	}
}

func (g *Generator) generateSuppliers(graph *ontology.Graph, n int, locations []*ontology.Location, products []*ontology.Product) ([]*ontology.Supplier, error) {
	factories := locationsOfType(locations, ontology.LocationFactory)

	count := n
	if count > len(supplierNames) {
		count = len(supplierNames)
	}
	suppliers := make([]*ontology.Supplier, 0, count)
	for i := 0; i < count; i++ {
		supplier := &ontology.Supplier{
			ID:               g.newID(),
			Name:             supplierNames[i],
			ContactInfo:      fmt.Sprintf("supplier%d@example.com", i),
			LocationID:       pick(g.rng, factories).ID,
			ReliabilityScore: round2(g.uniform(0.7, 1.0)),
		}

		supplied := 1 + g.rng.Intn(min(8, len(products)))
		for j := 0; j < supplied; j++ {
			supplier.ProductIDs = append(supplier.ProductIDs, pick(g.rng, products).ID)
		}

		if err := graph.AddEntity(supplier); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

func (g *Generator) generateCustomers(graph *ontology.Graph, n int, locations []*ontology.Location) ([]*ontology.Customer, error) {
	count := n
	if limit := len(customerNames) * 3; count > limit {
		count = limit
	}
	customers := make([]*ontology.Customer, 0, count)
	for i := 0; i < count; i++ {
		customer := &ontology.Customer{
			ID:          g.newID(),
			Name:        fmt.Sprintf("%s #%d", customerNames[i%len(customerNames)], i/len(customerNames)+1),
			Type:        pick(g.rng, []string{"retail", "wholesale", "business"}),
			ContactInfo: fmt.Sprintf("customer%d@example.com", i),
			LocationID:  pick(g.rng, locations).ID,
		}
		if err := graph.AddEntity(customer); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (g *Generator) generateEmployees(graph *ontology.Graph, n int, locations []*ontology.Location) ([]*ontology.Employee, error) {
	employees := make([]*ontology.Employee, 0, n)
	for i := 0; i < n; i++ {
		employee := &ontology.Employee{
			ID:          g.newID(),
			Name:        fmt.Sprintf("%s %c", pick(g.rng, employeeNames), 'A'+i%26),
			Role:        pick(g.rng, employeeRoles),
			LocationID:  pick(g.rng, locations).ID,
			ContactInfo: fmt.Sprintf("employee%d@example.com", i),
		}
		if err := graph.AddEntity(employee); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	// First manager assigned to a location runs it.
	for _, location := range locations {
		for _, employee := range employees {
			if employee.Role == ontology.RoleManager && employee.LocationID == location.ID {
				location.ManagerID = employee.ID
				break
			}
		}
	}
	return employees, nil
}

func (g *Generator) generateVehicles(graph *ontology.Graph, n int, locations []*ontology.Location, employees []*ontology.Employee) ([]*ontology.Vehicle, error) {
	var drivers []*ontology.Employee
	for _, employee := range employees {
		if employee.Role == ontology.RoleDriver {
			drivers = append(drivers, employee)
		}
	}

	vehicles := make([]*ontology.Vehicle, 0, n)
	for i := 0; i < n; i++ {
		vehicleType := pick(g.rng, vehicleTypes)

		var capacity, maxWeight float64
		switch vehicleType {
		case ontology.VehicleTruck:
			capacity = g.uniform(50, 100)
			maxWeight = g.uniform(20000, 40000)
		case ontology.VehicleShip:
			capacity = g.uniform(10000, 50000)
			maxWeight = g.uniform(100000, 500000)
		case ontology.VehiclePlane:
			capacity = g.uniform(500, 2000)
			maxWeight = g.uniform(50000, 200000)
		default:
			capacity = g.uniform(2000, 10000)
			maxWeight = g.uniform(100000, 300000)
		}

		vehicle := &ontology.Vehicle{
			ID:                g.newID(),
			Type:              vehicleType,
			CapacityM3:        capacity,
			MaxWeightKg:       maxWeight,
			CurrentLocationID: pick(g.rng, locations).ID,
		}
		if len(drivers) > 0 {
			vehicle.DriverID = pick(g.rng, drivers).ID
		}

		if err := graph.AddEntity(vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

func (g *Generator) generateMachines(graph *ontology.Graph, n int, locations []*ontology.Location) ([]*ontology.Machine, error) {
	var industrial []*ontology.Location
	for _, location := range locations {
		switch location.Type {
		case ontology.LocationWarehouse, ontology.LocationFactory, ontology.LocationDistributionCenter:
			industrial = append(industrial, location)
		}
	}

	// Weighted towards operational.
	statuses := []string{"operational", "operational", "operational", "maintenance", "broken"}

	machines := make([]*ontology.Machine, 0, n)
	for i := 0; i < n; i++ {
		machineType := pick(g.rng, machineTypes)
		machine := &ontology.Machine{
			ID:                g.newID(),
			Name:              fmt.Sprintf("%s #%d", machineDisplayNames[machineType], i+1),
			Type:              machineType,
			LocationID:        pick(g.rng, industrial).ID,
			CapacityPerHour:   g.uniform(100, 2000),
			OperationalStatus: pick(g.rng, statuses),
		}
		if err := graph.AddEntity(machine); err != nil {
			return nil, err
		}
		machines = append(machines, machine)
	}
	return machines, nil
}

func (g *Generator) generateInventory(graph *ontology.Graph, products []*ontology.Product, locations []*ontology.Location) ([]*ontology.Inventory, error) {
	var storage []*ontology.Location
	for _, location := range locations {
		switch location.Type {
		case ontology.LocationWarehouse, ontology.LocationDistributionCenter, ontology.LocationRetailStore:
			storage = append(storage, location)
		}
	}

	var records []*ontology.Inventory
	for _, location := range storage {
		// Each storage location stocks 60-80% of the catalog.
		stocked := int(float64(len(products)) * g.uniform(0.6, 0.8))
		for _, product := range g.sampleProducts(products, stocked) {
			base := float64(product.SafetyStockLevel) * g.uniform(0.5, 3.0)

			var quantity int
			switch location.Type {
			case ontology.LocationDistributionCenter:
				quantity = int(base * g.uniform(5, 15))
			case ontology.LocationWarehouse:
				quantity = int(base * g.uniform(2, 8))
			default:
				quantity = int(base * g.uniform(0.5, 2))
			}

			record := &ontology.Inventory{
				ID:               g.newID(),
				ProductID:        product.ID,
				LocationID:       location.ID,
				Quantity:         quantity,
				ReservedQuantity: int(float64(quantity) * g.uniform(0, 0.3)),
				LastUpdated:      g.now.Add(-time.Duration(g.rng.Intn(73)) * time.Hour),
			}
			if err := graph.AddEntity(record); err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (g *Generator) generateOrders(graph *ontology.Graph, n int, customers []*ontology.Customer, products []*ontology.Product) ([]*ontology.Order, error) {
	orders := make([]*ontology.Order, 0, n)
	for i := 0; i < n; i++ {
		order := &ontology.Order{
			ID:                    g.newID(),
			CustomerID:            pick(g.rng, customers).ID,
			ProductQuantities:     make(map[string]int),
			OrderDate:             g.now.AddDate(0, 0, -g.rng.Intn(31)),
			RequestedDeliveryDate: g.now.AddDate(0, 0, 1+g.rng.Intn(14)),
			Status:                pick(g.rng, orderStatuses),
		}

		lines := 1 + g.rng.Intn(min(8, len(products)))
		var total float64
		for _, product := range g.sampleProducts(products, lines) {
			quantity := 1 + g.rng.Intn(20)
			order.ProductQuantities[product.ID] = quantity
			total += product.CostUSD * float64(quantity)
		}
		order.TotalValueUSD = round2(total)

		if err := graph.AddEntity(order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (g *Generator) generateShipments(graph *ontology.Graph, orders []*ontology.Order, locations []*ontology.Location, vehicles []*ontology.Vehicle) ([]*ontology.Shipment, error) {
	var origins []*ontology.Location
	for _, location := range locations {
		switch location.Type {
		case ontology.LocationWarehouse, ontology.LocationDistributionCenter:
			origins = append(origins, location)
		}
	}
	stores := locationsOfType(locations, ontology.LocationRetailStore)

	var shipments []*ontology.Shipment
	for _, order := range orders {
		if order.Status != ontology.OrderShipped && order.Status != ontology.OrderDelivered {
			continue
		}

		status := pick(g.rng, shipmentStatuses)
		if order.Status == ontology.OrderDelivered {
			status = ontology.ShipmentDelivered
		}

		shipment := &ontology.Shipment{
			ID:                    g.newID(),
			OrderID:               order.ID,
			OriginLocationID:      pick(g.rng, origins).ID,
			DestinationLocationID: pick(g.rng, stores).ID,
			VehicleID:             pick(g.rng, vehicles).ID,
			ProductQuantities:     order.ProductQuantities,
			ScheduledDeparture:    order.OrderDate.AddDate(0, 0, 1+g.rng.Intn(3)),
			ScheduledArrival:      order.RequestedDeliveryDate,
			Status:                status,
		}
		if shipment.Status == ontology.ShipmentDelivered {
			shipment.ActualDeparture = shipment.ScheduledDeparture.Add(time.Duration(g.rng.Intn(7)-2) * time.Hour)
			shipment.ActualArrival = shipment.ScheduledArrival.Add(time.Duration(g.rng.Intn(37)-12) * time.Hour)
		}

		if err := graph.AddEntity(shipment); err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, nil
}

func establishRelationships(graph *ontology.Graph, suppliers []*ontology.Supplier,
	orders []*ontology.Order, inventory []*ontology.Inventory,
	shipments []*ontology.Shipment, employees []*ontology.Employee,
	locations []*ontology.Location, vehicles []*ontology.Vehicle,
	machines []*ontology.Machine) {

	for _, supplier := range suppliers {
		for _, productID := range supplier.ProductIDs {
			graph.AddRelationship("supplies", supplier.ID, productID, nil)
		}
	}

	for _, order := range orders {
		for productID, quantity := range order.ProductQuantities {
			graph.AddRelationship("contains", order.ID, productID,
				map[string]interface{}{"quantity": quantity})
		}
	}

	for _, record := range inventory {
		graph.AddRelationship("stores", record.LocationID, record.ProductID,
			map[string]interface{}{
				"quantity":  record.Quantity,
				"available": record.Available(),
			})
	}

	for _, shipment := range shipments {
		graph.AddRelationship("fulfills", shipment.ID, shipment.OrderID, nil)
		graph.AddRelationship("origin", shipment.ID, shipment.OriginLocationID, nil)
		graph.AddRelationship("destination", shipment.ID, shipment.DestinationLocationID, nil)
	}

	for _, employee := range employees {
		graph.AddRelationship("works_at", employee.ID, employee.LocationID, nil)
	}

	for _, vehicle := range vehicles {
		if vehicle.CurrentLocationID != "" {
			graph.AddRelationship("located_at", vehicle.ID, vehicle.CurrentLocationID, nil)
		}
	}

	for _, machine := range machines {
		graph.AddRelationship("located_at", machine.ID, machine.LocationID, nil)
	}

	for _, location := range locations {
		if location.ManagerID != "" {
			graph.AddRelationship("manages", location.ManagerID, location.ID, nil)
		}
	}

	for _, vehicle := range vehicles {
		if vehicle.DriverID != "" {
			graph.AddRelationship("operates", vehicle.DriverID, vehicle.ID, nil)
		}
	}
}

// newID draws entity identifiers from the seeded source, so generated
// graphs are identical across runs, identifiers included.
func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand.Read never fails.
		panic(err)
	}
	return id.String()
}

// sampleProducts returns n distinct products chosen without replacement.
func (g *Generator) sampleProducts(products []*ontology.Product, n int) []*ontology.Product {
	if n > len(products) {
		n = len(products)
	}
	indexes := g.rng.Perm(len(products))[:n]
	out := make([]*ontology.Product, n)
	for i, idx := range indexes {
		out[i] = products[idx]
	}
	return out
}

func locationsOfType(locations []*ontology.Location, locType ontology.LocationType) []*ontology.Location {
	var out []*ontology.Location
	for _, location := range locations {
		if location.Type == locType {
			out = append(out, location)
		}
	}
	return out
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
