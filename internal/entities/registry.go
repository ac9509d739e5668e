// Package entities defines one migration Definition per legacy entity type:
// the legacy table, the field mapping, the enum dictionaries, the natural
// key, and the match heuristics. All of it is configuration driven through
// the engine in internal/migration.
package entities

import (
	"fmt"
	"sort"

	"migration-service/internal/migration"
)

// Entity type names, also the keys under which identity maps persist.
const (
	EntityVendors       = "vendors"
	EntityCustomers     = "customers"
	EntityProducts      = "products"
	EntityOrders        = "orders"
	EntityPayments      = "payments"
	EntityRepairs       = "repairs"
	EntityTags          = "tags"
	EntityInventory     = "inventory"
	EntitySalesChannels = "sales_channels"
)

// migrationOrder is the dependency order for full-store migrations:
// upstream entities first so dependents find populated identity maps.
var migrationOrder = []string{
	EntityVendors,
	EntityCustomers,
	EntityProducts,
	EntityOrders,
	EntityPayments,
	EntityRepairs,
	EntityTags,
	EntityInventory,
}

var registry = map[string]migration.Definition{}

func register(def migration.Definition) {
	registry[def.EntityType] = def
}

// Get returns the definition for one entity type.
func Get(entityType string) (migration.Definition, error) {
	def, ok := registry[entityType]
	if !ok {
		return migration.Definition{}, fmt.Errorf("unknown entity type %q (known: %v)", entityType, Names())
	}
	return def, nil
}

// Ordered returns every definition in dependency order.
func Ordered() []migration.Definition {
	defs := make([]migration.Definition, 0, len(migrationOrder))
	for _, name := range migrationOrder {
		defs = append(defs, registry[name])
	}
	return defs
}

// Names returns the registered entity type names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
