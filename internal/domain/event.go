package domain

// EventInventory is the capacity pool for a single event. AvailableSeats and
// Version are mutated only through the inventory store's conditional updates;
// Version increments by exactly one on every successful mutation.
type EventInventory struct {
	ID             string
	Name           string
	TotalSeats     int
	AvailableSeats int
	Version        int64
}

// InventorySnapshot is the view a reservation attempt is predicated on: the
// seats left and the version stamp checked by the conditional debit.
type InventorySnapshot struct {
	AvailableSeats int
	Version        int64
}
