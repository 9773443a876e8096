package order

import "time"

// StatusChange is one entry of an order's status history.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	UpdatedBy string
	Note      string
}

// SystemActor is recorded for changes made by the service itself.
const SystemActor = "system"
