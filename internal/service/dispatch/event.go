package dispatch

import "time"

// EventAssignmentRecorded is emitted once an assignment is stored.
const EventAssignmentRecorded = "assignment.recorded"

// Event is a single assignment event read from the bus.
type Event struct {
	Type          string
	AssignmentID  string
	ParcelID      string
	DeliveryManID string
	RecordedAt    time.Time
}
