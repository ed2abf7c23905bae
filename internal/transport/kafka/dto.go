package kafka

import (
	"strings"
	"time"

	"service-parcel/internal/domain"
	"service-parcel/internal/service/dispatch"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AssignmentEventDTO is the wire form of an assignment event.
type AssignmentEventDTO struct {
	Type          string    `json:"type" validate:"required"`
	AssignmentID  string    `json:"assignment_id" validate:"omitempty,hexadecimal"`
	ParcelID      string    `json:"parcel_id" validate:"required"`
	DeliveryManID string    `json:"delivery_man_id,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Validate checks the fields a consumer relies on, ignoring surrounding whitespace.
func (d AssignmentEventDTO) Validate() error {
	d.Type = strings.TrimSpace(d.Type)
	d.AssignmentID = strings.TrimSpace(d.AssignmentID)
	d.ParcelID = strings.TrimSpace(d.ParcelID)
	return validate.Struct(d)
}

// FromDomain builds the wire form of a recorded assignment.
func FromDomain(e domain.AssignmentRecorded) AssignmentEventDTO {
	return AssignmentEventDTO{
		Type:          dispatch.EventAssignmentRecorded,
		AssignmentID:  e.AssignmentID,
		ParcelID:      e.ParcelID,
		DeliveryManID: e.DeliveryManID,
		RecordedAt:    e.RecordedAt,
	}
}

// ToDomain converts AssignmentEventDTO to dispatch.Event.
func ToDomain(dto AssignmentEventDTO) dispatch.Event {
	return dispatch.Event{
		Type:          strings.TrimSpace(dto.Type),
		AssignmentID:  strings.TrimSpace(dto.AssignmentID),
		ParcelID:      strings.TrimSpace(dto.ParcelID),
		DeliveryManID: strings.TrimSpace(dto.DeliveryManID),
		RecordedAt:    dto.RecordedAt,
	}
}
