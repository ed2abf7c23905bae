package dispatch

import (
	"context"

	"service-parcel/internal/domain"
)

// ParcelPort is the subset of the parcel registry the processor drives.
type ParcelPort interface {
	MarkEnRoute(ctx context.Context, id string) (domain.UpdateResult, error)
}
