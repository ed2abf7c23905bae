package dispatch

import (
	"context"
	"fmt"

	"service-parcel/internal/logx"
)

// Processor moves parcels to "On the Way" once their assignment is recorded,
// so the parcel converges even if the client never sends the status update.
type Processor struct {
	parcels ParcelPort
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a Processor.
func NewProcessor(parcels ParcelPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{parcels: parcels, logger: logger}
	p.factory = newActionFactory(p.onRecorded)
	return p
}

// Handle applies e. Unknown event types are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("dispatch: event ignored", logx.String("type", e.Type))
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onRecorded(ctx context.Context, e Event) error {
	res, err := p.parcels.MarkEnRoute(ctx, e.ParcelID)
	if err != nil {
		return fmt.Errorf("mark parcel %q en route: %w", e.ParcelID, err)
	}
	if res.MatchedCount == 0 {
		p.logger.Warn("dispatch: parcel not found",
			logx.String("parcel_id", e.ParcelID),
			logx.String("assignment_id", e.AssignmentID),
		)
	}
	return nil
}
