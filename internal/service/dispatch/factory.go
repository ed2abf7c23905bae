package dispatch

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onRecorded actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			EventAssignmentRecorded: onRecorded,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	fn, ok := f.byType[strings.ToLower(strings.TrimSpace(eventType))]
	return fn, ok
}
