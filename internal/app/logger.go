package app

import (
	"log/slog"
	"os"

	"service-parcel/internal/logx"
)

// NewLogger returns the process-wide JSON logger.
func NewLogger() logx.Logger {
	return logx.NewJSON(os.Stdout, slog.LevelInfo)
}
