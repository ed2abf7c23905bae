package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"service-parcel/internal/logx"
	"service-parcel/internal/repository"
)

var newClient = repository.NewClient

func connectMongoWithRetry(
	ctx context.Context,
	logger logx.Logger,
	uri string,
	retries int,
	delay time.Duration,
) (*mongo.Client, error) {
	var lastErr error
	const attemptTimeout = 5 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		client, err := newClient(attemptCtx, uri)
		cancel()
		if err == nil {
			logger.Info("mongo connected", logx.Int("attempt", i))
			return client, nil
		}
		lastErr = err
		logger.Warn("mongo connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("mongo connect failed after %d attempts: %w", retries, lastErr)
}

func disconnect(client *mongo.Client, logger logx.Logger) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect error", logx.Err(err))
	}
}
