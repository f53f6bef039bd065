package main

import (
	"context"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
)

// postgresPinger adapts Connection.HealthCheck to the readiness probe's
// Pinger contract.
type postgresPinger struct {
	conn *postgres.Connection
}

func (p postgresPinger) Ping(ctx context.Context) error {
	return p.conn.HealthCheck(ctx)
}
