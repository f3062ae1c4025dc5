package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
)

//go:embed schema.sql
var Schema string

// Apply cria as tabelas e índices que ainda não existem.
// O schema é idempotente e roda numa única transação.
func Apply(ctx context.Context, conn postgres.Conn) error {
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, Schema); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Schema aplicado")
	return nil
}
