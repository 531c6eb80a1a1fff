package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

// Ledger remembers the outcome of every delivery attempt per message and channel
type Ledger interface {
	Lookup(ctx context.Context, messageID, channel string) (status models.DeliveryStatus, attempts int, err error)
	Record(ctx context.Context, msg *models.PaymentConfirmation, channel string, status models.DeliveryStatus, sendErr error) (attempts int, err error)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresLedger stores attempts in the notification_deliveries table
type PostgresLedger struct {
	db rowQuerier
}

func NewPostgresLedger(db rowQuerier) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Lookup returns an empty status when the channel was never attempted
func (l *PostgresLedger) Lookup(ctx context.Context, messageID, channel string) (models.DeliveryStatus, int, error) {
	var (
		status   string
		attempts int
	)
	err := l.db.QueryRow(ctx, database.GetDeliveryStatusSQL, messageID, channel).Scan(&status, &attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("lookup delivery %s/%s: %w", messageID, channel, err)
	}
	return models.DeliveryStatus(status), attempts, nil
}

func (l *PostgresLedger) Record(ctx context.Context, msg *models.PaymentConfirmation, channel string, status models.DeliveryStatus, sendErr error) (int, error) {
	var lastError *string
	if sendErr != nil {
		s := sendErr.Error()
		lastError = &s
	}

	var attempts int
	err := l.db.QueryRow(ctx, database.UpsertDeliveryAttemptSQL,
		msg.MessageID,
		channel,
		msg.Email,
		msg.TransactionID,
		string(status),
		lastError,
	).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("record delivery %s/%s: %w", msg.MessageID, channel, err)
	}
	return attempts, nil
}
