package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// NotificationRepository enqueues outbox rows inside the same transaction
// as the booking write. A separate worker drains the table, so a crashed
// process never loses a notification that the booking commit kept.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
		VALUES ($1, $2, $3, $4, 'queued', $5, now())`

	if _, err := r.db.Exec(ctx, query, uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt)); err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
