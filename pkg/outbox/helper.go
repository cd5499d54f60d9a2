package outbox

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"portfolio/pkg/trace"
)

// InsertEventInTx 在事务中插入事件到 outbox（辅助函数）
// 当前 context 中的 trace id 随事件一起保存
func InsertEventInTx(
	ctx context.Context,
	tx pgx.Tx,
	repo *Repository,
	aggregateType string,
	aggregateID string,
	routingKey string,
	payload any,
) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &Event{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		RoutingKey:    routingKey,
		Payload:       payloadJSON,
		TraceID:       trace.FromContext(ctx),
		Status:        StatusPending,
	}

	return repo.InsertEvent(ctx, tx, event)
}
