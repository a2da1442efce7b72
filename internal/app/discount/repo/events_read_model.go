package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/list_events"
	"github.com/light-bringer/promo-console-service/internal/models/m_outbox"
	"github.com/light-bringer/promo-console-service/internal/pkg/query"
)

// EventsReadModel implements the list_events read model for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves events from the outbox_events table with filtering.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	builder := query.From(m_outbox.TableName).
		Select(
			m_outbox.EventID,
			m_outbox.EventType,
			m_outbox.AggregateID,
			m_outbox.Payload,
			m_outbox.Status,
			m_outbox.CreatedAt,
			m_outbox.ProcessedAt,
			m_outbox.RetryCount,
			m_outbox.ErrorMessage,
		)

	if req.EventType != nil {
		builder = builder.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}

	if req.AggregateID != nil {
		builder = builder.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}

	if req.Status != nil {
		builder = builder.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	paged := builder.
		OrderBy(m_outbox.CreatedAt, query.Desc).
		Limit(int64(req.Limit))

	iter := r.client.Single().Query(ctx, paged.Build())
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, 0, fmt.Errorf("failed to parse event: %w", err)
		}

		events = append(events, &event)
	}

	total, err := r.countEvents(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventsReadModel) countEvents(ctx context.Context, builder *query.Builder) (int64, error) {
	iter := r.client.Single().Query(ctx, builder.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}

	return count, nil
}
