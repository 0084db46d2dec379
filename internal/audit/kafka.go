package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	relayBatchSize    = 100
	relayPollInterval = 2 * time.Second
)

// KafkaRelay drains the audit outbox into a Kafka topic. The store row stays
// unpublished until the produce is acknowledged, so a crash between produce
// and mark yields at-least-once delivery; consumers must dedupe on event ID.
type KafkaRelay struct {
	client *kgo.Client
	store  OutboxStore
	topic  string
	logger *slog.Logger
}

// NewKafkaRelay connects to the brokers and ensures the audit topic exists.
func NewKafkaRelay(ctx context.Context, brokers []string, topic string, store OutboxStore, logger *slog.Logger) (*KafkaRelay, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, 1, 1, nil, topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure audit topic %q: %w", topic, err)
	}

	return &KafkaRelay{client: client, store: store, topic: topic, logger: logger}, nil
}

// relayPayload is the JSON structure produced to Kafka.
type relayPayload struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
	Domain      string `json:"domain"`
	ItemID      string `json:"item_id,omitempty"`
	Action      string `json:"action"`
	ActorID     string `json:"actor_id,omitempty"`
	ActorName   string `json:"actor_name,omitempty"`
	Decision    string `json:"decision,omitempty"`
	Note        string `json:"note,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	Device      string `json:"device,omitempty"`
}

// Run polls the outbox and produces pending events until ctx is cancelled.
func (r *KafkaRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(relayPollInterval)
	defer ticker.Stop()
	defer r.client.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.relayOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit relay pass failed", "error", err)
			}
		}
	}
}

func (r *KafkaRelay) relayOnce(ctx context.Context) error {
	entries, err := r.store.ListUnpublished(ctx, relayBatchSize)
	if err != nil {
		return fmt.Errorf("list unpublished: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(entries))
	for _, entry := range entries {
		payload := relayPayload{
			ID:          entry.ID.String(),
			Category:    string(entry.Event.Category),
			Timestamp:   entry.Event.Timestamp.Format(time.RFC3339Nano),
			Domain:      entry.Event.Domain,
			Action:      entry.Event.Action,
			ActorID:     entry.Event.ActorID,
			ActorName:   entry.Event.ActorName,
			Decision:    entry.Event.Decision,
			Note:        entry.Event.Note,
			AmountCents: entry.Event.AmountCents,
			RequestID:   entry.Event.RequestID,
			Device:      entry.Event.Device,
		}
		if entry.Event.ItemID != uuid.Nil {
			payload.ItemID = entry.Event.ItemID.String()
		}
		value, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal audit payload: %w", err)
		}
		records = append(records, &kgo.Record{
			Topic: r.topic,
			Key:   []byte(entry.Event.Domain),
			Value: value,
		})
	}

	if err := r.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit batch: %w", err)
	}

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	if err := r.store.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}
