package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher defines the interface for publishing score events.
type Publisher interface {
	PublishScoreSubmitted(ctx context.Context, event *ScoreSubmittedEvent) error
	Close() error
}

// KafkaPublisher implements Publisher using Watermill with Kafka.
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher.
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaPublisher creates a new Kafka-based score event publisher.
func NewKafkaPublisher(config PublisherConfig) (*KafkaPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishScoreSubmitted publishes a score-submitted event to Kafka.
func (p *KafkaPublisher) PublishScoreSubmitted(ctx context.Context, event *ScoreSubmittedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal score event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("session_id", event.SessionID)
	msg.Metadata.Set("timestamp", event.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish score event",
			"event_id", event.ID,
			"session_id", event.SessionID,
			"error", err)
		return fmt.Errorf("failed to publish score event: %w", err)
	}

	p.logger.Info("Published score event",
		"event_id", event.ID,
		"session_id", event.SessionID,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources.
func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// MockPublisher is an in-memory implementation for testing.
type MockPublisher struct {
	mu     sync.Mutex
	events []ScoreSubmittedEvent
	logger *slog.Logger
}

// NewMockPublisher creates a new mock score event publisher.
func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{
		events: make([]ScoreSubmittedEvent, 0),
		logger: logger,
	}
}

// PublishScoreSubmitted stores the event in memory.
func (m *MockPublisher) PublishScoreSubmitted(_ context.Context, event *ScoreSubmittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	m.logger.Info("Mock: Published score event",
		"event_id", event.ID,
		"session_id", event.SessionID)
	return nil
}

// Close is a no-op for the mock publisher.
func (m *MockPublisher) Close() error {
	return nil
}

// PublishedEvents returns all published events (for testing).
func (m *MockPublisher) PublishedEvents() []ScoreSubmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ScoreSubmittedEvent, len(m.events))
	copy(out, m.events)
	return out
}
