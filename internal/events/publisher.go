// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"fmt"
	"sync"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/metrics"
)

// Publisher emits service events. NopPublisher backs deployments with
// the event bus disabled so callers never branch on configuration.
type Publisher interface {
	PublishCatalogUpdated(event *CatalogUpdated) error
	PublishSearchCompleted(event *SearchCompleted) error
	Close() error
}

// NATSPublisher publishes to JetStream through Watermill.
type NATSPublisher struct {
	publisher message.Publisher
	logger    zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ Publisher = (*NATSPublisher)(nil)

// NewPublisher creates a Watermill NATS publisher. The stream must
// already exist (see EnsureStream); message IDs are tracked so
// JetStream deduplicates redelivered events.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPublisher(url string, logger zerolog.Logger) (*NATSPublisher, error) {
	componentLogger := logger.With().Str("component", "events").Logger()
	wmLogger := newLoggerAdapter(componentLogger)

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				componentLogger.Error().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			componentLogger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // stream is pre-created by EnsureStream
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &NATSPublisher{publisher: pub, logger: componentLogger}, nil
}

// PublishCatalogUpdated emits a catalog.updated event.
func (p *NATSPublisher) PublishCatalogUpdated(event *CatalogUpdated) error {
	payload, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}
	return p.publish(TopicCatalogUpdated, event.EventID, payload)
}

// PublishSearchCompleted emits a search.completed digest.
func (p *NATSPublisher) PublishSearchCompleted(event *SearchCompleted) error {
	payload, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}
	return p.publish(TopicSearchCompleted, event.EventID, payload)
}

func (p *NATSPublisher) publish(topic, eventID string, payload []byte) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	msg := message.NewMessage(eventID, payload)
	msg.Metadata.Set(natsgo.MsgIdHdr, eventID)

	err := p.publisher.Publish(topic, msg)
	metrics.RecordNATSPublish(topic, err)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", topic).Msg("event publish failed")
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	p.logger.Debug().Str("topic", topic).Str("event_id", eventID).Msg("event published")
	return nil
}

// Close shuts the publisher down. Subsequent publishes fail.
func (p *NATSPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}

// NopPublisher drops every event. Used when events are disabled.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

// NewNopPublisher returns a publisher that discards everything.
func NewNopPublisher() NopPublisher { return NopPublisher{} }

// PublishCatalogUpdated discards the event.
func (NopPublisher) PublishCatalogUpdated(*CatalogUpdated) error { return nil }

// PublishSearchCompleted discards the event.
func (NopPublisher) PublishSearchCompleted(*SearchCompleted) error { return nil }

// Close is a no-op.
func (NopPublisher) Close() error { return nil }
