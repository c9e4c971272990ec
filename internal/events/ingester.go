// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// eventSource is the subscription surface the ingester consumes.
type eventSource interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// CatalogSource provides the current catalog snapshot.
type CatalogSource interface {
	Properties() []models.Property
}

// Reloader rebuilds the analytical view from a snapshot.
type Reloader interface {
	Reload(ctx context.Context, properties []models.Property) error
}

// Broadcaster fans a feed message out to connected clients.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Ingester consumes the event stream: catalog.updated triggers a
// DuckDB reload from the live catalog snapshot, and both topics are
// forwarded to the websocket feed. A nil feed disables forwarding.
type Ingester struct {
	source    eventSource
	catalog   CatalogSource
	analytics Reloader
	feed      Broadcaster
	logger    zerolog.Logger
}

// NewIngester wires the consumer side of the event bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIngester(source eventSource, catalog CatalogSource, analytics Reloader, feed Broadcaster, logger zerolog.Logger) *Ingester {
	return &Ingester{
		source:    source,
		catalog:   catalog,
		analytics: analytics,
		feed:      feed,
		logger:    logger.With().Str("component", "ingester").Logger(),
	}
}

// Run consumes both topics until ctx is canceled or the subscriber
// closes. It is shaped to run under a supervisor.
func (i *Ingester) Run(ctx context.Context) error {
	catalogMsgs, err := i.source.Subscribe(ctx, TopicCatalogUpdated)
	if err != nil {
		return err
	}
	searchMsgs, err := i.source.Subscribe(ctx, TopicSearchCompleted)
	if err != nil {
		return err
	}

	i.logger.Info().Msg("event ingester running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-catalogMsgs:
			if !ok {
				return nil
			}
			i.handleCatalogUpdated(ctx, msg)
		case msg, ok := <-searchMsgs:
			if !ok {
				return nil
			}
			i.handleSearchCompleted(msg)
		}
	}
}

func (i *Ingester) handleCatalogUpdated(ctx context.Context, msg *message.Message) {
	metrics.RecordNATSConsume(TopicCatalogUpdated)

	event, err := UnmarshalCatalogUpdated(msg.Payload)
	if err != nil {
		// A malformed payload never becomes deliverable; drop it.
		i.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("malformed catalog event dropped")
		msg.Ack()
		return
	}

	// The event is the trigger; the data comes from the live snapshot.
	if err := i.analytics.Reload(ctx, i.catalog.Properties()); err != nil {
		i.logger.Error().Err(err).Msg("analytics reload failed, message will be redelivered")
		msg.Nack()
		return
	}

	i.broadcast(TopicCatalogUpdated, msg.Payload)
	i.logger.Info().
		Str("trigger", event.Trigger).
		Int("properties", event.Properties).
		Int("skipped", event.Skipped).
		Msg("catalog event ingested")
	msg.Ack()
}

func (i *Ingester) handleSearchCompleted(msg *message.Message) {
	metrics.RecordNATSConsume(TopicSearchCompleted)

	if _, err := UnmarshalSearchCompleted(msg.Payload); err != nil {
		i.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("malformed search event dropped")
		msg.Ack()
		return
	}

	i.broadcast(TopicSearchCompleted, msg.Payload)
	msg.Ack()
}

func (i *Ingester) broadcast(topic string, payload []byte) {
	if i.feed == nil {
		return
	}
	data, err := json.Marshal(FeedMessage{Topic: topic, Event: payload})
	if err != nil {
		i.logger.Error().Err(err).Str("topic", topic).Msg("feed envelope marshal failed")
		return
	}
	i.feed.Broadcast(data)
}
