// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"context"
	"fmt"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subscriber consumes service events from JetStream with a durable,
// queue-grouped consumer. Redelivery stops after five attempts.
type Subscriber struct {
	subscriber message.Subscriber
}

// NewSubscriber creates a durable JetStream subscriber bound to the
// service stream.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSubscriber(url string, logger zerolog.Logger) (*Subscriber, error) {
	componentLogger := logger.With().Str("component", "events").Logger()
	wmLogger := newLoggerAdapter(componentLogger)

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				componentLogger.Error().Err(err).Msg("subscriber disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			componentLogger.Info().Str("url", nc.ConnectedUrl()).Msg("subscriber reconnected")
		}),
	}

	// Bind to the pre-created stream: our topics are narrower than the
	// stream subjects, so auto-provisioning would misname the stream.
	subOpts := []natsgo.SubOpt{
		natsgo.MaxDeliver(5),
		natsgo.MaxAckPending(1024),
		natsgo.AckWait(30 * time.Second),
		natsgo.DeliverNew(),
		natsgo.BindStream(StreamName),
	}

	wmConfig := wmNats.SubscriberConfig{
		URL:              url,
		QueueGroupPrefix: "villarank",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:         false,
			AutoProvision:    false,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    "villarank",
		},
	}

	sub, err := wmNats.NewSubscriber(wmConfig, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	return &Subscriber{subscriber: sub}, nil
}

// Subscribe returns a channel of messages for the topic. The channel
// closes when ctx is canceled or the subscriber is closed.
func (s *Subscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, topic)
}

// Close shuts the subscriber down.
func (s *Subscriber) Close() error {
	return s.subscriber.Close()
}
