package realtime

import (
	"campusflow/core/logger"
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Broker carries events between server instances.
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	Run(ctx context.Context, deliver func(Event)) error
}

// LocalBroker delivers in-process; used by tests and single-instance setups.
type LocalBroker struct {
	events chan Event
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{events: make(chan Event, 256)}
}

func (b *LocalBroker) Publish(ctx context.Context, ev Event) error {
	select {
	case b.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *LocalBroker) Run(ctx context.Context, deliver func(Event)) error {
	for {
		select {
		case ev := <-b.events:
			deliver(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

type RedisBroker struct {
	client  *redis.Client
	channel string
}

func NewRedisBroker(client *redis.Client, channel string) *RedisBroker {
	return &RedisBroker{client: client, channel: channel}
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBroker) Run(ctx context.Context, deliver func(Event)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		logger.Error("RedisBroker:Run:Subscribe", err)
		return err
	}
	logger.Info("RedisBroker:Run:Subscribed", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("RedisBroker:Run:Decode", err)
				continue
			}
			deliver(ev)
		case <-ctx.Done():
			return nil
		}
	}
}
