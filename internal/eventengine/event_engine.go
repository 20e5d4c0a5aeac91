package eventengine

import (
	"fmt"
	"sync"

	"github.com/devjunayed/online-nursery-website-server/internal/eventengine/event"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	Logger        *zap.Logger

	// BufferSize sizes the engine's inbox. Defaults to 20.
	BufferSize int
}

// eventEngine fans published events out to every subscriber of the event
// name, on a single goroutine owned by the engine.
//
// RegisterEvents and Subscribe must complete during wiring, before traffic
// starts; only Publish is safe to call concurrently afterwards.
type eventEngine struct {
	*EventEngineConfig
	eventEngineCh chan *event.Event
	events        map[event.EventName][]*event.Subscriber
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil || cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.Logger == nil {
		panic("eventengine: DoneCh, InternalSrvWG and Logger are required")
	}

	if cfg.BufferSize == 0 {
		cfg.BufferSize = 20
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName][]*event.Subscriber),
		eventEngineCh:     make(chan *event.Event, cfg.BufferSize),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	e.Logger.Info("event engine is listening")

	for {
		select {
		case <-e.DoneCh:
			// the server only signals DoneCh after in-flight requests have
			// drained, so nothing publishes past this point
			close(e.eventEngineCh)
			for ev := range e.eventEngineCh {
				e.broadcast(ev)
			}

			e.closeSubscriberChannels()
			e.Logger.Info("event engine shut down")
			return

		case ev, isOpened := <-e.eventEngineCh:
			if !isOpened {
				return
			}

			e.broadcast(ev)
		}
	}
}

func (e *eventEngine) broadcast(ev *event.Event) {
	subscribers, exists := e.events[ev.Name]
	if !exists {
		e.Logger.Warn("event has no registration",
			zap.String("event", string(ev.Name)),
		)
		return
	}

	for _, sub := range subscribers {
		if sub.AddressCh == nil {
			e.Logger.Warn("subscriber has a nil address channel",
				zap.String("subscriber", string(sub.Name)),
				zap.String("event", string(ev.Name)),
			)
			continue
		}

		sub.AddressCh <- ev.Payload
	}
}

// RegisterEvents adds the events a publisher will publish. Register an event
// before publishing or subscribing to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			continue
		}

		e.events[eventName] = nil
	}
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found: the publishing service must call RegisterEvents before anyone subscribes",
			toEventName,
		)
	}

	e.events[toEventName] = append(
		e.events[toEventName],
		newSubscriber,
	)

	return nil
}

func (e *eventEngine) Publish(ev *event.Event) error {
	if _, exists := e.events[ev.Name]; !exists {
		return fmt.Errorf(
			"event '%v' not found: the publishing service must call RegisterEvents first",
			ev.Name,
		)
	}

	e.eventEngineCh <- ev

	return nil
}

func (e *eventEngine) closeSubscriberChannels() {
	closed := make(map[chan<- any]struct{})

	for _, subscribers := range e.events {
		for _, sub := range subscribers {
			if sub.AddressCh == nil {
				continue
			}

			// a subscriber may listen on one channel for several events
			if _, done := closed[sub.AddressCh]; done {
				continue
			}

			closed[sub.AddressCh] = struct{}{}
			close(sub.AddressCh)
		}
	}
}
