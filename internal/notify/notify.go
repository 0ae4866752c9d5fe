// Package notify delivers per-session notifications (toasts and clock ticks)
// over the rpg-toolkit event bus so any number of stream subscribers can
// follow one tracker session.
package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/KirkDiggler/rpg-initiative/internal/notify Notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/clock"
)

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindTick    Kind = "tick"
)

// Event types published on the bus, one per Kind
const (
	EventSuccess = "initiative.notify.success"
	EventError   = "initiative.notify.error"
	EventTick    = "initiative.notify.tick"

	notificationKey = "notification"
)

var (
	_ core.Entity = (*entities.Combatant)(nil)
	_ core.Entity = sessionEntity("")
)

// Notification is one message for a session's stream
type Notification struct {
	SessionID      string    `json:"session_id"`
	Kind           Kind      `json:"kind"`
	Message        string    `json:"message,omitempty"`
	Code           string    `json:"code,omitempty"`
	CombatantID    string    `json:"combatant_id,omitempty"`
	ElapsedSeconds int64     `json:"elapsed_seconds,omitempty"`
	At             time.Time `json:"at"`

	// Target is the entity the notification is about, if any
	Target core.Entity `json:"-"`
}

// Notifier receives notifications from the orchestrator
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success builds a success toast
func Success(sessionID, message string) Notification {
	return Notification{SessionID: sessionID, Kind: KindSuccess, Message: message}
}

// Failure builds an error toast from err, keeping its code
func Failure(sessionID string, err error) Notification {
	return Notification{
		SessionID: sessionID,
		Kind:      KindError,
		Message:   errors.GetMessage(err),
		Code:      errors.GetCode(err).String(),
	}
}

// Tick builds a clock tick
func Tick(sessionID string, elapsed int64) Notification {
	return Notification{SessionID: sessionID, Kind: KindTick, ElapsedSeconds: elapsed}
}

// About sets the notification's target entity
func (n Notification) About(target core.Entity) Notification {
	n.Target = target
	if target != nil {
		n.CombatantID = target.GetID()
	}
	return n
}

type sessionEntity string

func (s sessionEntity) GetID() string   { return string(s) }
func (s sessionEntity) GetType() string { return "session" }

func eventType(k Kind) string {
	switch k {
	case KindError:
		return EventError
	case KindTick:
		return EventTick
	default:
		return EventSuccess
	}
}

// Config contains configuration for the notification bus
type Config struct {
	EventBus events.EventBus
	Clock    clock.Clock
	// Buffer is the per-subscription channel size
	Buffer int
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	errors.ValidateMin("Buffer", c.Buffer, 0, vb)
	return vb.Build()
}

// Bus publishes notifications as game events and fans them out to
// per-session subscriptions
type Bus struct {
	events events.EventBus
	clock  clock.Clock
	buffer int
}

// New creates a notification bus
func New(cfg *Config) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid notify config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	buffer := cfg.Buffer
	if buffer == 0 {
		buffer = 64
	}

	return &Bus{events: cfg.EventBus, clock: c, buffer: buffer}, nil
}

// Notify publishes n. Delivery failures are logged, never returned.
func (b *Bus) Notify(ctx context.Context, n Notification) {
	if n.At.IsZero() {
		n.At = b.clock.Now()
	}

	event := events.NewGameEvent(eventType(n.Kind), sessionEntity(n.SessionID), n.Target)
	event.Context().Set(notificationKey, n)

	if err := b.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish notification",
			"session_id", n.SessionID,
			"kind", n.Kind,
			"error", err)
	}
}

// Subscription streams one session's notifications until closed
type Subscription struct {
	C <-chan Notification

	bus  *Bus
	ids  []string
	once sync.Once
}

// Subscribe starts streaming notifications for sessionID. Notifications are
// dropped for a subscriber whose buffer is full.
func (b *Bus) Subscribe(sessionID string) *Subscription {
	ch := make(chan Notification, b.buffer)
	sub := &Subscription{C: ch, bus: b}

	handler := func(ctx context.Context, event events.Event) error {
		if event.Source() == nil || event.Source().GetID() != sessionID {
			return nil
		}
		raw, ok := event.Context().Get(notificationKey)
		if !ok {
			return nil
		}
		n, ok := raw.(Notification)
		if !ok {
			return nil
		}
		select {
		case ch <- n:
		default:
			slog.WarnContext(ctx, "subscriber buffer full, dropping notification",
				"session_id", sessionID,
				"kind", n.Kind)
		}
		return nil
	}

	for _, t := range []string{EventSuccess, EventError, EventTick} {
		sub.ids = append(sub.ids, b.events.SubscribeFunc(t, 0, handler))
	}

	return sub
}

// Close stops delivery. The channel is not closed so an in-flight publish
// never sends on a closed channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		for _, id := range s.ids {
			if err := s.bus.events.Unsubscribe(id); err != nil {
				slog.Warn("failed to unsubscribe notification handler", "subscription_id", id, "error", err)
			}
		}
	})
}
