// Package settings is a thin typed facade over bus, the teacher's
// trie-based pub/sub transport, trimmed to the single-level wildcard and
// non-blocking delivery this firmware core actually needs (no retained
// messages, no request/reply correlation: every event here is a live
// notification or a one-shot load/save ask to the storage collaborator).
// Bus wraps bus.T(...) calls in the nine fixed event constructors, the way
// the teacher's services/hal/internal/core/topics.go wraps capability
// topics.
package settings

import (
	"simwheel-go/bus"
	"simwheel-go/types"
)

// Bus is the settings/lifecycle event bus every core component publishes to
// and subscribes from.
type Bus struct {
	conn *bus.Connection
}

// New wraps an existing bus.Connection. Components share one underlying
// bus.Bus but each gets its own Connection so teardown/unsubscribe stays
// scoped to the caller.
func New(conn *bus.Connection) *Bus { return &Bus{conn: conn} }

func topicStart() bus.Topic               { return bus.T("event", "start") }
func topicShutdown() bus.Topic            { return bus.T("event", "shutdown") }
func topicConnected() bus.Topic           { return bus.T("event", "connected") }
func topicDisconnected() bus.Topic        { return bus.T("event", "disconnected") }
func topicBitePoint() bus.Topic           { return bus.T("event", "bite_point") }
func topicBatteryLevel() bus.Topic        { return bus.T("event", "battery_level") }
func topicLowBattery() bus.Topic          { return bus.T("event", "low_battery") }
func topicLoadSetting(k types.SettingKind) bus.Topic { return bus.T("setting", "load", string(k)) }
func topicSaveSetting(k types.SettingKind) bus.Topic { return bus.T("setting", "save", string(k)) }
func topicLoadSettingWildcard() bus.Topic            { return bus.T("setting", "load", "+") }
func topicSaveSettingWildcard() bus.Topic            { return bus.T("setting", "save", "+") }

// PublishStart fires the one-shot start notification.
func (b *Bus) PublishStart() { b.conn.Publish(b.conn.NewMessage(topicStart(), nil)) }

// PublishShutdown fires the one-shot shutdown notification.
func (b *Bus) PublishShutdown() { b.conn.Publish(b.conn.NewMessage(topicShutdown(), nil)) }

// PublishConnected fires when the transport collaborator establishes a link.
func (b *Bus) PublishConnected() { b.conn.Publish(b.conn.NewMessage(topicConnected(), nil)) }

// PublishDisconnected fires when the transport link drops.
func (b *Bus) PublishDisconnected() {
	b.conn.Publish(b.conn.NewMessage(topicDisconnected(), nil))
}

// PublishBitePoint fires whenever bite point calibration changes the value.
func (b *Bus) PublishBitePoint(v uint8) {
	b.conn.Publish(b.conn.NewMessage(topicBitePoint(), v))
}

// PublishBatteryLevel reports the current battery percentage.
func (b *Bus) PublishBatteryLevel(pct int16) {
	b.conn.Publish(b.conn.NewMessage(topicBatteryLevel(), pct))
}

// PublishLowBattery fires when the battery collaborator crosses the
// low-battery threshold.
func (b *Bus) PublishLowBattery() { b.conn.Publish(b.conn.NewMessage(topicLowBattery(), nil)) }

// LoadSetting asks the storage collaborator to load kind. The storage
// collaborator is expected to deserialize the value and call back into the
// owning service directly; this bus only carries the request.
func (b *Bus) LoadSetting(k types.SettingKind) {
	b.conn.Publish(b.conn.NewMessage(topicLoadSetting(k), nil))
}

// SaveSetting asks the storage collaborator to persist kind.
func (b *Bus) SaveSetting(k types.SettingKind) {
	b.conn.Publish(b.conn.NewMessage(topicSaveSetting(k), nil))
}

// OnStart subscribes fn to the one-shot start notification.
func (b *Bus) OnStart(fn func()) *bus.Subscription { return b.subscribeVoid(topicStart(), fn) }

// OnShutdown subscribes fn to the one-shot shutdown notification.
func (b *Bus) OnShutdown(fn func()) *bus.Subscription { return b.subscribeVoid(topicShutdown(), fn) }

// OnConnected subscribes fn to transport connect events.
func (b *Bus) OnConnected(fn func()) *bus.Subscription { return b.subscribeVoid(topicConnected(), fn) }

// OnDisconnected subscribes fn to transport disconnect events.
func (b *Bus) OnDisconnected(fn func()) *bus.Subscription {
	return b.subscribeVoid(topicDisconnected(), fn)
}

// OnBitePoint subscribes fn to bite-point change notifications.
func (b *Bus) OnBitePoint(fn func(v uint8)) *bus.Subscription {
	sub := b.conn.Subscribe(topicBitePoint())
	go b.drain(sub, func(p any) {
		if v, ok := p.(uint8); ok {
			fn(v)
		}
	})
	return sub
}

// OnBatteryLevel subscribes fn to battery percentage reports.
func (b *Bus) OnBatteryLevel(fn func(pct int16)) *bus.Subscription {
	sub := b.conn.Subscribe(topicBatteryLevel())
	go b.drain(sub, func(p any) {
		if v, ok := p.(int16); ok {
			fn(v)
		}
	})
	return sub
}

// OnLowBattery subscribes fn to low-battery threshold crossings.
func (b *Bus) OnLowBattery(fn func()) *bus.Subscription { return b.subscribeVoid(topicLowBattery(), fn) }

// OnLoadSetting subscribes fn to every LoadSetting request; fn receives the
// requested kind. Intended for the storage collaborator.
func (b *Bus) OnLoadSetting(fn func(types.SettingKind)) *bus.Subscription {
	sub := b.conn.Subscribe(topicLoadSettingWildcard())
	go func() {
		for m := range sub.Channel() {
			if m == nil {
				return
			}
			if len(m.Topic) == 3 {
				if s, ok := m.Topic[2].(string); ok {
					fn(types.SettingKind(s))
				}
			}
		}
	}()
	return sub
}

// OnSaveSetting subscribes fn to every SaveSetting request.
func (b *Bus) OnSaveSetting(fn func(types.SettingKind)) *bus.Subscription {
	sub := b.conn.Subscribe(topicSaveSettingWildcard())
	go func() {
		for m := range sub.Channel() {
			if m == nil {
				return
			}
			if len(m.Topic) == 3 {
				if s, ok := m.Topic[2].(string); ok {
					fn(types.SettingKind(s))
				}
			}
		}
	}()
	return sub
}

func (b *Bus) subscribeVoid(topic bus.Topic, fn func()) *bus.Subscription {
	sub := b.conn.Subscribe(topic)
	go b.drain(sub, func(any) { fn() })
	return sub
}

func (b *Bus) drain(sub *bus.Subscription, fn func(payload any)) {
	for m := range sub.Channel() {
		if m == nil {
			return
		}
		fn(m.Payload)
	}
}
