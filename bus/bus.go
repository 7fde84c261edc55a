// Package bus is the settings/lifecycle event transport every core
// component in this firmware publishes to and subscribes from: a trie of
// topic tokens, non-blocking bounded-queue delivery (a slow subscriber loses
// its oldest queued message rather than stalling the publisher), and a
// single wildcard token for "any setting kind" subscriptions. Retained
// messages, multi-level wildcards and request/reply correlation — all
// present in the source this was distilled from — have no caller here: the
// settings bus only ever fires live notifications and asks storage to
// load/save one key at a time, so that machinery has been cut rather than
// carried unused.
package bus

import "sync"

// Token can be string or int (or any comparable type you choose to use as a key).
type Token any
type Topic []Token

func T(tokens ...Token) Topic {
	for _, tok := range tokens {
		switch tok.(type) {
		case string, int, int32, int64, uint, uint32, uint64, uintptr:
			// fine
		default:
			// try a map assignment to force panic early if not comparable
			_ = map[Token]struct{}{tok: {}}
		}
	}
	return Topic(tokens)
}

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic   Topic
	Payload any
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	bus   *Bus
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Trie node
// -----------------------------------------------------------------------------

type node struct {
	children map[Token]*node
	subs     []*Subscription
}

func ensureChild(n *node, t Token) *node {
	if n.children == nil {
		n.children = make(map[Token]*node)
	}
	if n.children[t] == nil {
		n.children[t] = &node{}
	}
	return n.children[t]
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

var defaultQLen = 3

type Options struct {
	QueueLen int
	Wildcard Token
}

type Bus struct {
	mu       sync.Mutex
	root     *node
	qLen     int
	wildcard Token
}

func NewBus(queueLen int) *Bus {
	return NewBusWithOptions(Options{QueueLen: queueLen, Wildcard: "+"})
}

func NewBusWithOptions(o Options) *Bus {
	if o.QueueLen <= 0 {
		o.QueueLen = defaultQLen
	}
	if o.Wildcard == nil {
		o.Wildcard = "+"
	}
	return &Bus{
		root:     &node{},
		qLen:     o.QueueLen,
		wildcard: o.Wildcard,
	}
}

func (b *Bus) NewMessage(topic Topic, payload any) *Message {
	return &Message{Topic: topic, Payload: payload}
}

func (b *Bus) addSubscription(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.root
	for _, t := range topic {
		n = ensureChild(n, t)
	}
	n.subs = append(n.subs, sub)
}

func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	var subs []*Subscription
	b.collectSubscribersLocked(b.root, msg.Topic, 0, &subs)
	b.mu.Unlock()

	for _, sub := range subs {
		b.tryDeliver(sub, msg)
	}
}

func trySend(ch chan *Message, m *Message) bool {
	select {
	case ch <- m:
		return true
	default:
		return false
	}
}

func drainOne(ch chan *Message) {
	select {
	case <-ch:
	default:
	}
}

func (b *Bus) tryDeliver(sub *Subscription, msg *Message) {
	defer func() { _ = recover() }() // channel may be closed; best-effort delivery
	if trySend(sub.ch, msg) {
		return
	}
	drainOne(sub.ch)
	_ = trySend(sub.ch, msg)
}

// -----------------------------------------------------------------------------
// Unsubscribe + pruning
// -----------------------------------------------------------------------------

func (b *Bus) unsubscribe(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var stack []*node
	for _, t := range topic {
		if n.children == nil {
			return
		}
		child := n.children[t]
		if child == nil {
			return
		}
		stack = append(stack, n)
		n = child
	}

	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	b.pruneEmptyLocked(stack, topic)
}

func (b *Bus) pruneEmptyLocked(stack []*node, path []Token) {
	for i := len(path) - 1; i >= 0; i-- {
		parent := stack[i]
		key := path[i]
		child := parent.children[key]
		if child != nil && len(child.subs) == 0 && len(child.children) == 0 {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

// -----------------------------------------------------------------------------
// Subscriber collection (topic = concrete message topic, matched against
// subscriptions that may contain the wildcard token at any position)
// -----------------------------------------------------------------------------

func (b *Bus) collectSubscribersLocked(n *node, topic Topic, depth int, out *[]*Subscription) {
	if n == nil {
		return
	}
	if depth == len(topic) {
		*out = append(*out, n.subs...)
		return
	}
	tok := topic[depth]
	if n.children == nil {
		return
	}
	if child := n.children[tok]; child != nil {
		b.collectSubscribersLocked(child, topic, depth+1, out)
	}
	if wc := n.children[b.wildcard]; wc != nil {
		b.collectSubscribersLocked(wc, topic, depth+1, out)
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	subs []*Subscription
	mu   sync.Mutex
	id   string
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) NewMessage(topic Topic, payload any) *Message {
	return c.bus.NewMessage(topic, payload)
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, c.bus.qLen), bus: c.bus, conn: c}
	c.bus.addSubscription(topic, sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub.topic, sub)
	c.mu.Lock()
	c.subs = removeSub(c.subs, sub)
	c.mu.Unlock()
	close(sub.ch)
}

func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub.topic, sub)
		close(sub.ch)
	}
}

func removeSub(list []*Subscription, target *Subscription) []*Subscription {
	for i, s := range list {
		if s == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
