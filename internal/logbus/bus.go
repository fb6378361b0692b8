package logbus

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Message is one bus event. Type is "log" for log lines; other producers use
// their own types, e.g. "pass_report". Seq increases by one per message.
type Message struct {
	Seq  uint64 `json:"seq"`
	Type string `json:"type"`
	Time int64  `json:"time"`
	Data any    `json:"data"`
}

type LogData struct {
	Level  string         `json:"level"`
	Msg    string         `json:"msg"`
	Fields map[string]any `json:"fields,omitempty"`
}

const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarn    = "warn"
	LevelError   = "error"
)

// Bus keeps the newest messages in a fixed ring and fans every message out to
// subscribers. Slow subscribers miss messages instead of blocking producers.
type Bus struct {
	mu     sync.RWMutex
	ring   []Message
	head   int
	size   int
	seq    uint64
	subs   map[chan Message]struct{}
	closed bool
	logger *zap.Logger
}

func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 200
	}
	return &Bus{
		ring: make([]Message, capacity),
		subs: make(map[chan Message]struct{}),
	}
}

// WithLogger mirrors every log message to l.
func (b *Bus) WithLogger(l *zap.Logger) *Bus {
	b.mu.Lock()
	b.logger = l
	b.mu.Unlock()
	return b
}

// Close disconnects all subscribers and drops the backlog.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.ring = nil
	b.head, b.size = 0, 0
}

// Snapshot returns the backlog, oldest first.
func (b *Bus) Snapshot() []Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Message, 0, b.size)
	for i := 0; i < b.size; i++ {
		out = append(out, b.ring[(b.head+i)%len(b.ring)])
	}
	return out
}

// Subscribe registers a listener. The returned func unsubscribes and closes the
// channel; calling it twice is safe.
func (b *Bus) Subscribe(buffer int) (<-chan Message, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan Message, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

func (b *Bus) Publish(typ string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.seq++
	msg := Message{Seq: b.seq, Type: typ, Time: time.Now().UnixMilli(), Data: data}
	b.push(msg)
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (b *Bus) push(msg Message) {
	n := len(b.ring)
	if b.size < n {
		b.ring[(b.head+b.size)%n] = msg
		b.size++
		return
	}
	b.ring[b.head] = msg
	b.head = (b.head + 1) % n
}

func (b *Bus) Log(level, message string, fields map[string]any) {
	level = normalizeLevel(level)
	b.Publish("log", LogData{Level: level, Msg: message, Fields: fields})

	b.mu.RLock()
	l := b.logger
	b.mu.RUnlock()
	if l != nil {
		mirror(l, level, message, fields)
	}
}

func normalizeLevel(level string) string {
	switch level {
	case LevelDebug, LevelInfo, LevelSuccess, LevelWarn, LevelError:
		return level
	case "warning":
		return LevelWarn
	default:
		return LevelInfo
	}
}

func mirror(l *zap.Logger, level, message string, fields map[string]any) {
	zf := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	switch level {
	case LevelDebug:
		l.Debug(message, zf...)
	case LevelSuccess:
		l.Info(message, append(zf, zap.Bool("success", true))...)
	case LevelWarn:
		l.Warn(message, zf...)
	case LevelError:
		l.Error(message, zf...)
	default:
		l.Info(message, zf...)
	}
}
