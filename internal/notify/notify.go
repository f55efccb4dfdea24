// Package notify carries user-visible notifications from command failures to
// whatever surface presents them.
package notify

import "sync"

// Severity classifies a Message for presentation.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Button is an acknowledging action attached to a Message.
type Button struct {
	Label string
}

// Message is a single notification.
type Message struct {
	Title             string
	Content           string
	Severity          Severity
	AffirmativeButton Button
}

// Failure returns the danger notification reported for a failed command.
func Failure(command string, err error) Message {
	return Message{
		Title:             "Failed to execute " + command,
		Content:           err.Error(),
		Severity:          SeverityDanger,
		AffirmativeButton: Button{Label: "OK"},
	}
}

// Box holds the most recent notification and fans it out to subscribers.
// The zero value is ready to use. Safe for concurrent use.
type Box struct {
	mu      sync.Mutex
	current *Message
	nextID  int
	subs    map[int]func(*Message)
}

// Show replaces the current notification with m and notifies subscribers.
func (b *Box) Show(m Message) {
	b.publish(&m)
}

// Clear dismisses the current notification.
func (b *Box) Clear() {
	b.publish(nil)
}

// Current returns the displayed notification, if any.
func (b *Box) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Message{}, false
	}
	return *b.current, true
}

// Subscribe registers fn to be called with every change. fn receives nil when
// the notification is cleared. The returned function unsubscribes.
//
// Precondition: fn must not call back into b.
func (b *Box) Subscribe(fn func(*Message)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(*Message))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *Box) publish(m *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = m
	for _, fn := range b.subs {
		if m == nil {
			fn(nil)
			continue
		}
		cp := *m
		fn(&cp)
	}
}
