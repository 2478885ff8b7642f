// Package notify abstracts outbound mail. The core never depends on a
// concrete delivery mechanism; deployments plug in their own sender and
// everything else uses the no-op.
package notify

// Notifier delivers one message to one recipient.
type Notifier interface {
	Send(subject, html, text, recipient string) error
}

// Noop discards every message. Used whenever no recipient is configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Send(subject, html, text, recipient string) error {
	return nil
}
