package service

import "context"

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier accepts messages for best-effort delivery. Send must not block
// on delivery and has no error to report: failures are the notifier's to
// log.
type Notifier interface {
	Send(ctx context.Context, msg Message)
}

// Mailer performs the actual delivery for a Dispatcher.
type Mailer interface {
	Deliver(ctx context.Context, to, subject, body string) error
}
