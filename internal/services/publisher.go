package services

// EventPublisher publishes domain events to the message broker. The
// concrete implementation lives in pkg/rabbitmq; services only need the
// publish call so tests can substitute a mock, and a nil publisher simply
// skips publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
