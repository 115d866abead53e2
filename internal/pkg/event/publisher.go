package event

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	TypeResponseRecorded  = "learning.response.recorded"
	TypeFlashcardReviewed = "learning.flashcard.reviewed"
)

// Publisher emits engine events to a topic exchange. A nil Publisher
// is valid and drops everything, so the engine runs without a broker.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *logrus.Logger
}

func NewPublisher(amqpURL, exchange string, log *logrus.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// Publish is best-effort; delivery failures are logged, not returned
// to the request path.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		p.log.Errorf("event marshal failed: %v", err)
		return
	}

	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Errorf("event publish %s failed: %v", eventType, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
