package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Recursos y acciones de los eventos de cambio
const (
	ResourceProperty    = "property"
	ResourceReservation = "reservation"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event describe un cambio sobre un recurso
type Event struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id"`
}

// Publisher publica eventos de cambio
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher descarta los eventos; se usa cuando no hay RabbitMQ configurado
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NoopPublisher) Close() error                                   { return nil }

// RabbitMQPublisher publica eventos en un exchange fanout
type RabbitMQPublisher struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
}

// NewRabbitMQPublisher conecta con RabbitMQ y declara el exchange
func NewRabbitMQPublisher(rabbitURL, exchange string) (*RabbitMQPublisher, error) {
	conn, ch, err := dialExchange(rabbitURL, exchange)
	if err != nil {
		return nil, err
	}
	log.Printf("RabbitMQ publisher ready on exchange '%s'", exchange)

	return &RabbitMQPublisher{
		connection: conn,
		channel:    ch,
		exchange:   exchange,
	}, nil
}

// dialExchange abre conexión y channel y declara el exchange fanout durable
func dialExchange(rabbitURL, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return conn, ch, nil
}

// Publish serializa y publica el evento. El channel no es seguro entre goroutines.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close cierra channel y conexión
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return closeAll(p.channel, p.connection)
}

func closeAll(ch *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if ch != nil {
		if err := ch.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ: %v", errs)
	}
	return nil
}
