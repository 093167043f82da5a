package events

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// Handler procesa un evento recibido
type Handler func(event Event) error

// RabbitMQConsumer escucha los eventos de cambio de todas las réplicas.
// Cada instancia tiene su propia cola exclusiva ligada al exchange.
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	handler    Handler
}

// NewRabbitMQConsumer crea el consumidor y su cola
func NewRabbitMQConsumer(rabbitURL, exchange string, handler Handler) (*RabbitMQConsumer, error) {
	conn, ch, err := dialExchange(rabbitURL, exchange)
	if err != nil {
		return nil, err
	}

	// Cola con nombre generado por el servidor, se borra al desconectar
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		closeAll(ch, conn)
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		closeAll(ch, conn)
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Printf("Queue '%s' bound to exchange '%s'", q.Name, exchange)

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  q.Name,
		handler:    handler,
	}, nil
}

// Start inicia el consumo de mensajes en una goroutine
func (c *RabbitMQConsumer) Start() error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manejamos manualmente)
		true,        // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Consumer registered, waiting for change events...")

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()
	return nil
}

// processMessage procesa un mensaje individual
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Error unmarshaling event: %v", err)
		// Formato inválido: se descarta sin requeue
		msg.Nack(false, false)
		return
	}

	switch event.Resource {
	case ResourceProperty, ResourceReservation:
	default:
		log.Printf("Unknown resource in event: %s", event.Resource)
		msg.Nack(false, false)
		return
	}

	if err := c.handler(event); err != nil {
		log.Printf("Error processing event (Resource=%s, Action=%s, ID=%s): %v",
			event.Resource, event.Action, event.ID, err)
		msg.Nack(false, true)
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Error acknowledging message: %v", err)
	}
}

// Close cierra las conexiones de RabbitMQ
func (c *RabbitMQConsumer) Close() error {
	log.Printf("Closing RabbitMQ consumer connections")
	return closeAll(c.channel, c.connection)
}
