package mailer

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer enqueues notification messages for out-of-band delivery. Enqueue
// failures are logged and swallowed; they never fail the calling workflow.
type Mailer interface {
	OrderConfirmation(orderID uint)
	AdminNotification(orderID uint)
	WelcomeClient(userID uint, password string)
}

type Message struct {
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

type AMQPMailer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPMailer(url, queue string) (*AMQPMailer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPMailer{conn: conn, channel: ch, queue: queue}, nil
}

func (m *AMQPMailer) OrderConfirmation(orderID uint) {
	m.publish(Message{
		Template: "order_confirmation",
		Params:   map[string]string{"order_id": strconv.FormatUint(uint64(orderID), 10)},
	})
}

func (m *AMQPMailer) AdminNotification(orderID uint) {
	m.publish(Message{
		Template: "admin_notification",
		Params:   map[string]string{"order_id": strconv.FormatUint(uint64(orderID), 10)},
	})
}

func (m *AMQPMailer) WelcomeClient(userID uint, password string) {
	m.publish(Message{
		Template: "welcome_client",
		Params: map[string]string{
			"user_id":  strconv.FormatUint(uint64(userID), 10),
			"password": password,
		},
	})
}

func (m *AMQPMailer) publish(msg Message) {
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to encode mail message %q: %v", msg.Template, err)
		return
	}

	err = m.channel.Publish(
		"",      // default exchange
		m.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("Failed to enqueue mail message %q: %v", msg.Template, err)
	}
}

func (m *AMQPMailer) Close() {
	if m.channel != nil {
		m.channel.Close()
	}
	if m.conn != nil {
		m.conn.Close()
	}
}

// LogMailer is used when no broker is reachable; messages are only logged.
type LogMailer struct{}

func (LogMailer) OrderConfirmation(orderID uint) {
	log.Printf("mail: order_confirmation order_id=%d", orderID)
}

func (LogMailer) AdminNotification(orderID uint) {
	log.Printf("mail: admin_notification order_id=%d", orderID)
}

func (LogMailer) WelcomeClient(userID uint, password string) {
	log.Printf("mail: welcome_client user_id=%d", userID)
}
