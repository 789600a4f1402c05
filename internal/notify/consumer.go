package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"residence-hub/internal/events"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	DLXName     string
	DLXQueue    string
	ServiceName string
	Location    *time.Location
}

type Consumer struct {
	cfg      Config
	notifier Notifier

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n Notifier) *Consumer {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	return &Consumer{cfg: cfg, notifier: n}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	fail := func(format string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf(format, err)
	}

	// сначала DLX, чтобы очередь могла на него ссылаться
	if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
		return fail("declare dlx failed: %w", err)
	}
	if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
		return fail("declare dlq failed: %w", err)
	}
	if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
		return fail("bind dlq failed: %w", err)
	}

	args := amqp.Table{"x-dead-letter-exchange": c.cfg.DLXName}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		return fail("declare queue failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return fail("bind queue failed: %w", err)
		}
	}

	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.Handle(d.RoutingKey, d.Body); err != nil {
				// битое сообщение уходит в DLQ, а не крутится по кругу
				log.Printf("[notify] handle error key=%s err=%v -> dlq", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle превращает событие в текст уведомления
func (c *Consumer) Handle(key string, body []byte) error {
	switch key {
	case events.RKReservationCreated:
		ev, err := events.Decode[events.ReservationCreated](body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Nueva reserva",
			fmt.Sprintf("Reserva %d (instalación %d, usuario %d) %s",
				ev.ReservationID, ev.AmenityID, ev.UserID, HumanTimeRange(ev.Start, ev.End, c.cfg.Location)))

	case events.RKEventCreated:
		ev, err := events.Decode[events.EventCreated](body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Nuevo evento", fmt.Sprintf("%s (%s)", ev.Title, ev.Date))

	case events.RKMessageSent:
		ev, err := events.Decode[events.MessageSent](body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Nuevo mensaje",
			fmt.Sprintf("Usuario %d escribió a usuario %d", ev.SenderID, ev.ReceiverID))

	case events.RKVisitorCheckedIn, events.RKVisitorCheckedOut:
		ev, err := events.Decode[events.VisitorChanged](body)
		if err != nil {
			return err
		}
		subject := "Visitante ingresó"
		if key == events.RKVisitorCheckedOut {
			subject = "Visitante salió"
		}
		at := time.Unix(ev.At, 0).In(c.cfg.Location).Format("2006-01-02 15:04")
		return c.notifier.Notify(subject, fmt.Sprintf("%s (%s) %s", ev.Name, ev.Type, at))

	default:
		log.Printf("[notify] skip unknown key=%s", key)
	}
	return nil
}
