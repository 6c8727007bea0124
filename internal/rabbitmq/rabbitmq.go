package rabbitmq

import (
	"context"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection keeps an AMQP connection alive, redialing after the broker
// drops it.
type Connection struct {
	conn *amqp.Connection
	lock sync.RWMutex
	log  logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	connection := &Connection{conn: conn, log: log}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)
			conn, err := amqp.Dial(url)
			if err == nil {
				c.lock.Lock()
				c.conn = conn
				c.lock.Unlock()
				c.log.Info(ctx, "RabbitMQ reconnected.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is recreated whenever it is closed by
// anything but Channel.Close.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}
	channel := &Channel{ch: ch, log: c.log}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	ch     *amqp.Channel
	lock   sync.RWMutex
	closed int32
	log    logging.Logger
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(c *Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-ch.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.Close()
			return
		}

		ch.log.Warning(ctx, "RabbitMQ channel lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)
			recreated, err := c.current().Channel()
			if err == nil {
				ch.lock.Lock()
				ch.ch = recreated
				ch.lock.Unlock()
				ch.log.Info(ctx, "RabbitMQ channel recreated.")
				break
			}
			ch.log.Error(ctx, "RabbitMQ channel recreate failed.", logging.Entry("err", err))
		}
	}
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue declares a durable queue with the given name.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) PublishWithContext(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	return ch.current().PublishWithContext(ctx, exchange, key, false, false, msg)
}

// Consume keeps delivering messages from the queue across channel
// recreation. The returned channel is closed after Close.
func (ch *Channel) Consume(queue, consumer string) <-chan amqp.Delivery {
	deliveries := make(chan amqp.Delivery)
	ctx := context.Background()

	go func() {
		defer close(deliveries)
		for {
			if ch.IsClosed() {
				ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				return
			}
			d, err := ch.current().Consume(queue, consumer, false, false, false, false, nil)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("queue", queue), logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}
			for msg := range d {
				deliveries <- msg
			}
			// Let watch set the closed flag before checking it.
			time.Sleep(reconnectDelay)
		}
	}()

	return deliveries
}
