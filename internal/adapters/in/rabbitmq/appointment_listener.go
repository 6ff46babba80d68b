package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-schedule-calendar/internal/config"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
)

// AppointmentListener слушает события изменения записей на прием
// и перезагружает доступность затронутого дня, чтобы локальное
// состояние не расходилось с бэкендом между синхронизациями.
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.CalendarUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

// AppointmentEvent - сообщение об изменении записи на прием
type AppointmentEvent struct {
	DoctorID string          `json:"doctor_id"`
	Date     json_types.Date `json:"date"`
	Action   string          `json:"action"`
}

func NewAppointmentListener(useCase in.CalendarUseCase, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.appointment.process_failed", out.LogFields{
						"error": err.Error(),
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.appointment.queue_started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var event AppointmentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	l.logger.Debug("rabbitmq.appointment.event", out.LogFields{
		"doctorId": event.DoctorID,
		"date":     event.Date.String(),
		"action":   event.Action,
	})

	return l.useCase.SyncDay(ctx, event.DoctorID, event.Date)
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
