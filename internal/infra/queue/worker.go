package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AnalysisReceivedHandler processa um evento; erro manda a mensagem pra DLQ.
type AnalysisReceivedHandler interface {
	Handle(ctx context.Context, event AnalysisReceivedEvent) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Handler AnalysisReceivedHandler
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, handler AnalysisReceivedHandler, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Handler: handler, Logger: logger}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker stopped", zap.String("queue", queueName))
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de entregas da fila %s fechado", queueName)
			}
			w.process(ctx, d)
		}
	}
}

// Acknowledger é o lado de ack de uma amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	w.handle(ctx, d.Body, &d)
}

func (w *Worker) handle(ctx context.Context, body []byte, ack Acknowledger) {
	var event AnalysisReceivedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// mensagem malformada: rejeita sem requeue para não travar a fila
		w.Logger.Error("invalid message payload", zap.Error(err))
		ack.Nack(false, false)
		return
	}

	log := w.Logger.With(zap.String("event_id", event.EventID), zap.String("domain", event.Domain))

	if err := w.Handler.Handle(ctx, event); err != nil {
		log.Error("failed to handle analysis.received", zap.Error(err))
		ack.Nack(false, false)
		return
	}

	log.Debug("analysis.received handled")
	ack.Ack(false)
}
