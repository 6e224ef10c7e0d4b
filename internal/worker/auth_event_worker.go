package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"campus-webapps/internal/model"
	rabbitmqClient "campus-webapps/internal/platform/rabbitmq"
	"campus-webapps/internal/repository"
)

type AuthEventStore interface {
	Create(ctx context.Context, event *model.AuthEvent) error
}

// outcome of handling one delivery
type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRequeue
)

// AuthEventWorker consumes auth events and persists them.
type AuthEventWorker struct {
	conn      *amqp.Connection
	repo      AuthEventStore
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuthEventWorker(conn *amqp.Connection, repo AuthEventStore, queueName string, logger *slog.Logger) *AuthEventWorker {
	return &AuthEventWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *AuthEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmqClient.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					w.logger.Warn("auth event deliveries closed", "queue", w.queueName)
					return
				}
				switch w.handle(workerCtx, d.Body) {
				case outcomeAck:
					_ = d.Ack(false)
				case outcomeDrop:
					_ = d.Nack(false, false)
				case outcomeRequeue:
					// redelivered once; a second failure drops it
					_ = d.Nack(false, !d.Redelivered)
				}
			}
		}
	}()

	return nil
}

func (w *AuthEventWorker) handle(ctx context.Context, body []byte) outcome {
	var event model.AuthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		w.logger.Error("decode auth event failed", "error", err)
		return outcomeDrop
	}
	if event.EventID == "" || event.Kind == "" {
		w.logger.Error("auth event missing id or kind", "event_id", event.EventID)
		return outcomeDrop
	}

	if err := w.repo.Create(ctx, &event); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return outcomeAck
		}
		w.logger.Error("persist auth event failed", "event_id", event.EventID, "error", err)
		return outcomeRequeue
	}
	return outcomeAck
}

func (w *AuthEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
