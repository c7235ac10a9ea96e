package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

const (
	outboxChannel = "outbox_pending"
	outboxBatch   = 10
	// Страховочный интервал: события публикуются и без NOTIFY,
	// если уведомление потерялось вместе с соединением.
	outboxPollInterval = time.Minute
)

// OutboxWorker публикует события заявок из таблицы outbox в Kafka.
// Просыпается по NOTIFY из транзакции, записавшей событие, и по таймеру.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	stop      chan struct{}
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx)
	}()
	go func() {
		defer w.wg.Done()
		w.listenLoop(ctx)
	}()
}

// Stop блокируется до завершения обеих горутин воркера.
func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

// pollLoop выгребает накопившиеся события при старте и далее по таймеру.
func (w *OutboxWorker) pollLoop(ctx context.Context) {
	w.logger.Infof("outbox: draining pending events on startup")
	w.drain(ctx)

	ticker := time.NewTicker(outboxPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("outbox: poll loop stopped")
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// listenLoop держит выделенное соединение с LISTEN и выгребает события
// по каждому уведомлению. Потерянное соединение переоткрывается.
func (w *OutboxWorker) listenLoop(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("outbox: connect for LISTEN", err)
		}
		if _, err := c.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			c.Close(ctx)
			return e.Wrap("outbox: LISTEN", err)
		}

		conn = c
		w.logger.Infof("outbox: subscribed to %q", outboxChannel)
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Warnf("outbox: initial connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			if notif.Channel == outboxChannel {
				w.logger.Debugf("outbox: notified, draining")
				w.drain(ctx)
			}
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			// Штатный выход из WaitForNotification, цикл продолжается.
		default:
			w.logger.Warnf("outbox: listen connection lost: %v, reconnecting", err)
			conn.Close(ctx)
			time.Sleep(2 * time.Second)
			if err := connect(); err != nil {
				w.logger.Warnf("outbox: reconnect failed: %v", err)
				time.Sleep(5 * time.Second)
			}
		}
	}
}

// drain публикует события пачками, пока таблица не опустеет.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		events, err := w.repo.GetAndMarkAsProcessing(ctx, outboxBatch)
		if err != nil {
			w.logger.Warnf("outbox: fetch batch failed: %v", err)
			return
		}
		if len(events) == 0 {
			return
		}

		for _, event := range events {
			if err := w.publish(ctx, event); err != nil {
				// Событие останется в processing и будет подобрано позже.
				w.logger.Warnf("outbox: publish event %s failed: %v", event.EventID, err)
				continue
			}
			if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
				w.logger.Warnf("outbox: mark processed failed: %v", err)
			}
		}
	}
}

func (w *OutboxWorker) publish(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.RequestID, event.Payload))
	if err != nil {
		if isRetryableError(err) {
			return e.Wrap("temporary kafka failure, will retry", err)
		}
		return e.Wrap("permanent kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"no such host",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
