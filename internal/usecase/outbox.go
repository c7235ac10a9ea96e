package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventRequestCreated  OutboxEventType = "payment_request.created"
	EventRequestAccepted OutboxEventType = "payment_request.accepted"
	EventRequestRejected OutboxEventType = "payment_request.rejected"
)

// OutboxEvent — запись transactional outbox. Создается в одной транзакции
// с изменением заявки и публикуется в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	RequestID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NotificationEvent — полезная нагрузка уведомления о заявке в Kafka.
type NotificationEvent struct {
	EventID    string               `json:"event_id"`
	EventType  OutboxEventType      `json:"event_type"`
	RequestID  int64                `json:"request_id"`
	BuyerID    int64                `json:"buyer_id"`
	SellerID   int64                `json:"seller_id"`
	ProductID  int64                `json:"product_id"`
	Status     domain.RequestStatus `json:"status"`
	TotalPrice decimal.Decimal      `json:"total_price"`
	OccurredAt int64                `json:"occurred_at"`
}

// NewRequestOutboxEvent собирает событие outbox для заявки на оплату.
func NewRequestOutboxEvent(eventType OutboxEventType, request *domain.PaymentRequest, sellerID int64) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(&NotificationEvent{
		EventID:    eventID,
		EventType:  eventType,
		RequestID:  request.ID,
		BuyerID:    request.BuyerID,
		SellerID:   sellerID,
		ProductID:  request.ProductID,
		Status:     request.Status,
		TotalPrice: request.TotalPrice,
		OccurredAt: time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		RequestID: request.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
