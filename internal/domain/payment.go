package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus — статус заявки на оплату.
type RequestStatus string

const (
	StatusInProcessing RequestStatus = "in_processing"
	StatusAccepted     RequestStatus = "accepted"
	StatusRejected     RequestStatus = "rejected"
)

// Valid сообщает, известен ли статус.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusInProcessing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal сообщает, является ли статус конечным.
// Переходов из конечного статуса не существует.
func (s RequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// PaymentMethod — канал оплаты продавца: название и QR-код.
// Список методов показывается покупателю при оформлении заявки.
type PaymentMethod struct {
	ID        int64
	OwnerID   int64
	Title     string
	QRImage   string // ключ QR-кода в S3
	CreatedAt time.Time
}

func NewPaymentMethod(ownerID int64, title, qrImage string) *PaymentMethod {
	return &PaymentMethod{
		OwnerID: ownerID,
		Title:   title,
		QRImage: qrImage,
	}
}

// PaymentRequest — заявка покупателя на оплату: «я оплатил, вот чек».
// TotalPrice фиксируется в момент создания (quantity × цена продукта)
// и не пересчитывается при последующих изменениях цены.
type PaymentRequest struct {
	ID         int64
	BuyerID    int64
	ProductID  int64
	Quantity   int32
	CheckImage string // ключ чека в S3
	TotalPrice decimal.Decimal
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewPaymentRequest(buyerID, productID int64, quantity int32, checkImage string, totalPrice decimal.Decimal) *PaymentRequest {
	return &PaymentRequest{
		BuyerID:    buyerID,
		ProductID:  productID,
		Quantity:   quantity,
		CheckImage: checkImage,
		TotalPrice: totalPrice,
		Status:     StatusInProcessing,
	}
}

// Payment — неизменяемая запись о подтвержденной оплате.
// BuyerName и ProductTitle — снапшоты на момент принятия заявки: запись
// намеренно не ссылается на живые строки User/Product и переживает их
// удаление или изменение.
type Payment struct {
	ID           int64
	SellerID     int64
	BuyerName    string
	ProductTitle string
	Quantity     int32
	CheckImage   string
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
}
