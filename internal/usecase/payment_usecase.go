package usecase

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// PaymentUseCase реализует workflow заявок на оплату: создание заявки
// покупателем, решение продавца и формирование записи платежа.
type PaymentUseCase struct {
	requestRepo PaymentRequestRepository
	paymentRepo PaymentRepository
	methodRepo  PaymentMethodRepository
	productRepo ProductRepository
	userRepo    UserRepository
	outboxRepo  OutboxRepository
	filesInfra  FilesInfra
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewPaymentUC(
	requestRepo PaymentRequestRepository,
	paymentRepo PaymentRepository,
	methodRepo PaymentMethodRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	filesInfra FilesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		requestRepo: requestRepo,
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		filesInfra:  filesInfra,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// CreateRequest создает заявку на оплату со статусом in_processing.
// Итоговая сумма фиксируется здесь: quantity × текущая цена продукта,
// точной десятичной арифметикой. Последующие изменения цены на заявку
// не влияют.
func (p *PaymentUseCase) CreateRequest(ctx context.Context, principal domain.Principal, req *CreatePaymentRequestReq) (*domain.PaymentRequest, error) {
	const op = "PaymentUseCase.CreateRequest"

	if req.Quantity < 1 {
		return nil, e.Wrap(op, e.ErrQuantityTooSmall)
	}
	if len(req.Check.Data) == 0 {
		return nil, e.Wrap(op, e.ErrNoFile)
	}

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	totalPrice := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	// Чек загружается в S3 до открытия транзакции: строка заявки должна
	// ссылаться на уже существующий объект.
	checkKey, err := p.filesInfra.UploadFile(ctx, NewUploadFileReq("check", req.Check))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.PaymentRequest

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// При ошибке — Rollback транзакции и очистка загруженного чека.
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			p.logger.Warnf(
				"Cleaning up orphaned check after transaction failure. product_id: %d, error: %v",
				req.ProductID,
				e.Wrap(op, err),
			)
			p.filesInfra.CleanupFiles([]string{checkKey})
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err = p.requestRepo.Create(ctx, domain.NewPaymentRequest(
		principal.UserID, product.ID, req.Quantity, checkKey, totalPrice,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := NewRequestOutboxEvent(EventRequestCreated, created, product.OwnerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = p.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// Transition переводит заявку в новый статус по решению продавца.
// Смена статуса — атомарный условный UPDATE: изменяется только заявка,
// все еще находящаяся в in_processing. Повторный или конкурирующий accept
// не изменит заявку и не создаст второй платеж.
func (p *PaymentUseCase) Transition(ctx context.Context, principal domain.Principal, req *TransitionReq) (*TransitionRes, error) {
	const op = "PaymentUseCase.Transition"

	if !req.Status.Valid() {
		return nil, e.Wrap(op, e.ErrInvalidStatus)
	}

	request, err := p.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.GetByID(ctx, request.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Решение по заявке принимает только владелец продукта.
	if product.OwnerID != principal.UserID {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	updated, changed, err := p.requestRepo.UpdateStatusIfInProcessing(ctx, req.RequestID, req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if changed && req.Status == domain.StatusAccepted {
		if err = p.createPaymentSnapshot(ctx, updated, product); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if changed && req.Status.Terminal() {
		eventType := EventRequestAccepted
		if req.Status == domain.StatusRejected {
			eventType = EventRequestRejected
		}

		event, eventErr := NewRequestOutboxEvent(eventType, updated, product.OwnerID)
		if eventErr != nil {
			err = eventErr
			return nil, e.Wrap(op, err)
		}
		if _, err = p.outboxRepo.Create(ctx, event); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewTransitionRes(updated, changed), nil
}

// createPaymentSnapshot формирует неизменяемую запись платежа.
// Имя покупателя и название продукта копируются как снапшоты и дальше
// живут независимо от строк User/Product.
func (p *PaymentUseCase) createPaymentSnapshot(ctx context.Context, request *domain.PaymentRequest, product *domain.Product) error {
	buyer, err := p.userRepo.GetByID(ctx, request.BuyerID)
	if err != nil {
		return err
	}

	buyerName := buyer.FirstName
	if buyerName == "" {
		buyerName = buyer.Username
	}

	_, err = p.paymentRepo.Create(ctx, &domain.Payment{
		SellerID:     product.OwnerID,
		BuyerName:    buyerName,
		ProductTitle: product.Title,
		Quantity:     request.Quantity,
		CheckImage:   request.CheckImage,
		TotalPrice:   request.TotalPrice,
	})

	return err
}

// ListForSeller возвращает заявки по продуктам продавца, новые первыми.
func (p *PaymentUseCase) ListForSeller(ctx context.Context, principal domain.Principal, onlyInProcessing bool, limit int) ([]PaymentRequestInfo, error) {
	const op = "PaymentUseCase.ListForSeller"

	requests, err := p.requestRepo.ListForSeller(ctx, principal.UserID, onlyInProcessing, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return requests, nil
}

// ListPayments возвращает подтвержденные платежи продавца и их сумму.
// Сумма — живой агрегат по текущим строкам, без кэширования.
func (p *PaymentUseCase) ListPayments(ctx context.Context, principal domain.Principal) (*PaymentsLedger, error) {
	const op = "PaymentUseCase.ListPayments"

	payments, err := p.paymentRepo.ListForSeller(ctx, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total := decimal.Zero
	for i := range payments {
		total = total.Add(payments[i].TotalPrice)
	}

	return NewPaymentsLedger(payments, total), nil
}

// ListSellerMethods возвращает методы оплаты владельца продукта —
// их видит покупатель при оформлении заявки.
func (p *PaymentUseCase) ListSellerMethods(ctx context.Context, productID int64) ([]domain.PaymentMethod, error) {
	const op = "PaymentUseCase.ListSellerMethods"

	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	methods, err := p.methodRepo.ListForUser(ctx, product.OwnerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return methods, nil
}

// CreateMethod регистрирует метод оплаты продавца (название + QR-код).
func (p *PaymentUseCase) CreateMethod(ctx context.Context, principal domain.Principal, req *CreateMethodReq) (*domain.PaymentMethod, error) {
	const op = "PaymentUseCase.CreateMethod"

	if req.Title == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}
	if len(req.QR.Data) == 0 {
		return nil, e.Wrap(op, e.ErrNoFile)
	}

	qrKey, err := p.filesInfra.UploadFile(ctx, NewUploadFileReq("qr", req.QR))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	method, err := p.methodRepo.Create(ctx, domain.NewPaymentMethod(principal.UserID, req.Title, qrKey))
	if err != nil {
		p.filesInfra.CleanupFiles([]string{qrKey})
		return nil, e.Wrap(op, err)
	}

	return method, nil
}
