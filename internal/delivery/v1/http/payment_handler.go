package http

import (
	"encoding/json"
	"net/http"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUC
	logger         logger.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUC, logger logger.Logger) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase, logger: logger}
}

// Очередь на главной странице продавца ограничена тремя заявками;
// полный список — на отдельном экране заявок.
const profileRequestsLimit = 3

// getProfile
//
//	@Summary		Профиль продавца
//	@Description	Последние необработанные заявки на оплату (не более трех)
//	@Tags			payments
//	@Produce		json
//	@Success		200	{array}		PaymentRequestInfoResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/profile [get]
func (h *PaymentHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	requests, err := h.paymentUsecase.ListForSeller(r.Context(), principal, true, profileRequestsLimit)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPaymentRequestInfoResponses(requests))
}

// listRequests
//
//	@Summary		Заявки на оплату продавца
//	@Description	Все заявки по продуктам продавца, новые первыми; ?status=in_processing оставляет только необработанные
//	@Tags			payments
//	@Produce		json
//	@Param			status	query		string	false	"Фильтр статуса (in_processing)"
//	@Success		200		{array}		PaymentRequestInfoResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/payment-requests [get]
func (h *PaymentHandler) listRequests(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	onlyInProcessing := r.URL.Query().Get("status") == string(domain.StatusInProcessing)

	requests, err := h.paymentUsecase.ListForSeller(r.Context(), principal, onlyInProcessing, 0)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPaymentRequestInfoResponses(requests))
}

type transitionBody struct {
	Status string `json:"status"`
}

// transitionRequest
//
//	@Summary		Решение по заявке
//	@Description	Переводит заявку в accepted или rejected; accepted создает запись платежа. Повторное решение состояние не меняет
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID заявки"
//	@Param			body	body		transitionBody	true	"Новый статус"
//	@Success		200		{object}	TransitionResponse
//	@Failure		403		{object}	ErrorResponse
//	@Router			/payment-requests/{id}/status [post]
func (h *PaymentHandler) transitionRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	requestID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body transitionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	res, err := h.paymentUsecase.Transition(r.Context(), principal, &usecase.TransitionReq{
		RequestID: requestID,
		Status:    domain.RequestStatus(body.Status),
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &TransitionResponse{
		Request: newPaymentRequestResponse(res.Request),
		Changed: res.Changed,
	})
}

// listPayments
//
//	@Summary		Платежи продавца
//	@Description	Подтвержденные платежи и их сумма
//	@Tags			payments
//	@Produce		json
//	@Success		200	{object}	PaymentsLedgerResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/payments [get]
func (h *PaymentHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	ledger, err := h.paymentUsecase.ListPayments(r.Context(), principal)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPaymentsLedgerResponse(ledger))
}

// listSellerMethods
//
//	@Summary		Методы оплаты продавца
//	@Description	Методы оплаты владельца продукта; показываются покупателю при оформлении заявки
//	@Tags			payments
//	@Produce		json
//	@Param			id	path		int	true	"ID продукта"
//	@Success		200	{array}		PaymentMethodResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id}/payment [get]
func (h *PaymentHandler) listSellerMethods(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	methods, err := h.paymentUsecase.ListSellerMethods(r.Context(), productID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPaymentMethodResponses(methods))
}

// createRequest
//
//	@Summary		Заявка на оплату
//	@Description	«Я оплатил, вот чек»: создает заявку со статусом in_processing; сумма фиксируется по текущей цене
//	@Tags			payments
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		int		true	"ID продукта"
//	@Param			quantity	formData	int		true	"Количество"
//	@Param			check		formData	file	true	"Чек об оплате"
//	@Success		201	{object}	PaymentRequestResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/products/{id}/payment [post]
func (h *PaymentHandler) createRequest(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	quantity, err := parseQuantity(r.FormValue("quantity"))
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	check, err := parseUpload(r, "check")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	created, err := h.paymentUsecase.CreateRequest(r.Context(), principal, &usecase.CreatePaymentRequestReq{
		ProductID: productID,
		Quantity:  quantity,
		Check:     *check,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newPaymentRequestResponse(created))
}

// createMethod
//
//	@Summary		Регистрация метода оплаты
//	@Description	Создает метод оплаты продавца: название и QR-код
//	@Tags			payments
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title	formData	string	true	"Название метода"
//	@Param			qr		formData	file	true	"QR-код"
//	@Success		201	{object}	PaymentMethodResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/payment-methods [post]
func (h *PaymentHandler) createMethod(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	qr, err := parseUpload(r, "qr")
	if err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	method, err := h.paymentUsecase.CreateMethod(r.Context(), principal, &usecase.CreateMethodReq{
		Title: r.FormValue("title"),
		QR:    *qr,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, PaymentMethodResponse{
		ID:      method.ID,
		Title:   method.Title,
		QRImage: method.QRImage,
	})
}
