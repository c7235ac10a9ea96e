package http

import (
	"encoding/json"
	"net/http"

	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

type RatingHandler struct {
	ratingUsecase usecase.RatingUC
	logger        logger.Logger
}

func NewRatingHandler(ratingUsecase usecase.RatingUC, logger logger.Logger) *RatingHandler {
	return &RatingHandler{ratingUsecase: ratingUsecase, logger: logger}
}

type submitRatingBody struct {
	Count   int32  `json:"count"`
	Comment string `json:"comment"`
}

type submitAnswerBody struct {
	Comment string `json:"comment"`
}

// submitRating
//
//	@Summary		Отзыв о продукте
//	@Description	Сохраняет оценку [1,5] с комментарием; повторная отправка создает новую запись
//	@Tags			ratings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID продукта"
//	@Param			body	body		submitRatingBody	true	"Оценка и комментарий"
//	@Success		201		{object}	RatingResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products/{id}/ratings [post]
func (h *RatingHandler) submitRating(w http.ResponseWriter, r *http.Request) {
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

	var body submitRatingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	rating, err := h.ratingUsecase.SubmitRating(r.Context(), principal, &usecase.SubmitRatingReq{
		ProductID: productID,
		Count:     body.Count,
		Comment:   body.Comment,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newRatingResponse(usecase.RatingView{Rating: *rating}))
}

// submitAnswer
//
//	@Summary		Ответ продавца на отзыв
//	@Description	Доступен только владельцу продукта, к которому относится отзыв
//	@Tags			ratings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID отзыва"
//	@Param			body	body		submitAnswerBody	true	"Текст ответа"
//	@Success		201		{object}	RatingAnswerResponse
//	@Failure		403		{object}	ErrorResponse
//	@Router			/ratings/{id}/answers [post]
func (h *RatingHandler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	ratingID, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body submitAnswerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	answer, err := h.ratingUsecase.SubmitAnswer(r.Context(), principal, &usecase.SubmitAnswerReq{
		RatingID: ratingID,
		Comment:  body.Comment,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, RatingAnswerResponse{
		ID:        answer.ID,
		UserID:    answer.UserID,
		Comment:   answer.Comment,
		CreatedAt: answer.CreatedAt,
	})
}
