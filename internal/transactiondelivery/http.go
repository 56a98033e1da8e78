// Package transactiondelivery manages delivery layer of account transactions.
package transactiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// DateLayout is the layout of the statement date filters.
const DateLayout = "2006-01-02"

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Account, error)
	GetStatement(ctx context.Context, arg domain.StatementParams) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
	loc     *time.Location
}

// NewHandler returns transaction handler. Statement dates are calendar days in loc.
func NewHandler(ts Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{
		service: ts,
		loc:     loc,
	}
}

type accountURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
}

type statementData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type statementResponse struct {
	Data statementData `json:"data,omitempty"`
}

// Deposit handles http request to deposit money into the account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.move(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from the account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.move(gctx, h.service.Withdraw)
}

func (h *Handler) move(gctx *gin.Context, fn func(context.Context, int64, decimal.Decimal) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	account, err := fn(ctx, uri.ID, req.Amount)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type statementRequest struct {
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// GetStatement handles http request to list the account transactions.
//
// from_date and to_date are inclusive calendar days. Both are optional.
func (h *Handler) GetStatement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	var req statementRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	arg, err := h.statementParams(uri.ID, req)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	transactions, err := h.service.GetStatement(ctx, arg)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	gctx.JSON(http.StatusOK, statementResponse{Data: statementData{transactions}})
}

func (h *Handler) statementParams(accountID int64, req statementRequest) (domain.StatementParams, error) {
	arg := domain.StatementParams{AccountID: accountID}

	if req.FromDate != "" {
		from, err := time.ParseInLocation(DateLayout, req.FromDate, h.loc)
		if err != nil {
			return domain.StatementParams{}, domain.ErrInvalidDateRange
		}

		arg.From = &from
	}

	if req.ToDate != "" {
		to, err := time.ParseInLocation(DateLayout, req.ToDate, h.loc)
		if err != nil {
			return domain.StatementParams{}, domain.ErrInvalidDateRange
		}

		until := to.AddDate(0, 0, 1)
		arg.Until = &until
	}

	if arg.From != nil && arg.Until != nil && !arg.From.Before(*arg.Until) {
		return domain.StatementParams{}, domain.ErrInvalidDateRange
	}

	return arg, nil
}
