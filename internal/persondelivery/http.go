// Package persondelivery manages delivery layer of persons.
package persondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// BirthDateLayout is the layout of the person birth date.
const BirthDateLayout = "2006-01-02"

// Service provides service layer interface needed by person delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package persondelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreatePersonParams) (domain.Person, error)
	Get(ctx context.Context, id int64) (domain.Person, error)
}

// Handler facilitates person delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns person handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

type data struct {
	Person domain.Person `json:"person"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Document  string `json:"document" binding:"required,max=50"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

// Create handles http request to register a person.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	birthDate, err := time.Parse(BirthDateLayout, req.BirthDate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "BirthDate must be a date in " + BirthDateLayout + " format"})

		return
	}

	person, err := h.service.Create(ctx, domain.CreatePersonParams{
		Name:      req.Name,
		Document:  req.Document,
		BirthDate: birthDate,
	})
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{person}})
}

type personURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a person.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri personURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	person, err := h.service.Get(ctx, uri.ID)
	if err != nil {
		gctx.JSON(web.ErrorResponse(err))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{person}})
}
