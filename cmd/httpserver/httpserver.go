// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/healthdelivery"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/persondelivery"
	"github.com/go-petr/pet-ledger/internal/personrepo"
	"github.com/go-petr/pet-ledger/internal/personservice"
	"github.com/go-petr/pet-ledger/internal/transactiondelivery"
	"github.com/go-petr/pet-ledger/internal/transactionservice"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	personRepo := personrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn, config.TxTimeout)

	personService := personservice.New(personRepo)
	accountService := accountservice.New(accountRepo, personService)
	transactionService := transactionservice.New(ledgerRepo, config.Location())

	personHandler := persondelivery.NewHandler(personService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService, transactionService.Location())
	healthHandler := healthdelivery.NewHandler(conn, config.TxTimeout)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", healthHandler.Check)

	engine.POST("/persons", personHandler.Create)
	engine.GET("/persons/:id", personHandler.Get)

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id/balance", accountHandler.GetBalance)
	engine.POST("/accounts/:id/block", accountHandler.Block)

	engine.POST("/accounts/:id/deposit", transactionHandler.Deposit)
	engine.POST("/accounts/:id/withdraw", transactionHandler.Withdraw)
	engine.GET("/accounts/:id/statement", transactionHandler.GetStatement)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accounttype", accounttypepkg.ValidAccountType)
		if err != nil {
			return nil, errors.New("cannot register accounttype validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
