// Package devserver is a local stand-in for the storefront backend: the
// three endpoints the client consumes, served over an in-memory dataset. It
// exists for development and integration tests, not as a reimplementation of
// the upstream service.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/client/internal/middleware"
	"storefront/client/internal/models"
)

type Server struct {
	engine *gin.Engine
	server *http.Server
	log    zerolog.Logger

	mu        sync.Mutex
	customers []models.Customer
	products  []models.Product
}

func New(logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)

	s := &Server{
		engine: engine,
		log:    logger,
	}

	engine.GET("/healthz", s.health)
	engine.POST("/Users/Customer-Post", s.postCustomer)
	engine.GET("/Users/Customer-Get", s.getCustomers)
	engine.GET("/Products/Product-Get", s.getProducts)

	return s
}

// Handler exposes the engine for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SeedCustomers(customers ...models.Customer) {
	s.mu.Lock()
	s.customers = append(s.customers, customers...)
	s.mu.Unlock()
}

func (s *Server) SeedProducts(products ...models.Product) {
	s.mu.Lock()
	s.products = append(s.products, products...)
	s.mu.Unlock()
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.log.Info().Str("addr", addr).Msg("dev gateway starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// postCustomer mimics the upstream write contract: rejection is encoded in
// the payload of a 200 response, not in the HTTP status.
func (s *Server) postCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"ResponseCode": "0",
			"message":      "Invalid customer payload.",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if existing.ContactNumber == customer.ContactNumber {
			c.JSON(http.StatusOK, gin.H{
				"ResponseCode": "0",
				"message":      "Customer with this contact number already exists.",
			})
			return
		}
	}

	if customer.AccountType == "" {
		customer.AccountType = models.AccountTypeCustomer
	}
	s.customers = append(s.customers, customer)

	c.JSON(http.StatusOK, gin.H{
		"ResponseCode":          "1",
		"message":               "Customer saved.",
		"customerAccountNumber": customer.CustomerAccountNumber,
		"accountType":           customer.AccountType,
	})
}

func (s *Server) getCustomers(c *gin.Context) {
	s.mu.Lock()
	customers := make([]models.Customer, len(s.customers))
	copy(customers, s.customers)
	s.mu.Unlock()

	c.JSON(http.StatusOK, customers)
}

func (s *Server) getProducts(c *gin.Context) {
	s.mu.Lock()
	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	s.mu.Unlock()

	c.JSON(http.StatusOK, products)
}
