package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"storefront/client/internal/devserver"
	"storefront/client/internal/ids"
	"storefront/client/internal/log"
	"storefront/client/internal/models"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8085", "listen address")
	flag.Parse()

	logger := log.New("development")

	srv := devserver.New(logger)
	srv.SeedCustomers(models.Customer{
		CustomerAccountNumber: ids.AccountNumber(),
		FirstName:             "Ama",
		LastName:              "Mensah",
		ContactNumber:         "0244000001",
		Address:               "Adabraka, Accra",
		Password:              "password1",
		AccountType:           models.AccountTypeCustomer,
	})
	srv.SeedProducts(
		models.Product{
			ProductID:    "p-1001",
			ProductName:  "Galaxy A16",
			Price:        1899,
			OldPrice:     2099,
			ProductImage: `F:\Products_Images\galaxy-a16.jpg`,
			ShowRoomName: "Adabraka",
			DateCreated:  time.Now().Add(-24 * time.Hour).Format("2006-01-02T15:04:05"),
		},
		models.Product{
			ProductID:    "p-1002",
			ProductName:  "Spark 30C",
			Price:        1249,
			ProductImage: "https://cdn.example.com/spark-30c.png",
			ShowRoomName: "Tamale",
			DateCreated:  time.Now().Format("2006-01-02T15:04:05"),
		},
	)

	go func() {
		if err := srv.Start(*addr); err != nil {
			logger.Fatal().Err(err).Msg("dev gateway failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
