package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"storefront/client/internal/app"
	"storefront/client/internal/config"
	"storefront/client/internal/gateway"
	"storefront/client/internal/ids"
	"storefront/client/internal/jobs"
	"storefront/client/internal/log"
	"storefront/client/internal/models"
	"storefront/client/internal/security"
	"storefront/client/internal/sessionstore"
	"storefront/client/internal/store"
	"storefront/client/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)
	ctx := context.Background()

	durable, err := newSessionBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init session storage")
	}

	gw := gateway.New(cfg.Gateway, log.Component(logger, "gateway"))
	sessions := store.NewSessionStore(gw, durable, store.PlaintextMatcher{}, log.Component(logger, "session"))
	catalog := store.NewCatalogStore(gw, log.Component(logger, "catalog"))

	presenter, err := view.NewPresenter(cfg.Media, cfg.Locale)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init presenter")
	}

	runtime := app.NewRuntime(sessions, catalog, cfg.Startup.MinSplash, log.Component(logger, "runtime"))

	refresher := jobs.NewRefresher(runtime, cfg.Refresh.Schedule, log.Component(logger, "refresher"))
	if err := refresher.Start(); err != nil {
		logger.Error().Err(err).Msg("refresher start failed")
	}
	defer refresher.Stop()

	fmt.Println("Loading storefront...")
	if err := runtime.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("startup interrupted")
	}
	<-runtime.Ready()

	if customer, ok := sessions.CurrentCustomer(); ok {
		fmt.Printf("Welcome back, %s\n", customer.FullName())
	}
	renderRecent(catalog, presenter)

	runLoop(ctx, runtime, sessions, catalog, presenter)
}

func newSessionBackend(ctx context.Context, cfg *config.AppConfig) (sessionstore.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		return sessionstore.NewRedisStore(ctx, cfg.Session.Redis)
	case "file":
		var key []byte
		if cfg.Session.SealKey != "" {
			parsed, err := security.ParseKey(cfg.Session.SealKey)
			if err != nil {
				return nil, err
			}
			key = parsed
		}
		return sessionstore.NewFileStore(cfg.Session.FilePath, key), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func runLoop(ctx context.Context, runtime *app.Runtime, sessions *store.SessionStore, catalog *store.CatalogStore, presenter *view.Presenter) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`commands: login <contact> <password> | signup <first> <last> <contact> <password> | logout | me | refresh | recent | quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <contact> <password>")
				continue
			}
			customer, err := sessions.Login(ctx, fields[1], fields[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Printf("Welcome, %s\n", customer.FullName())
		case "signup":
			if len(fields) != 5 {
				fmt.Println("usage: signup <first> <last> <contact> <password>")
				continue
			}
			customer, err := sessions.CreateCustomer(ctx, models.Customer{
				CustomerAccountNumber: ids.AccountNumber(),
				FirstName:             fields[1],
				LastName:              fields[2],
				ContactNumber:         fields[3],
				Password:              fields[4],
				AccountType:           models.AccountTypeCustomer,
			})
			if err != nil {
				fmt.Println("signup failed:", err)
				continue
			}
			fmt.Printf("Registered %s (%s)\n", customer.FullName(), customer.CustomerAccountNumber)
		case "logout":
			if err := sessions.Logout(ctx); err != nil {
				fmt.Println("logout failed:", err)
				continue
			}
			fmt.Println("Logged out.")
		case "me":
			customer, ok := sessions.CurrentCustomer()
			if !ok {
				fmt.Println("Not signed in.")
				continue
			}
			fmt.Printf("%s — %s, %s\n", customer.FullName(), customer.ContactNumber, customer.Address)
		case "refresh":
			// Same reset-then-refetch cycle a view-focus event triggers.
			if err := runtime.FocusCatalog(ctx); err != nil {
				fmt.Println("refresh failed:", err)
				continue
			}
			renderRecent(catalog, presenter)
		case "recent":
			renderRecent(catalog, presenter)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func renderRecent(catalog *store.CatalogStore, presenter *view.Presenter) {
	recent := catalog.Recent()
	if status := catalog.Status(); status.Err != nil {
		fmt.Println("catalog unavailable:", status.Message())
		return
	}

	fmt.Printf("Featured products (%d)\n", len(recent))
	for _, product := range recent {
		line := fmt.Sprintf("  %-30s %s", product.ProductName, presenter.FormatPrice(product.Price))
		if pct := view.DiscountPercent(product.Price, product.OldPrice); pct > 0 {
			line += fmt.Sprintf("  (was %s, %d%% off)", presenter.FormatPrice(product.OldPrice), pct)
		}
		fmt.Println(line)
		fmt.Println("    " + presenter.ImageURL(product.ProductImage) + "  [" + product.ShowRoomName + "]")
	}
}
