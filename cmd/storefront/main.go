package main

import (
	"context"

	"github.com/shop/storefront/internal/application/catalogsync"
	"github.com/shop/storefront/internal/application/checkout"
	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/customer"
	"github.com/shop/storefront/internal/infrastructure/config"
	"github.com/shop/storefront/internal/infrastructure/event"
	"github.com/shop/storefront/internal/infrastructure/logger"
	"github.com/shop/storefront/internal/infrastructure/shopapi"
	"github.com/shop/storefront/internal/interfaces/console"
	"github.com/shop/storefront/internal/interfaces/view"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("api", cfg.API.BaseURL),
	)

	ctx := context.Background()

	bus := event.NewInMemoryEventBus(log)

	catalogModel := catalog.NewCatalog(bus)
	cartModel := cart.NewCart(bus)
	draft := customer.NewDraft(bus)

	client, err := shopapi.NewClient(shopapi.Config{
		BaseURL: cfg.API.BaseURL,
		CDNURL:  cfg.API.CDNURL,
		Timeout: cfg.API.Timeout,
	}, log)
	if err != nil {
		log.Fatal("failed to create shop API client", zap.Error(err))
	}

	views := console.Views(bus, log)
	coordinator := checkout.NewCoordinator(catalogModel, cartModel, draft, client, views, log)
	bus.Subscribe(coordinator)

	loader := catalogsync.NewLoader(client, catalogModel, shopapi.FallbackCatalog, log)
	if err := loader.Refresh(ctx); err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}

	// Walk the reactive loop once so the wiring is visible on stdout:
	// preview the first product, put it in the cart, open the basket.
	gallery := views.Gallery.(*console.Gallery)
	if catalogModel.Len() > 0 {
		if err := gallery.Select(ctx, 0); err != nil {
			log.Error("failed to select card", zap.Error(err))
		}
		first := catalogModel.Items()[0]
		if err := bus.Publish(ctx, view.NewBuyClickedEvent(first.ID)); err != nil {
			log.Error("failed to buy previewed product", zap.Error(err))
		}
		if err := bus.Publish(ctx, view.NewBasketOpenClickedEvent()); err != nil {
			log.Error("failed to open basket", zap.Error(err))
		}
	}

	log.Info("session state",
		zap.String("checkout", coordinator.State().String()),
		zap.Int("catalog_items", catalogModel.Len()),
		zap.Int("cart_items", cartModel.Count()),
		zap.String("cart_total", cartModel.Total().String()),
	)
}
