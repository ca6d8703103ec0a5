package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"MiniStock/internal/auth"
	"MiniStock/internal/config"
	"MiniStock/internal/console"
	"MiniStock/internal/dashboard"
	"MiniStock/internal/inventory"
	"MiniStock/internal/storage"
	"MiniStock/pkg/kit"
)

func main() {
	service := "ministock"

	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	inv := inventory.New(
		inventory.WithThreshold(cfg.Threshold),
		inventory.WithLogger(log),
		inventory.WithMetrics(inventory.NewMetrics(reg)),
	)

	store := storage.NewFileStore(cfg.DataFile)
	load(inv, store, log)
	if inv.Len() == 0 && cfg.Seed {
		seed(inv, log)
	}

	users := auth.NewMemStore()
	if _, err := users.Register(cfg.AdminUser, cfg.AdminPassword, auth.RoleAdmin); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := console.New(console.Deps{
		Inventory:  inv,
		Users:      users,
		Store:      store,
		ExportPath: cfg.ExportFile,
		Log:        log,
	}, os.Stdin, os.Stdout)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.DashboardAddr != "" {
		g.Go(func() error { return serveDashboard(gctx, cfg, inv, reg, log) })
	}
	g.Go(func() error {
		defer cancel()
		return runConsole(gctx, app, log)
	})

	if err := g.Wait(); err != nil {
		log.Error("stopped with error", zap.Error(err))
	}
}

// runConsole returns when the menu exits. If ctx ends first the inventory
// is saved and the blocked reader is abandoned.
func runConsole(ctx context.Context, app *console.App, log *zap.Logger) error {
	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("interrupted, saving inventory")
		return app.Save()
	}
}

func load(inv *inventory.Inventory, store *storage.FileStore, log *zap.Logger) {
	records, err := store.Load()
	if err != nil {
		log.Warn("inventory file partially loaded", zap.Error(err), zap.String("path", store.Path))
	}

	rep := inv.Restore(records)
	for _, s := range rep.Skipped {
		log.Debug("record skipped", zap.Int("id", s.Product.ID), zap.String("name", s.Product.Name), zap.Error(s.Err))
	}
	log.Info("inventory loaded", zap.Int("added", rep.Added), zap.Int("skipped", len(rep.Skipped)))
}

func seed(inv *inventory.Inventory, log *zap.Logger) {
	for _, p := range []inventory.Product{
		{ID: 101, Name: "Laptop", Quantity: 10, Price: decimal.NewFromInt(120000)},
		{ID: 102, Name: "Mouse", Quantity: 3, Price: decimal.NewFromInt(1500)},
		{ID: 103, Name: "Keyboard", Quantity: 2, Price: decimal.NewFromInt(3000)},
	} {
		if err := inv.Add(p); err != nil {
			log.Warn("seed product rejected", zap.Int("id", p.ID), zap.Error(err))
		}
	}
}

func serveDashboard(ctx context.Context, cfg config.Config, inv *inventory.Inventory, reg *prometheus.Registry, log *zap.Logger) error {
	h := dashboard.NewHandler(&dashboard.Server{Inventory: inv, Log: log}, dashboard.HTTPDeps{
		Log:            log,
		Service:        "dashboard",
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   cfg.MetricsToken,
	})

	return kit.RunHTTPServer(ctx, cfg.DashboardAddr, h, log)
}
