// worker revisa periódicamente los pedidos nuevos y los anuncia en Redis (canal orders.new).
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/hibiken/asynq"
	"github.com/jhoicas/bentonit-ledger/internal/application/notify"
	"github.com/jhoicas/bentonit-ledger/internal/bootstrap"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/redisstore"
	"github.com/jhoicas/bentonit-ledger/internal/jobs"
	"github.com/jhoicas/bentonit-ledger/pkg/config"
	"github.com/jhoicas/bentonit-ledger/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name + "-worker"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	defer rdb.Close()

	watcher := notify.NewOrderWatcher(
		store.Orders,
		redisstore.NewWatermark(rdb, redisstore.KeyOrderWatermark),
		redisstore.NewPublisher(rdb),
		log.Zerolog(),
	)
	reg := prometheus.NewRegistry()
	if addr := cfg.Ledger.WorkerMetricsAddr; addr != "" {
		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		go func() {
			if err := app.Listen(addr); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		defer func() { _ = app.Shutdown() }()
	}

	task, err := jobs.NewCheckNewOrdersTask(jobs.CheckNewOrdersPayload{Source: "cron"})
	if err != nil {
		log.Fatal().Err(err).Msg("crear tarea")
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		Concurrency: cfg.Ledger.WorkerConcurrency,
		Logger:      log.Zerolog(),
		Handlers: []jobs.TaskHandler{{
			Type:    jobs.TaskCheckNewOrders,
			Handler: jobs.NewCheckNewOrdersHandler(watcher, metrics.NewJobMetrics(reg), log.Zerolog()),
		}},
		Cron: []jobs.CronRegistration{{
			Spec: jobs.EverySpec(cfg.Ledger.OrderPollInterval),
			Task: task,
		}},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	log.Info().Dur("interval", cfg.Ledger.OrderPollInterval).Msg("revisión de pedidos programada")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker")
	}
}
