// Command hookrelay accepts Slack-formatted webhooks and relays them to
// Discord, one ordered delivery queue per destination.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/hookrelay/pkg/clientip"
	"github.com/dmitrymomot/hookrelay/pkg/config"
	"github.com/dmitrymomot/hookrelay/pkg/deadletter"
	"github.com/dmitrymomot/hookrelay/pkg/httpserver"
	"github.com/dmitrymomot/hookrelay/pkg/inbound"
	"github.com/dmitrymomot/hookrelay/pkg/logger"
	"github.com/dmitrymomot/hookrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/hookrelay/pkg/redis"
	"github.com/dmitrymomot/hookrelay/pkg/relay"
	"github.com/dmitrymomot/hookrelay/pkg/requestid"
	"github.com/dmitrymomot/hookrelay/pkg/webhook"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"hookrelay"`
	LogLevel string `env:"LOG_LEVEL"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "hookrelay: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		relayCfg   relay.Config
		webhookCfg webhook.Config
		redisCfg   redis.Config
		dlCfg      deadletter.Config
		inboundCfg inbound.Config
		limitCfg   ratelimiter.Config
		ipCfg      clientip.Config
		httpCfg    httpserver.Config
	)
	for _, err := range []error{
		config.Load(&appCfg),
		config.Load(&relayCfg),
		config.Load(&webhookCfg),
		config.Load(&redisCfg),
		config.Load(&dlCfg),
		config.Load(&inboundCfg),
		config.Load(&limitCfg),
		config.Load(&ipCfg),
		config.Load(&httpCfg),
	} {
		if err != nil {
			return err
		}
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if appCfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(appCfg.LogLevel, slog.LevelInfo)))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	var (
		store       deadletter.Store
		limitStore  ratelimiter.Store
		readyChecks []httpserver.Check
		drainHooks  []httpserver.Option
	)
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		rs, err := deadletter.NewRedisStore(client, dlCfg.Options()...)
		if err != nil {
			_ = client.Close()
			return err
		}
		store = rs
		if limitStore, err = ratelimiter.NewRedisStore(client, ""); err != nil {
			_ = client.Close()
			return err
		}
		readyChecks = append(readyChecks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client, redisCfg.PingTimeout)})
		defer closeRedis(client, log)
		log.Info("dead letters archived in redis", slog.String("key", dlCfg.Key))
	} else {
		store = deadletter.NewMemoryStore(dlCfg.Options()...)
		ms := ratelimiter.NewMemoryStore()
		defer ms.Close()
		limitStore = ms
		log.Warn("REDIS_URL not set, dead letters kept in memory")
	}

	handlerOpts := append(inboundCfg.Options(), inbound.WithClientIP(ipCfg.Resolver()))
	if limitCfg.Enabled() {
		limiter, err := ratelimiter.NewLimiter(limitStore, limitCfg)
		if err != nil {
			return err
		}
		handlerOpts = append(handlerOpts, inbound.WithRateLimiter(limiter))
		log.Info("inbound rate limiting enabled",
			slog.Int("capacity", limitCfg.Capacity),
			slog.Int("refill_rate", limitCfg.RefillRate),
			logger.Duration(limitCfg.RefillInterval),
		)
	}

	sender, err := webhook.NewSenderFromConfig(webhookCfg,
		webhook.WithOnDelivery(func(res webhook.DeliveryResult) {
			log.Debug("webhook attempt finished",
				logger.Destination(res.Destination),
				logger.Attempt(res.Attempt),
				logger.StatusCode(res.StatusCode),
				logger.Duration(res.Duration),
				slog.String("outcome", res.Outcome.String()),
			)
		}),
	)
	if err != nil {
		return err
	}

	registry, err := relay.NewRegistryFromConfig(relayCfg, sender,
		relay.WithLogger(log.With(logger.Component("relay"))),
		relay.WithDeadLetterSink(store),
	)
	if err != nil {
		return err
	}
	drainHooks = append(drainHooks, httpserver.WithDrainHook("relay", registry.Close))

	handler, err := inbound.NewHandler(registry, append(handlerOpts,
		inbound.WithLogger(log.With(logger.Component("inbound"))),
		inbound.WithStats(registry),
		inbound.WithDeadLetters(store),
		inbound.WithReadyChecks(readyChecks...),
	)...)
	if err != nil {
		return errors.Join(err, registry.Close(ctx))
	}

	srvOpts := append(drainHooks, httpserver.WithLogger(log.With(logger.Component("http"))))
	if relayCfg.ShutdownTimeout > 0 {
		srvOpts = append(srvOpts, httpserver.WithDrainTimeout(relayCfg.ShutdownTimeout))
	}
	srv := httpserver.NewFromConfig(httpCfg, srvOpts...)

	return srv.Run(ctx, handler.Router())
}

func closeRedis(client *goredis.Client, log *slog.Logger) {
	if err := client.Close(); err != nil {
		log.Error("failed to close redis client", logger.Error(err))
	}
}
