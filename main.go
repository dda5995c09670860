package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/a2a"
	orchestratorx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/agents/orchestrator"
	specialistx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/agents/specialist"
	catalogx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	llmx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/llm"
	registryx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/registry"
	serverx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/server"
	statex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/state"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
	toolx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/tool"
	configx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/config"
	_ "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/logger/autoload"
)

type AppConfig struct {
	SessionBackend    string        `envconfig:"SESSION_BACKEND" split_words:"true" default:"memory"`
	CatalogBackend    string        `envconfig:"CATALOG_BACKEND" split_words:"true" default:"memory"`
	PostgresDSN       string        `envconfig:"POSTGRES_DSN" split_words:"true"`
	DelegationTimeout time.Duration `envconfig:"ORCHESTRATOR_DELEGATION_TIMEOUT" split_words:"true" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("")
	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")

	sessionStore := newSessionStore(*appCfg)

	catalogStore := newCatalogStore(ctx, *appCfg)
	if closer, ok := catalogStore.(io.Closer); ok {
		defer closer.Close()
	}

	gateway, err := toolx.NewGateway(catalogStore)
	if err != nil {
		log.Fatal().Err(err).Msg("tool gateway init failed")
	}

	directory, err := registryx.New(registryx.Default()...)
	if err != nil {
		log.Fatal().Err(err).Msg("specialist registry init failed")
	}

	tracker := task.NewTracker()
	transport := a2a.NewInProc(tracker)

	runtimes, err := specialistx.NewRuntimes(ctx, *llmCfg, directory.List(), gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("specialist runtimes init failed")
	}
	for _, rt := range runtimes {
		if err := transport.Register(rt.ID(), rt); err != nil {
			log.Fatal().Str("specialist", rt.ID()).Err(err).Msg("specialist registration failed")
		}
	}

	var answerer contractx.Answerer
	if da, err := orchestratorx.NewDirectAnswerer(llmCfg.OpenRouterFor(contractx.AgentTypeOrchestrator)); err != nil {
		log.Warn().Err(err).Msg("direct answerer unavailable, static fallback replies only")
	} else {
		answerer = da
	}

	orch, err := orchestratorx.New(sessionStore, directory, transport, answerer, orchestratorx.Config{
		DelegationTimeout: appCfg.DelegationTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("orchestrator init failed")
	}

	srv, err := serverx.New(orch, directory, transport, tracker, *serverCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("server init failed")
	}

	httpServer := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Int("specialists", len(runtimes)).
			Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func newSessionStore(cfg AppConfig) statex.Store {
	switch strings.ToLower(strings.TrimSpace(cfg.SessionBackend)) {
	case "redis":
		redisCfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := statex.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("upstash redis store init failed")
		}
		log.Info().Msg("session store: upstash redis")
		return store
	default:
		log.Info().Msg("session store: in-memory")
		return statex.NewMemoryStore()
	}
}

func newCatalogStore(ctx context.Context, cfg AppConfig) catalogx.Store {
	switch strings.ToLower(strings.TrimSpace(cfg.CatalogBackend)) {
	case "postgres":
		store, err := catalogx.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres catalog init failed")
		}
		if err := store.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("postgres catalog migration failed")
		}
		log.Info().Msg("catalog store: postgres")
		return store
	default:
		log.Info().Msg("catalog store: in-memory")
		return catalogx.NewMemoryStore()
	}
}
