package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"show-do-ingles/config"
	"show-do-ingles/database"
	"show-do-ingles/game"
	"show-do-ingles/handlers"
	"show-do-ingles/leaderboard"
	"show-do-ingles/middleware"
	"show-do-ingles/questions"
	"show-do-ingles/store"

	"github.com/gorilla/sessions"
	"github.com/rs/cors"
)

// storage is the key-value surface behind the leaderboard.
type storage interface {
	leaderboard.KV
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuração inválida: ", err)
	}

	kv, db, err := openStorage(cfg)
	if err != nil {
		log.Fatal("Erro ao abrir o armazenamento: ", err)
	}
	if db != nil {
		defer db.Close()
	}

	board := leaderboard.New(kv)
	loaded := board.Load(context.Background())
	log.Printf("Ranking carregado: %d entradas (%s)", len(loaded), cfg.StorageDriver)

	newGameFetcher, err := newFetcher(cfg)
	if err != nil {
		log.Fatal("Erro ao criar o gerador de perguntas: ", err)
	}

	games := store.NewGames(func() *game.Controller {
		return game.NewController(newGameFetcher(), board, game.Config{
			RevealDelay:  cfg.RevealDelay,
			ResolveDelay: cfg.ResolveDelay,
			FetchTimeout: cfg.FetchTimeout,
		})
	})

	if cfg.UsesDefaultSecret() {
		log.Println("AVISO: SESSION_SECRET está com o valor padrão de desenvolvimento; cookies e tokens podem ser forjados. Defina um segredo próprio em produção.")
	}
	keys, err := middleware.DeriveKeys(cfg.SessionSecret)
	if err != nil {
		log.Fatal("Erro ao derivar chaves: ", err)
	}
	cookies := sessions.NewCookieStore(keys.CookieHash, keys.CookieBlock)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionIdleTimeout / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	r := handlers.NewRouter(handlers.Options{
		Games:    games,
		Board:    board,
		Cookies:  cookies,
		TokenKey: keys.Token,
		TokenTTL: cfg.TokenTTL,
		Ping:     kv.Ping,
	})

	var handler http.Handler = r
	if len(cfg.CORSOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowCredentials: true,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
		})
		handler = c.Handler(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweepSessions(ctx, games, cfg.SessionIdleTimeout)

	srv := &http.Server{
		Handler:      handler,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Servidor iniciando em %s (perguntas: %s)", cfg.Addr, cfg.QuestionSource)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStorage returns the configured KV and, for SQL drivers, the pool to close.
func openStorage(cfg config.Config) (storage, *sql.DB, error) {
	var (
		db      *sql.DB
		dialect database.Dialect
		err     error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return database.NewMemoryKV(), nil, nil
	case config.StorageSQLite:
		dialect = database.SQLite
		db, err = database.OpenSQLite(cfg.SQLitePath)
	case config.StoragePostgres:
		dialect = database.Postgres
		db, err = database.Connect(cfg.Postgres)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := database.InitDB(db, dialect); err != nil {
		db.Close()
		return nil, nil, err
	}
	kv, err := database.NewKV(db, dialect)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return kv, db, nil
}

// newFetcher returns a constructor for the per-session question source. The
// bank tracks the last question it served, so every session gets its own;
// the OpenAI client is shared.
func newFetcher(cfg config.Config) (func() game.Fetcher, error) {
	switch cfg.QuestionSource {
	case config.SourceBank:
		return func() game.Fetcher { return questions.NewBank(0) }, nil
	case config.SourceOpenAI:
		g, err := questions.NewOpenAI(questions.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if err != nil {
			return nil, err
		}
		return func() game.Fetcher { return g }, nil
	default:
		return nil, fmt.Errorf("unknown question source %q", cfg.QuestionSource)
	}
}

func sweepSessions(ctx context.Context, games *store.Games, maxIdle time.Duration) {
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := games.Sweep(maxIdle); n > 0 {
				log.Printf("Sessões inativas removidas: %d (ativas: %d)", n, games.Len())
			}
		}
	}
}
