package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendtrack/internal/handlers"
	"spendtrack/internal/logger"
	"spendtrack/internal/repository"
	"spendtrack/internal/repository/db"
	"spendtrack/internal/server"
	"spendtrack/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultTokenTTL = time.Hour

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml and .env
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, tokenConfig(log))
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// tokenConfig assembles the immutable token setup from env and config.
func tokenConfig(log *logger.Logger) service.TokenConfig {
	key := os.Getenv("JWT_SIGNING_KEY")
	if key == "" {
		log.Fatalw("JWT_SIGNING_KEY is not set")
	}

	ttl := defaultTokenTTL
	if mins := viper.GetInt("token.ttl_minutes"); mins > 0 {
		ttl = time.Duration(mins) * time.Minute
	}

	return service.TokenConfig{SigningKey: key, TTL: ttl}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
