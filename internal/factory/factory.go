package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gridsnake/gridsnake/internal/dependencies/clock"
	"github.com/gridsnake/gridsnake/internal/dependencies/random"
	"github.com/gridsnake/gridsnake/internal/services/arena"
	"github.com/gridsnake/gridsnake/internal/services/auth"
	"github.com/gridsnake/gridsnake/internal/services/game"
	"github.com/gridsnake/gridsnake/internal/services/runner"
	"github.com/gridsnake/gridsnake/internal/services/spawner"
	"github.com/gridsnake/gridsnake/internal/sse"
	"github.com/gridsnake/gridsnake/internal/storage"
	"github.com/gridsnake/gridsnake/internal/storage/memory"
	redisstorage "github.com/gridsnake/gridsnake/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ArenaService   *arena.Service
	SpawnerService *spawner.Service
	GameController *game.Controller
	RunnerManager  *runner.Manager
	AuthService    *auth.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Rules holds the simulation constants (optional)
	// If zero value, defaults to game.DefaultRules()
	Rules game.Rules
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default rules/auth config if not provided
	rules := cfg.Rules
	if rules.Width == 0 {
		rules = game.DefaultRules()
	}
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, rules, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, rules game.Rules, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	arenaService := arena.New(logger)
	spawnerService := spawner.New(arenaService, rnd, logger)
	gameController := game.NewController(store, arenaService, spawnerService, clk, rnd, rules, logger)
	authService := auth.New(store, clk, authCfg, logger)

	// SSE fanout and the tick loop that feeds it
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	runnerManager := runner.NewManager(gameController, broadcaster, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ArenaService:   arenaService,
		SpawnerService: spawnerService,
		GameController: gameController,
		RunnerManager:  runnerManager,
		AuthService:    authService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
