package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-rail/api"
	gameapi "github.com/beka-birhanu/vinom-rail/api/game"
	api_i "github.com/beka-birhanu/vinom-rail/api/i"
	"github.com/beka-birhanu/vinom-rail/api/identity"
	"github.com/beka-birhanu/vinom-rail/config"
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/beka-birhanu/vinom-rail/infrastruture/notifier"
	"github.com/beka-birhanu/vinom-rail/infrastruture/token"
	"github.com/beka-birhanu/vinom-rail/service"
	"github.com/beka-birhanu/vinom-rail/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	envs               config.Config
	redisClient        *redis.Client
	publisher          i.GameOverPublisher
	gridBuilder        *maze.Builder
	jwtTokenizer       i.Tokenizer
	gameSessionManager *service.GameSessionManager
	gameController     api_i.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, config.Prefix(name, color), log.LstdFlags)
}

func initRedis(ctx context.Context) {
	if envs.RedisAddr == "" {
		publisher = notifier.NewLogPublisher(newLogger("GAME-OVER", config.ColorMagenta))
		appLogger.Printf("%s[INFO]%s REDIS_ADDR not set, game-over events will only be logged", config.LogInfoColor, config.LogColorReset)
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
		DB:       envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("%s[ERROR]%s Redis ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}

	var err error
	publisher, err = notifier.NewRedisPublisher(redisClient, envs.RedisChannel)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating game-over publisher: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to Redis", config.LogInfoColor, config.LogColorReset)
}

func initGridBuilder() {
	gridBuilder = maze.NewBuilder(maze.BuilderConfig{
		MaxAttempts: envs.GenMaxAttempts,
		Logger:      newLogger("GENERATOR", config.ColorBlue),
	})
	appLogger.Printf("%s[INFO]%s Grid builder initialized", config.LogInfoColor, config.LogColorReset)
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Printf("%s[INFO]%s JWT Tokenizer initialized", config.LogInfoColor, config.LogColorReset)
}

func initSessionManager() {
	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Builder:    gridBuilder,
		Tokenizer:  jwtTokenizer,
		Publisher:  publisher,
		TokenTTL:   time.Duration(envs.SessionTokenTTL) * time.Minute,
		RegenDelay: time.Duration(envs.RegenDelayMS) * time.Millisecond,
		Layout:     game.Layout{CellSize: float64(envs.CellSizePx), Gap: float64(envs.CellGapPx)},
		Logger:     newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating session manager: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Session manager initialized", config.LogInfoColor, config.LogColorReset)
}

func initGameController() {
	gameController = gameapi.NewGameController(gameSessionManager)
	appLogger.Printf("%s[INFO]%s Game controller initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)
	envs = config.Load()

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initGridBuilder()
	initJWTTokenizer()
	initSessionManager()
	defer gameSessionManager.StopAll()
	initGameController()
	initRouter(jwtTokenizer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
	case s := <-sig:
		appLogger.Printf("%s[INFO]%s Received %s, shutting down", config.LogInfoColor, config.LogColorReset, s)
	}
}
