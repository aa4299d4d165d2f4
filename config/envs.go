package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for signing session tokens
	JWTIssuer       string // Issuer claim for session tokens
	SessionTokenTTL int    // Lifetime of a session token in minutes
	RedisAddr       string // Redis address for game-over events; empty disables publishing
	RedisPassword   string // Password for Redis
	RedisDB         int    // Redis database index
	RedisChannel    string // Channel game-over events are published on
	RegenDelayMS    int    // Delay between reaching the station and the next network, in milliseconds
	GenMaxAttempts  int    // Generation attempts before a network build fails
	CellSizePx      int    // Rendered cell size used to quantise pointer input
	CellGapPx       int    // Rendered gap between cells used to quantise pointer input
}

// Load loads environment variables from a .env file, if any, and returns the application configuration.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "vinom-rail"),
		SessionTokenTTL: getEnvAsIntWithDefault("SESSION_TOKEN_TTL_MIN", 60),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		RedisChannel:    getEnvWithDefault("REDIS_CHANNEL", "rail:game_over"),
		RegenDelayMS:    getEnvAsIntWithDefault("REGEN_DELAY_MS", 1000),
		GenMaxAttempts:  getEnvAsIntWithDefault("GEN_MAX_ATTEMPTS", 5),
		CellSizePx:      getEnvAsIntWithDefault("CELL_SIZE_PX", 40),
		CellGapPx:       getEnvAsIntWithDefault("CELL_GAP_PX", 2),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, falling back to defaultValue
// when it is unset. A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
