package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level settings. Values come from a .env file (when
// present) and environment variables; flags override in main.
type Config struct {
	Addr     string
	MaxRooms int
	MaxConns int
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg := Config{
		Addr:     ":8080",
		MaxRooms: 200,
		MaxConns: 1000,
	}
	if v := os.Getenv("NEON_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("NEON_MAX_ROOMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRooms = n
		}
	}
	if v := os.Getenv("NEON_MAX_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxConns = n
		}
	}
	return cfg
}
