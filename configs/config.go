package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

func load() {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

func Config(key string) string {
	load()
	return os.Getenv(key)
}

// Default returns the value of key, or def when it is unset or blank.
func Default(key, def string) string {
	if v := strings.TrimSpace(Config(key)); v != "" {
		return v
	}
	return def
}

func Int(key string, def int) int {
	v := strings.TrimSpace(Config(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func Bool(key string, def bool) bool {
	v := strings.TrimSpace(Config(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration accepts Go duration strings ("90s", "2h").
func Duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(Config(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
