package config

import (
	"os"
	"strconv"
	"time"
)

// BotWeights tunes the built-in opponent. Values come from env defaults
// and can be overridden per room through the config endpoints.
type BotWeights struct {
	// TakeDiscardMax: take the discard top when its value is at or
	// below this.
	TakeDiscardMax int `json:"takeDiscardMax"`
	// KeepMax: keep a pile-drawn card onto a hidden slot when its value
	// is at or below this; discard and reveal otherwise.
	KeepMax int `json:"keepMax"`
	// ReplaceMargin: swap out the worst revealed card only when the
	// drawn card improves it by at least this much.
	ReplaceMargin int `json:"replaceMargin"`
}

type Config struct {
	HTTPAddr     string
	MaxPlayers   int
	TargetScore  int
	ReadyTimeout time.Duration
	RoomCodeLen  int
	BotDelay     time.Duration

	DefaultBotWeights BotWeights
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		MaxPlayers:   getenvInt("MAX_PLAYERS", 8),
		TargetScore:  getenvInt("TARGET_SCORE", 100),
		ReadyTimeout: getenvDuration("READY_TIMEOUT", 10*time.Second),
		RoomCodeLen:  getenvInt("ROOM_CODE_LEN", 6),
		BotDelay:     getenvDuration("BOT_DELAY", 600*time.Millisecond),
		DefaultBotWeights: BotWeights{
			TakeDiscardMax: getenvInt("BOT_TAKE_DISCARD_MAX", 4),
			KeepMax:        getenvInt("BOT_KEEP_MAX", 5),
			ReplaceMargin:  getenvInt("BOT_REPLACE_MARGIN", 2),
		},
	}
}
