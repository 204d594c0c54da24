package network

import "time"

// Config holds serve mode configuration
type Config struct {
	// Address to bind
	Address string

	// Timing
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	PongTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	MaxMessageSize  int64
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		PongTimeout:       30 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		ReadBufferSize:    1024,
		WriteBufferSize:   4096,
		SendQueueSize:     16,
		MaxMessageSize:    4096,
	}
}
