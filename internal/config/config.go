// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RequestTimeout applies to every call against the remote server.
const RequestTimeout = 60 * time.Second

type AppConfig struct {
	// ServerAddress is the base URL of the remote Mirror API.
	ServerAddress string
	// ListenAddr is where the local web UI is served.
	ListenAddr string
	// SessionSecret keys the cookie session store.
	SessionSecret string
	// ThumbDir holds derived thumbnails for the current run.
	ThumbDir string
}

// Load reads the configuration from the environment. Only the server
// address is mandatory; the session secret falls back to a per-run random
// value, which logs everyone out on restart.
func Load() (*AppConfig, error) {
	serverAddress := os.Getenv("MIRROR_SERVER_ADDRESS")
	if serverAddress == "" {
		return nil, fmt.Errorf("MIRROR_SERVER_ADDRESS is required")
	}

	listenAddr := os.Getenv("MIRROR_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	sessionSecret := os.Getenv("MIRROR_SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = uuid.New().String()
	}

	thumbDir := os.Getenv("MIRROR_THUMB_DIR")
	if thumbDir == "" {
		thumbDir = filepath.Join(os.TempDir(), "mirror-thumbs")
	}

	return &AppConfig{
		ServerAddress: serverAddress,
		ListenAddr:    listenAddr,
		SessionSecret: sessionSecret,
		ThumbDir:      thumbDir,
	}, nil
}
