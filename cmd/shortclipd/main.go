// Command shortclipd runs the paste-to-link object store server.
// It is configured entirely through the environment: PORT, HOST,
// STORE_BACKEND (fs or s3) plus the S3_* variables, and UPLOAD_RATE /
// UPLOAD_BURST for optional per-token rate limiting.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/shortclip/shortclip/internal/auth"
	"github.com/shortclip/shortclip/internal/server"
	"github.com/shortclip/shortclip/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := configFromEnv()
	if err != nil {
		return err
	}

	registry, err := auth.Load(auth.DefaultTokensFile)
	if err != nil {
		return fmt.Errorf("load authorized tokens: %w", err)
	}
	logger.Info("loaded token registry", "tokens", registry.Len())

	st, err := store.New(storeConfigFromEnv())
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("init %s store: %w", st.Type(), err)
	}
	defer st.Close()

	srv := server.New(cfg, st, registry, logger)
	defer srv.Close()

	return srv.Run(ctx)
}

func configFromEnv() (server.Config, error) {
	cfg := server.Config{
		Port: server.DefaultPort,
		Host: os.Getenv("HOST"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("UPLOAD_RATE"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid UPLOAD_RATE %q: %w", v, err)
		}
		cfg.UploadRate = limit
	}
	if v := os.Getenv("UPLOAD_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid UPLOAD_BURST %q: %w", v, err)
		}
		cfg.UploadBurst = burst
	}

	return cfg, nil
}

func storeConfigFromEnv() *store.Config {
	return &store.Config{
		Type:     store.BackendType(os.Getenv("STORE_BACKEND")),
		S3Bucket: os.Getenv("S3_BUCKET"),
		S3Prefix: os.Getenv("S3_PREFIX"),
		S3Region: os.Getenv("S3_REGION"),
	}
}
