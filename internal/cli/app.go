package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Skotchmaster/vogue_nest/internal/config"
	"github.com/Skotchmaster/vogue_nest/internal/kv"
	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/mykafka"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/seed"
)

// app is what every command needs: configuration, a logger and an open store.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	kv        kv.Store
	store     *repo.Store
	publisher mykafka.Publisher
}

func openApp(ctx context.Context, opts *RootOptions, logOut io.Writer) (*app, context.Context, error) {
	cfg := config.Load(opts.EnvFile)
	if opts.StoreURL != "" {
		cfg.StoreURL = opts.StoreURL
	}

	logger := logging.NewWithWriter(logOut, cfg.LogLevel).With("service", cfg.ServiceName)
	ctx = logging.IntoContext(ctx, logger)

	backend, err := kv.Open(ctx, cfg.StoreURL, cfg.ServiceName)
	if err != nil {
		return nil, ctx, err
	}

	data, err := seed.Default()
	if err != nil {
		_ = backend.Close()
		return nil, ctx, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		kv:        backend,
		store:     repo.NewStore(backend, data),
		publisher: mykafka.New(cfg.KafkaBrokers),
	}, ctx, nil
}

func (a *app) Close() error {
	var errs []error
	if c, ok := a.publisher.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	errs = append(errs, a.kv.Close())
	return errors.Join(errs...)
}
