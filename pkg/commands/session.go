package commands

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/logging"
	"tableflip.dev/worklog/pkg/store"
)

// session is the wiring every command shares: config, logger, the disk
// gateway and a service whose mutations are saved back to disk.
type session struct {
	cfg  store.Config
	log  *zap.SugaredLogger
	disk *store.Disk
	svc  *app.Service
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel(), cfg.LogFile())
	if err != nil {
		return nil, err
	}
	disk, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(ctx, disk, app.WithLogger(log))
	if err != nil {
		return nil, err
	}
	svc.Subscribe(store.Saver(disk, log))
	log.Debugw("session opened", "path", disk.Path())
	return &session{cfg: cfg, log: log, disk: disk, svc: svc}, nil
}

func (s *session) Close() {
	_ = s.log.Sync()
}

func ctxOf(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
