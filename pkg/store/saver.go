package store

import (
	"context"

	"go.uber.org/zap"
)

// Saver returns a snapshot observer that writes every published snapshot to
// gw. Failures are logged and never reach the publisher.
func Saver(gw Gateway, log *zap.SugaredLogger) func(Snapshot) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return func(s Snapshot) {
		if err := gw.Save(context.Background(), s); err != nil {
			log.Errorw("store: save snapshot failed", "error", err)
			return
		}
		log.Debugw("store: snapshot saved",
			"tasks", len(s.Tasks),
			"events", len(s.Events),
			"bookmarks", len(s.Bookmarks))
	}
}
