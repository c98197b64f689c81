package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/coursecoc/coursecoc-server/domain"
)

const defaultSyncInterval = 10 * time.Second

// viewCounterStore is the slice of the repositories the worker needs:
// an atomic views delta per entity id.
type viewCounterStore interface {
	AddViews(ctx context.Context, id int64, deltaViews int64) error
}

// viewBuffer is the redis side: drain the buffered deltas.
type viewBuffer interface {
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

// syncViewsWorker periodically folds the redis view buffers into mysql.
// Courses and posts each get their own buffer/store pair.
type syncViewsWorker struct {
	targets  []syncTarget
	interval time.Duration
}

type syncTarget struct {
	name   string
	buffer viewBuffer
	store  viewCounterStore
}

func NewSyncViewsWorker(courseRepo domain.CourseRepository, courseCache domain.CourseCache,
	postRepo domain.PostRepository, postViews domain.PostViewBuffer) *syncViewsWorker {
	return &syncViewsWorker{
		targets: []syncTarget{
			{name: "course", buffer: courseCache, store: courseRepo},
			{name: "post", buffer: postViews, store: postRepo},
		},
		interval: defaultSyncInterval,
	}
}

func (s *syncViewsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down SyncViewsWorker, flushing remaining views...")
			// the request context is gone; give the final flush its own deadline
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.flush(flushCtx)
			cancel()
			return
		}
	}
}

func (s *syncViewsWorker) flush(ctx context.Context) {
	for _, target := range s.targets {
		views, err := target.buffer.FetchAndResetViews(ctx)
		if err != nil {
			logrus.Errorf("failed to drain %s view buffer: %v", target.name, err)
			continue
		}

		for id, delta := range views {
			if delta == 0 {
				continue
			}
			if err := target.store.AddViews(ctx, id, delta); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// entity deleted while views were buffered
					continue
				}
				logrus.Errorf("failed to sync %d views for %s %d: %v", delta, target.name, id, err)
			}
		}
	}
}
