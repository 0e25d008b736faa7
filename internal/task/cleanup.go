package task

import (
	"context"
	"log/slog"
	"time"

	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	"github.com/frahmantamala/office-management/internal/store"
)

type Cleanup struct {
	repos  []store.Repository[Task]
	logger *slog.Logger
}

func NewCleanup(logger *slog.Logger, repos ...store.Repository[Task]) *Cleanup {
	return &Cleanup{repos: repos, logger: logger}
}

// Sweep deletes every completed task and reports how many went.
func (c *Cleanup) Sweep(ctx context.Context, _ time.Time) (int, error) {
	total := 0
	for _, repo := range c.repos {
		res, err := repo.DeleteMany(ctx, store.NewQuery().Eq("status", taskDatamodel.StatusCompleted))
		if err != nil {
			return total, err
		}
		total += int(res.DeletedCount)
	}
	c.logger.Info("completed tasks deleted", "count", total)
	return total, nil
}
