package job

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/nclexly/nclexly-be/internal/delivery/http/repository"
	"github.com/nclexly/nclexly-be/internal/delivery/http/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const defaultRefreshIntervalMinutes = 60

// SnapshotRefresher periodically re-derives pattern snapshots for
// users with recent activity, so content selection reads a warm cache
// even when no one called the analysis endpoint.
type SnapshotRefresher struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
	log       *logrus.Logger
	interval  time.Duration
	learning  repository.LearningRepository
	engine    usecase.LearningEngineUsecase
}

type SnapshotRefresherConfig struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Config   *viper.Viper
	Learning repository.LearningRepository
	Engine   usecase.LearningEngineUsecase
}

func NewSnapshotRefresher(cfg SnapshotRefresherConfig) *SnapshotRefresher {
	minutes := defaultRefreshIntervalMinutes
	if cfg.Config != nil {
		if v := cfg.Config.GetInt("job.snapshot_refresh_minutes"); v > 0 {
			minutes = v
		}
	}

	return &SnapshotRefresher{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        cfg.DB,
		log:       cfg.Log,
		interval:  time.Duration(minutes) * time.Minute,
		learning:  cfg.Learning,
		engine:    cfg.Engine,
	}
}

// Start begins the periodic refresh in a non-blocking manner.
func (r *SnapshotRefresher) Start() {
	r.scheduler.Every(r.interval).Do(r.refreshActiveUsers)
	r.scheduler.StartAsync()
}

// Stop terminates the scheduled refresh.
func (r *SnapshotRefresher) Stop() {
	r.scheduler.Stop()
}

func (r *SnapshotRefresher) refreshActiveUsers() {
	since := time.Now().Add(-r.interval)

	userIDs, err := r.learning.FindActiveUserIDsSince(r.db, since)
	if err != nil {
		r.log.Errorf("snapshot refresh: failed to list active users: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := r.engine.Analyze(context.Background(), userID); err != nil {
			r.log.Errorf("snapshot refresh for user %s failed: %v", userID, err)
		}
	}

	if len(userIDs) > 0 {
		r.log.Infof("refreshed snapshots for %d active users", len(userIDs))
	}
}
