package services

import (
	"context"
	"fmt"

	"blog-engagement/logging"
	"blog-engagement/metrics"
	"blog-engagement/repositories"

	"github.com/robfig/cron/v3"
)

// LikeReconciler rewrites stored like counters from the like ledger. Toggle
// already keeps them in step; this catches rows written by other tools.
type LikeReconciler struct {
	likeRepo repositories.LikeRepository
	quartz   *cron.Cron
}

func NewLikeReconciler(likeRepo repositories.LikeRepository) *LikeReconciler {
	return &LikeReconciler{likeRepo: likeRepo}
}

func (r *LikeReconciler) Run(ctx context.Context) (int64, error) {
	fixed, err := r.likeRepo.Reconcile(ctx)
	if err != nil {
		return 0, fmt.Errorf("reconcile likes: %w", err)
	}
	if fixed > 0 {
		metrics.LikesReconciled.Add(float64(fixed))
		logging.Warn().Int64("articles", fixed).Msg("Like counters drifted from the ledger and were rewritten")
	}
	return fixed, nil
}

// Start schedules Run with a cron spec such as "@every 60m".
func (r *LikeReconciler) Start(schedule string) error {
	r.quartz = cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logging.GlobalLogger())))
	if _, err := r.quartz.AddFunc(schedule, func() {
		if _, err := r.Run(context.Background()); err != nil {
			logging.Error().Err(err).Msg("An error occurred when reconciling like counters...")
		}
	}); err != nil {
		return fmt.Errorf("schedule like reconciler: %w", err)
	}
	r.quartz.Start()
	return nil
}

func (r *LikeReconciler) Stop() {
	if r.quartz == nil {
		return
	}
	<-r.quartz.Stop().Done()
}
