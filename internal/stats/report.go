package stats

import (
	"context"

	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/score"
	"github.com/artemgv/ritmo/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions    []model.SessionAggregate
	Predictions model.PredictionStats
	Recall      score.Summary
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	predictions, err := st.PredictionStatsForSessions(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:    sessions,
		Predictions: predictions,
		Recall:      score.Aggregate(predictions),
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}
