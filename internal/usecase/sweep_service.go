package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LeaderboardSource fetches one map leaderboard.
type LeaderboardSource interface {
	Leaderboards(ctx context.Context, query infinitode.LeaderboardQuery) (*leaderboard.Leaderboard, error)
}

type SweepInput struct {
	// Maps defaults to every known map.
	Maps       []string
	Mode       game.Mode
	Difficulty game.Difficulty
	PlayerID   string
	MaxWorkers int
}

type SweepResult struct {
	MapCount     int               `json:"map_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Tasks        []SweepTaskResult `json:"tasks"`
}

type SweepTaskResult struct {
	MapName    string       `json:"mapname"`
	Status     string       `json:"status"`
	Entries    int          `json:"entries"`
	Total      int          `json:"total"`
	Leader     *score.Score `json:"leader,omitempty"`
	Player     *score.Score `json:"player,omitempty"`
	DurationMs int64        `json:"duration_ms"`
	Message    string       `json:"message,omitempty"`
}

const (
	sweepStatusSuccess = "success"
	sweepStatusFailed  = "failed"

	maxSweepWorkers = 8
)

// SweepService fetches the leaderboards of many maps with a bounded number of requests in
// flight. Results keep the order of the requested maps.
type SweepService struct {
	source         LeaderboardSource
	defaultWorkers int
	logger         *logging.Logger
}

func NewSweepService(source LeaderboardSource, defaultWorkers int, logger *logging.Logger) *SweepService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SweepService{
		source:         source,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *SweepService) Sweep(ctx context.Context, input SweepInput) (SweepResult, error) {
	maps, err := normalizeSweepMaps(input.Maps)
	if err != nil {
		return SweepResult{}, err
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.Sweep", attribute.Int("sweep.maps", len(maps)))
	defer span.End()

	workers := input.MaxWorkers
	if workers <= 0 {
		workers = s.defaultWorkers
	}
	workerCount := normalizeSweepWorkerCount(workers, len(maps))
	result := SweepResult{
		MapCount:    len(maps),
		WorkerCount: workerCount,
		Tasks:       make([]SweepTaskResult, len(maps)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workersWG sync.WaitGroup
	for i, mapName := range maps {
		workersWG.Add(1)
		if err := pool.Submit(func() {
			defer workersWG.Done()

			row := s.runSweepTask(ctx, mapName, input)
			if row.Status == sweepStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			result.Tasks[i] = row
		}); err != nil {
			workersWG.Done()
			workersWG.Wait()
			return SweepResult{}, fmt.Errorf("submit sweep task mapname=%s: %w", mapName, err)
		}
	}
	workersWG.Wait()

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "leaderboard sweep finished",
		"maps", result.MapCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *SweepService) runSweepTask(ctx context.Context, mapName string, input SweepInput) SweepTaskResult {
	start := time.Now()
	row := SweepTaskResult{MapName: mapName}

	lb, err := s.source.Leaderboards(ctx, infinitode.LeaderboardQuery{
		MapName:    mapName,
		PlayerID:   input.PlayerID,
		Mode:       input.Mode,
		Difficulty: input.Difficulty,
	})
	row.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		s.logger.WarnContext(ctx, "sweep map failed", "mapname", mapName, "error", err)
		row.Status = sweepStatusFailed
		row.Message = err.Error()
		return row
	}

	row.Status = sweepStatusSuccess
	row.Entries = lb.Len()
	row.Total = lb.Total
	if leader, ok := lb.At(0); ok {
		row.Leader = &leader
	}
	row.Player = lb.Player
	return row
}

func normalizeSweepMaps(input []string) ([]string, error) {
	if len(input) == 0 {
		return append([]string(nil), game.Maps...), nil
	}

	out := make([]string, 0, len(input))
	seen := make(map[string]struct{}, len(input))
	for _, item := range input {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		if !game.IsKnownMap(name) {
			return nil, fmt.Errorf("%w: unknown map %q", ErrInvalidInput, name)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no maps to sweep", ErrInvalidInput)
	}
	return out, nil
}

func normalizeSweepWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxSweepWorkers {
		value = maxSweepWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
