package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/geo"
)

// RefreshJob warms the response cache by fetching every enabled
// region/category combination through the aggregation service. Fetches are
// fail-soft, so a degraded feed slows a run down but never aborts it.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	service *disaster.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks warm job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns     int64
	TotalTasks    int64
	TotalFeatures int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config  RefreshConfig
	Logger  zerolog.Logger
	Service *disaster.Service
}

// NewRefreshJob creates a new cache warming job.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Regions) == 0 {
		config = DefaultRefreshConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		service: cfg.Service,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of one warm run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTasks int
	Completed  int
	Features   int
}

type warmTask struct {
	region   geo.Region
	category disaster.Category
}

type warmResult struct {
	features int
}

// Run executes one warm pass over all configured region/category pairs.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:  startTime,
		TotalTasks: j.config.TotalTasks(),
	}

	j.logger.Info().
		Int("total_tasks", result.TotalTasks).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache warm run")

	tasks := make(chan warmTask, result.TotalTasks)
	results := make(chan warmResult, result.TotalTasks)

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, tasks, results)
		}()
	}

	for _, region := range j.config.Regions {
		for _, cat := range j.config.Categories() {
			tasks <- warmTask{region: region, category: cat}
		}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	for wr := range results {
		result.Completed++
		result.Features += wr.features
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("completed", result.Completed).
		Int("features", result.Features).
		Msg("cache warm run completed")

	return result
}

func (j *RefreshJob) warmWorker(ctx context.Context, tasks <-chan warmTask, results chan<- warmResult) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.warmOne(ctx, task)
		}
	}
}

func (j *RefreshJob) warmOne(ctx context.Context, task warmTask) warmResult {
	taskCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	var fc *disaster.FeatureCollection
	switch task.category {
	case disaster.CategoryEarthquake:
		fc = j.service.FetchEarthquakes(taskCtx, disaster.DefaultEarthquakeQuery(), task.region)
	case disaster.CategoryWildfire:
		fc = j.service.FetchWildfires(taskCtx, task.region)
	case disaster.CategoryWeatherAlert:
		fc = j.service.FetchWeatherAlerts(taskCtx, task.region)
	case disaster.CategoryReliefCenter:
		fc = j.service.FetchReliefCenters(taskCtx, task.region)
	default:
		return warmResult{}
	}

	j.logger.Debug().
		Str("region", string(task.region)).
		Str("category", task.category.String()).
		Int("features", len(fc.Features)).
		Msg("warmed cache entry")

	return warmResult{features: len(fc.Features)}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.TotalTasks += int64(result.Completed)
	j.metrics.TotalFeatures += int64(result.Features)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		TotalTasks:      j.metrics.TotalTasks,
		TotalFeatures:   j.metrics.TotalFeatures,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
	}
}
