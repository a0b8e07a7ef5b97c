package container

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vpikulik/prometheus-podman-exporter/internal/api/common/errors"
	"github.com/vpikulik/prometheus-podman-exporter/internal/models"
)

type containerService struct {
	engine  Engine
	metrics *Metrics
	logger  *zap.Logger
}

var _ ContainerService = (*containerService)(nil)

func NewContainerService(engine Engine, metrics *Metrics, logger *zap.Logger) ContainerService {
	return &containerService{
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

// Update runs one collection cycle: fetch the inventory and a stats
// snapshot, join them by container id and write the result into the gauges.
// Gauges updated before a failure keep their new values.
func (cs *containerService) Update(ctx context.Context) error {
	start := time.Now()
	defer func() {
		cs.metrics.ScrapeDuration.Set(time.Since(start).Seconds())
	}()

	var (
		index  map[string]ContainerInfo
		report *models.StatsReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := cs.engine.ListContainers(gctx)
		if err != nil {
			return errors.ScrapeErr("inventory", err)
		}
		index = inventoryIndex(list)
		return nil
	})
	g.Go(func() error {
		r, err := cs.engine.Stats(gctx)
		if err != nil {
			return errors.ScrapeErr("stats", err)
		}
		report = r
		return nil
	})
	if err := g.Wait(); err != nil {
		cs.metrics.EngineUp.Set(0)
		cs.metrics.ScrapeErrors.Inc()
		return err
	}
	cs.metrics.EngineUp.Set(1)

	if apiErr := report.APIError(); apiErr != "" {
		cs.logger.Warn("podman reported a stats error", zap.String("error", apiErr))
	}

	cs.metrics.Total.Set(float64(len(index)))
	if report.Stats == nil {
		// No samples list at all. The inventory size is still worth
		// reporting, the per-container gauges keep their last values.
		return nil
	}

	pods := make(map[string]int)
	for _, info := range index {
		if info.Pod != "" {
			pods[info.Pod]++
		}
	}
	for pod, count := range pods {
		cs.metrics.Count.WithLabelValues(pod).Set(float64(count))
	}

	for _, sample := range report.Stats {
		info, ok := index[sample.ContainerID]
		if !ok {
			// A sample for a container the inventory does not know
			// cannot be labeled.
			cs.logger.Debug("dropping orphan stats sample",
				zap.String("container_id", sample.ContainerID))
			continue
		}
		cs.setSample(info, sample)
	}
	return nil
}

func (cs *containerService) setSample(info ContainerInfo, sample models.ContainerStats) {
	pod, name := info.Pod, info.Name

	cs.metrics.State.WithLabelValues(pod, name).Set(info.State)
	cs.metrics.Uptime.WithLabelValues(pod, name).Set(float64(sample.UpTime))
	cs.metrics.SystemNano.WithLabelValues(pod, name).Set(float64(sample.SystemNano))
	cs.metrics.PIDs.WithLabelValues(pod, name).Set(float64(sample.PIDs))
	cs.metrics.AvgCPU.WithLabelValues(pod, name).Set(sample.AvgCPU)
	cs.metrics.CPU.WithLabelValues(pod, name).Set(sample.CPU)
	cs.metrics.CPUNano.WithLabelValues(pod, name).Set(float64(sample.CPUNano))
	cs.metrics.CPUSystemNano.WithLabelValues(pod, name).Set(float64(sample.CPUSystemNano))
	cs.metrics.MemUsage.WithLabelValues(pod, name).Set(float64(sample.MemUsage))
	cs.metrics.MemLimit.WithLabelValues(pod, name).Set(float64(sample.MemLimit))
	cs.metrics.MemPerc.WithLabelValues(pod, name).Set(sample.MemPerc)
	cs.metrics.NetInput.WithLabelValues(pod, name).Set(float64(sample.NetInput))
	cs.metrics.NetOutput.WithLabelValues(pod, name).Set(float64(sample.NetOutput))
	cs.metrics.BlockInput.WithLabelValues(pod, name).Set(float64(sample.BlockInput))
	cs.metrics.BlockOutput.WithLabelValues(pod, name).Set(float64(sample.BlockOutput))
}
