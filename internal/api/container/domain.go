package container

import (
	"context"

	"github.com/vpikulik/prometheus-podman-exporter/internal/models"
)

// Engine is the container engine surface the collector needs. It is
// implemented by podman.Client.
type Engine interface {
	ListContainers(ctx context.Context) ([]models.ListContainer, error)
	Stats(ctx context.Context) (*models.StatsReport, error)
}

// ContainerService runs one collection cycle against the engine and writes
// the outcome into the metric set.
type ContainerService interface {
	Update(ctx context.Context) error
}

// Numeric state codes exported by the state gauge.
const (
	StateUnknown float64 = -1
	StateStopped float64 = 0
	StateRunning float64 = 1
	StateCreated float64 = 2
)

// ContainerInfo is one reconciled inventory entry: the identity labels and
// the state code of a single container. Pod is empty when the container
// belongs to no pod.
type ContainerInfo struct {
	Pod   string
	Name  string
	State float64
}

func stateCode(state string) float64 {
	switch state {
	case "running":
		return StateRunning
	case "created":
		return StateCreated
	case "stopped", "exited":
		return StateStopped
	default:
		return StateUnknown
	}
}

// inventoryIndex keys the raw inventory by container id. Entries without an
// id or without a name cannot label a series and are dropped.
func inventoryIndex(list []models.ListContainer) map[string]ContainerInfo {
	index := make(map[string]ContainerInfo, len(list))
	for _, item := range list {
		if item.ID == "" || len(item.Names) == 0 {
			continue
		}
		index[item.ID] = ContainerInfo{
			Pod:   item.PodName,
			Name:  item.Names[0],
			State: stateCode(item.State),
		}
	}
	return index
}
