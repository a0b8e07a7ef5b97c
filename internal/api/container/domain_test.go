package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpikulik/prometheus-podman-exporter/internal/models"
)

func TestStateCode(t *testing.T) {
	tests := []struct {
		state string
		want  float64
	}{
		{"running", StateRunning},
		{"created", StateCreated},
		{"stopped", StateStopped},
		{"exited", StateStopped},
		{"unknown", StateUnknown},
		{"paused", StateUnknown},
		{"", StateUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stateCode(tt.state), "state %q", tt.state)
	}
}

func TestInventoryIndex(t *testing.T) {
	list := []models.ListContainer{
		{ID: "a1", Names: []string{"web", "alias"}, PodName: "group1", State: "running"},
		{ID: "", Names: []string{"ghost"}, State: "running"},
		{ID: "a3", State: "running"},
		{ID: "a4", Names: []string{"solo"}, State: "exited"},
	}

	index := inventoryIndex(list)

	require.Len(t, index, 2)
	assert.Equal(t, ContainerInfo{Pod: "group1", Name: "web", State: StateRunning}, index["a1"])
	assert.Equal(t, ContainerInfo{Name: "solo", State: StateStopped}, index["a4"])
}

func TestInventoryIndexEmpty(t *testing.T) {
	assert.Empty(t, inventoryIndex(nil))
	assert.Empty(t, inventoryIndex([]models.ListContainer{}))
}
