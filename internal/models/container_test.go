package models

import (
	"testing"

	"github.com/pquerna/ffjson/ffjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsReportDecodeMissingFields(t *testing.T) {
	body := []byte(`{"Error":null,"Stats":[{"ContainerID":"abc","Name":"web"}]}`)

	var report StatsReport
	require.NoError(t, ffjson.Unmarshal(body, &report))

	require.Len(t, report.Stats, 1)
	sample := report.Stats[0]
	assert.Equal(t, "abc", sample.ContainerID)
	assert.Equal(t, "web", sample.Name)
	assert.Zero(t, sample.CPU)
	assert.Zero(t, sample.MemUsage)
	assert.Zero(t, sample.PIDs)
	assert.Zero(t, sample.UpTime)
}

func TestStatsReportDecodeNoSamplesList(t *testing.T) {
	body := []byte(`{"Error":null}`)

	var report StatsReport
	require.NoError(t, ffjson.Unmarshal(body, &report))

	assert.Nil(t, report.Stats)
	assert.Empty(t, report.APIError())
}

func TestStatsReportDecodeEmptySamplesList(t *testing.T) {
	body := []byte(`{"Error":null,"Stats":[]}`)

	var report StatsReport
	require.NoError(t, ffjson.Unmarshal(body, &report))

	require.NotNil(t, report.Stats)
	assert.Len(t, report.Stats, 0)
}

func TestStatsReportAPIError(t *testing.T) {
	body := []byte(`{"Error":"container died mid-read","Stats":[]}`)

	var report StatsReport
	require.NoError(t, ffjson.Unmarshal(body, &report))

	assert.Contains(t, report.APIError(), "container died mid-read")
}

func TestListContainerDecode(t *testing.T) {
	body := []byte(`[
		{"Id":"abc","Names":["web"],"Pod":"p1","PodName":"group1","State":"running"},
		{"Id":"def","Names":["worker"],"State":"created"}
	]`)

	var containers []ListContainer
	require.NoError(t, ffjson.Unmarshal(body, &containers))

	require.Len(t, containers, 2)
	assert.Equal(t, "group1", containers[0].PodName)
	assert.Equal(t, []string{"web"}, containers[0].Names)
	assert.Empty(t, containers[1].PodName)
	assert.Equal(t, "created", containers[1].State)
}
