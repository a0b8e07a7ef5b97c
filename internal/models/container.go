package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// ListContainer is one entry of the libpod `containers/json` response. Only
// the fields the exporter consumes are mapped.
type ListContainer struct {
	ID      string   `json:"Id"`
	Names   []string `json:"Names"`
	Pod     string   `json:"Pod"`
	PodName string   `json:"PodName"`
	State   string   `json:"State"`
}

// ContainerStats is one live resource sample from the libpod
// `containers/stats` response. Every numeric field is optional on the wire;
// an absent key decodes to zero so each exported series always gets a value.
type ContainerStats struct {
	ContainerID   string        `json:"ContainerID"`
	Name          string        `json:"Name"`
	AvgCPU        float64       `json:"AvgCPU"`
	CPU           float64       `json:"CPU"`
	CPUNano       uint64        `json:"CPUNano"`
	CPUSystemNano uint64        `json:"CPUSystemNano"`
	SystemNano    uint64        `json:"SystemNano"`
	MemUsage      uint64        `json:"MemUsage"`
	MemLimit      uint64        `json:"MemLimit"`
	MemPerc       float64       `json:"MemPerc"`
	NetInput      uint64        `json:"NetInput"`
	NetOutput     uint64        `json:"NetOutput"`
	BlockInput    uint64        `json:"BlockInput"`
	BlockOutput   uint64        `json:"BlockOutput"`
	PIDs          uint64        `json:"PIDs"`
	UpTime        time.Duration `json:"UpTime"`
}

// StatsReport is the body of the libpod `containers/stats` response. Error
// carries an engine-side failure embedded in an otherwise valid response.
// Stats is nil when the payload held no samples list at all, which is not the
// same as an empty list.
type StatsReport struct {
	Error json.RawMessage  `json:"Error,omitempty"`
	Stats []ContainerStats `json:"Stats"`
}

var jsonNull = []byte("null")

// APIError returns the embedded engine error as text, or "" when the report
// carries none.
func (r *StatsReport) APIError() string {
	if len(r.Error) == 0 || bytes.Equal(r.Error, jsonNull) {
		return ""
	}
	return string(r.Error)
}
