package options

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()

	old := os.Args
	os.Args = append([]string{"podman-exporter"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestNewOptionsDefaults(t *testing.T) {
	withArgs(t)

	option, err := NewOptions()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", *option.Host)
	assert.Equal(t, 9807, *option.Port)
	assert.Equal(t, 9808, *option.HealthPort)
	assert.Equal(t, "unix:///run/podman/podman.sock", *option.PodmanURI)
	assert.Equal(t, "debug", *option.Mode)
	assert.Empty(t, *option.LogFile)
	assert.Empty(t, *option.CertFile)
	assert.Empty(t, *option.KeyFile)
}

func TestNewOptionsOverrides(t *testing.T) {
	withArgs(t,
		"--host", "0.0.0.0",
		"--port", "9090",
		"--health-port", "9091",
		"--podman", "tcp://10.0.0.5:8080",
		"--mode", "release",
	)

	option, err := NewOptions()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", *option.Host)
	assert.Equal(t, 9090, *option.Port)
	assert.Equal(t, 9091, *option.HealthPort)
	assert.Equal(t, "tcp://10.0.0.5:8080", *option.PodmanURI)
	assert.Equal(t, "release", *option.Mode)
}

func TestNewOptionsRejectsBadHost(t *testing.T) {
	withArgs(t, "--host", "metrics.internal")

	option, err := NewOptions()
	require.Error(t, err)
	assert.NotEmpty(t, option.Usage(err))
}

func TestNewOptionsRejectsPortOutOfRange(t *testing.T) {
	withArgs(t, "--port", "70000")

	_, err := NewOptions()
	assert.Error(t, err)
}

func TestNewOptionsRejectsHalfTLSPair(t *testing.T) {
	withArgs(t, "--tls-cert-file", "/etc/exporter/cert.pem")

	_, err := NewOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both must be present")
}
