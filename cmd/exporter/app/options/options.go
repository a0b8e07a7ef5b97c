package options

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/akamensky/argparse"
)

type Options struct {
	Host       *string
	Port       *int
	HealthPort *int
	PodmanURI  *string
	LogFile    *string
	CertFile   *string
	KeyFile    *string
	Mode       *string
	parser     *argparse.Parser
}

func NewOptions() (*Options, error) {
	option := &Options{}

	parser := argparse.NewParser("podman-exporter", "Argument Parser for podman-exporter configurations")
	option.parser = parser

	option.Host = parser.String("H", "host", &argparse.Options{
		Help:    "IP address the endpoints bind to",
		Default: "127.0.0.1",
	})
	option.Port = parser.Int("p", "port", &argparse.Options{
		Help:    "The port used by the metrics endpoint",
		Default: 9807,
	})
	option.HealthPort = parser.Int("", "health-port", &argparse.Options{
		Help:    "The port used by the liveness/readiness endpoint",
		Default: 9808,
	})
	option.PodmanURI = parser.String("", "podman", &argparse.Options{
		Help:    "URI of the podman API socket (unix://, tcp://, http:// or https://)",
		Default: "unix:///run/podman/podman.sock",
	})
	option.LogFile = parser.String("l", "log-file", &argparse.Options{
		Help: "Also write logs to this size-rotated file",
	})
	option.CertFile = parser.String("", "tls-cert-file", &argparse.Options{
		Help: "CertFile containing the default x509 Certificate for HTTPS. (CA cert)",
	})
	option.KeyFile = parser.String("", "tls-private-key-file", &argparse.Options{
		Help: "Private key file containing the default x509 private key matching --tls-cert-file",
	})
	option.Mode = parser.Selector("m", "mode", []string{"release", "development", "debug"}, &argparse.Options{
		Help:    "Choose release/development mode (default debug mode)",
		Default: "debug",
	})

	if err := parser.Parse(os.Args); err != nil {
		return option, err
	}

	if err := option.Validate(); err != nil {
		return option, err
	}
	return option, nil
}

func (o *Options) Validate() error {
	if net.ParseIP(*o.Host) == nil {
		return fmt.Errorf("host %q is not a valid IP address", *o.Host)
	}

	if *o.Port < 1 || *o.Port > 65535 {
		return fmt.Errorf("port %d is out of range", *o.Port)
	}
	if *o.HealthPort < 1 || *o.HealthPort > 65535 {
		return fmt.Errorf("health port %d is out of range", *o.HealthPort)
	}

	if (*o.CertFile == "") != (*o.KeyFile == "") {
		return errors.New("certificate/private key both must be present or neither must be present")
	}
	return nil
}

func (o *Options) Usage(err error) string {
	return o.parser.Usage(err)
}
