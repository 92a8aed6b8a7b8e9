package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

type TLSConfig struct {
	Enabled    bool   `envconfig:"TLS_ENABLED" default:"false"`
	SocketPath string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`
}

var x509Source *workloadapi.X509Source

// LoadTLSConfig builds an mTLS server config from the SPIRE Workload API.
// Returns nil when TLS is disabled.
func LoadTLSConfig(cfg *TLSConfig, logger *zap.Logger) (*tls.Config, error) {
	if !cfg.Enabled {
		logger.Info("TLS is disabled")
		return nil, nil
	}

	ctx := context.Background()

	source, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(cfg.SocketPath),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	x509Source = source

	tlsConfig := tlsconfig.MTLSServerConfig(source, source, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", cfg.SocketPath),
		zap.Bool("mtls_enabled", true))

	return tlsConfig, nil
}

// WatchCertificates logs SVID status periodically. SPIRE rotates the
// certificates itself; this only surfaces expiry in the logs.
func WatchCertificates(cfg *TLSConfig, logger *zap.Logger) {
	if x509Source == nil {
		logger.Error("X509Source is not initialized")
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		svid, err := x509Source.GetX509SVID()
		if err != nil {
			logger.Error("Failed to get X509 SVID", zap.Error(err))
			continue
		}

		logger.Info("Certificate status",
			zap.String("spiffe_id", svid.ID.String()),
			zap.Time("expiry", svid.Certificates[0].NotAfter),
			zap.Duration("ttl", time.Until(svid.Certificates[0].NotAfter)))
	}
}

func Cleanup() {
	if x509Source != nil {
		x509Source.Close()
	}
}
