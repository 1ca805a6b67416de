// Package tlsconf builds the *tls.Config for the Postgres driver from
// the database.ssl_mode/ssl_ca/ssl_cert/ssl_key options of spec §6. It
// is an external collaborator per spec §1 ("the TLS certificate chain
// wiring for the database driver") — kept deliberately small.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/jmeta/jmeta"
)

// Mode is one of the sslmode values spec §6 recognizes.
type Mode string

const (
	Disable    Mode = "disable"
	Allow      Mode = "allow"
	Prefer     Mode = "prefer"
	Require    Mode = "require"
	VerifyCA   Mode = "verify-ca"
	VerifyFull Mode = "verify-full"
)

// Config carries the raw file paths from configuration.
type Config struct {
	Mode     Mode
	CAFile   string
	CertFile string
	KeyFile  string
}

// Build returns nil (use the driver's plaintext default) for Disable,
// Allow, and Prefer, and a *tls.Config for Require/VerifyCA/VerifyFull.
// VerifyCA and VerifyFull require CAFile; VerifyFull additionally
// validates the server hostname (InsecureSkipVerify left false).
func Build(cfg Config, serverName string) (*tls.Config, error) {
	switch cfg.Mode {
	case "", Disable, Allow, Prefer:
		return nil, nil
	case Require, VerifyCA, VerifyFull:
		// fall through to construction below.
	default:
		return nil, &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "tlsconf.Build", Message: fmt.Sprintf("unknown ssl_mode %q", cfg.Mode)}
	}

	tc := &tls.Config{ServerName: serverName}
	if cfg.Mode == Require {
		tc.InsecureSkipVerify = true
	}
	if cfg.Mode == VerifyCA || cfg.Mode == VerifyFull {
		if cfg.CAFile == "" {
			return nil, &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "tlsconf.Build", Message: "ssl_ca required for " + string(cfg.Mode)}
		}
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrIo, Op: "tlsconf.Build", Inner: err}
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "tlsconf.Build", Message: "ssl_ca does not contain a valid certificate"}
		}
		tc.RootCAs = pool
		if cfg.Mode == VerifyCA {
			// Trust the CA but skip hostname verification.
			tc.InsecureSkipVerify = true
			tc.VerifyPeerCertificate = verifyChainOnly(pool)
		}
	}
	if cfg.CertFile != "" || cfg.KeyFile != "" {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return nil, &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "tlsconf.Build", Message: "ssl_cert and ssl_key must be set together"}
		}
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrIo, Op: "tlsconf.Build", Inner: err}
		}
		tc.Certificates = []tls.Certificate{cert}
	}
	return tc, nil
}

// verifyChainOnly implements certificate-chain verification without
// hostname checking, for verify-ca mode.
func verifyChainOnly(pool *x509.CertPool) func([][]byte, [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return fmt.Errorf("tlsconf: no certificate presented")
		}
		leaf, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return err
		}
		opts := x509.VerifyOptions{Roots: pool}
		_, err = leaf.Verify(opts)
		return err
	}
}
