package tlsconf

import (
	"testing"
)

func TestBuildDisableAllowPreferReturnNil(t *testing.T) {
	for _, mode := range []Mode{"", Disable, Allow, Prefer} {
		tc, err := Build(Config{Mode: mode}, "db.example.invalid")
		if err != nil {
			t.Fatalf("Build(%q) error = %v", mode, err)
		}
		if tc != nil {
			t.Errorf("Build(%q) = %v, want nil", mode, tc)
		}
	}
}

func TestBuildRequireSkipsVerification(t *testing.T) {
	tc, err := Build(Config{Mode: Require}, "db.example.invalid")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if tc == nil || !tc.InsecureSkipVerify {
		t.Error("expected Require mode to produce a tls.Config with InsecureSkipVerify")
	}
}

func TestBuildVerifyCARequiresCAFile(t *testing.T) {
	if _, err := Build(Config{Mode: VerifyCA}, "db.example.invalid"); err == nil {
		t.Fatal("expected error when ssl_ca is missing for verify-ca")
	}
}

func TestBuildUnknownModeIsError(t *testing.T) {
	if _, err := Build(Config{Mode: "bogus"}, "db.example.invalid"); err == nil {
		t.Fatal("expected error for unknown ssl_mode")
	}
}

func TestBuildCertRequiresKeyTogether(t *testing.T) {
	// The cert/key pairing check happens before either file is read, so
	// a nonexistent path is enough to exercise it.
	if _, err := Build(Config{Mode: Require, CertFile: "/nonexistent/cert.pem"}, "db.example.invalid"); err == nil {
		t.Fatal("expected error when ssl_cert is set without ssl_key")
	}
}
