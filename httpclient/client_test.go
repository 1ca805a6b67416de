package httpclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDecompressesGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(`hello world`))
	zw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	c := New()
	got, err := c.GetText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if want := "hello world"; got != want {
		t.Errorf("GetText() = %q, want %q", got, want)
	}
}

func TestGetNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New()
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("link", `<https://example.invalid/next>; rel="next"`)
		w.Write([]byte(`{"name":"corretto-11"}`))
	}))
	defer srv.Close()

	type payload struct {
		Name string `json:"name"`
	}
	c := New()
	v, headers, err := GetJSON[payload](context.Background(), c, srv.URL)
	if err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if v.Name != "corretto-11" {
		t.Errorf("Name = %q, want corretto-11", v.Name)
	}
	if headers.Get("link") == "" {
		t.Error("expected link header to be returned alongside decoded value")
	}
}

func TestUserAgentHeaderSet(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("user-agent")
	}))
	defer srv.Close()

	c := New(WithUserAgent("jmeta-test/1.0"))
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotUA != "jmeta-test/1.0" {
		t.Errorf("user-agent = %q, want jmeta-test/1.0", gotUA)
	}
}
