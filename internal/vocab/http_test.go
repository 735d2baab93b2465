package vocab

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/store"
)

const payloadV1 = `{"lesson1":[{"w":"本","r":"ほん","m":"book","c":"书"}]}`
const payloadV2 = `{"lesson1":[{"w":"本","r":"ほん"},{"w":"辞書","r":"じしょ"}]}`

type fakeServer struct {
	mu       sync.Mutex
	body     string
	modified string
	down     bool
	heads    int
	gets     int
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		http.Error(w, "down", http.StatusServiceUnavailable)
		return
	}
	if r.URL.Path != "/n2.json" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Last-Modified", f.modified)
	switch r.Method {
	case http.MethodHead:
		f.heads++
	case http.MethodGet:
		f.gets++
		io.WriteString(w, f.body)
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestHTTPSource_CachesByLastModified(t *testing.T) {
	fs := &fakeServer{body: payloadV1, modified: "Mon, 01 Jan 2024 00:00:00 GMT"}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	kv := store.NewMemoryKV()
	src := NewHTTPSource(srv.URL+"/", kv, WithLogger(quietLogger()))
	ctx := context.Background()

	l, err := src.Fetch(ctx, LevelN2)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(l["lesson1"]) != 1 {
		t.Fatalf("lesson1 = %v", l["lesson1"])
	}

	// Unchanged marker: served from cache, no second GET.
	if _, err := src.Fetch(ctx, LevelN2); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if fs.gets != 1 {
		t.Errorf("GET count = %d, want 1", fs.gets)
	}
	if fs.heads != 2 {
		t.Errorf("HEAD count = %d, want 2", fs.heads)
	}

	// Changed marker: downloads again.
	fs.mu.Lock()
	fs.body = payloadV2
	fs.modified = "Tue, 02 Jan 2024 00:00:00 GMT"
	fs.mu.Unlock()

	l, err = src.Fetch(ctx, LevelN2)
	if err != nil {
		t.Fatalf("third fetch: %v", err)
	}
	if len(l["lesson1"]) != 2 {
		t.Errorf("expected refreshed payload, got %v", l["lesson1"])
	}
	if fs.gets != 2 {
		t.Errorf("GET count = %d, want 2", fs.gets)
	}
}

func TestHTTPSource_FallsBackToCache(t *testing.T) {
	fs := &fakeServer{body: payloadV1, modified: "Mon, 01 Jan 2024 00:00:00 GMT"}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	kv := store.NewMemoryKV()
	src := NewHTTPSource(srv.URL, kv, WithLogger(quietLogger()))
	ctx := context.Background()

	if _, err := src.Fetch(ctx, LevelN2); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	fs.mu.Lock()
	fs.down = true
	fs.mu.Unlock()

	l, err := src.Fetch(ctx, LevelN2)
	if err != nil {
		t.Fatalf("fetch with server down: %v", err)
	}
	if len(l["lesson1"]) != 1 {
		t.Errorf("cached lesson1 = %v", l["lesson1"])
	}
}

func TestHTTPSource_UnavailableWithoutCache(t *testing.T) {
	fs := &fakeServer{down: true}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	src := NewHTTPSource(srv.URL, store.NewMemoryKV(), WithLogger(quietLogger()))
	_, err := src.Fetch(context.Background(), LevelN2)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestHTTPSource_InvalidPayloadUsesCache(t *testing.T) {
	fs := &fakeServer{body: payloadV1, modified: "a"}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	kv := store.NewMemoryKV()
	src := NewHTTPSource(srv.URL, kv, WithLogger(quietLogger()))
	ctx := context.Background()
	if _, err := src.Fetch(ctx, LevelN2); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	fs.mu.Lock()
	fs.body = `{"lesson1":[{"r":"missing word"}]}`
	fs.modified = "b"
	fs.mu.Unlock()

	l, err := src.Fetch(ctx, LevelN2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if l["lesson1"][0].Word != "本" {
		t.Errorf("expected cached payload, got %v", l["lesson1"])
	}

	// The invalid payload must not replace the cached marker.
	marker, _, _ := kv.Get(ctx, lastModifiedKey(LevelN2))
	if string(marker) != "a" {
		t.Errorf("marker = %q, want a", marker)
	}
}

func TestHTTPSource_NilCache(t *testing.T) {
	fs := &fakeServer{body: payloadV1}
	srv := httptest.NewServer(fs)
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil, WithLogger(quietLogger()))
	if _, err := src.Fetch(context.Background(), LevelN2); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}
