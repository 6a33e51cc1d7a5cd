package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/pele/internal/adapters/http/api"
	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/config"
	"github.com/okian/pele/internal/sampledata"
	"github.com/okian/pele/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// writeSample writes a small generated dataset and returns its path.
func writeSample(t *testing.T) string {
	t.Helper()
	cfg := sampledata.Config{Players: 12, Teams: 2, Matches: 2, Seasons: []string{"2024"}, Seed: 3, Workers: 1}
	tbl, err := sampledata.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sample.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := ingest.WriteCanonical(f, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.New(context.Background())
	cfg.Addr = "127.0.0.1:0"
	cfg.DataPaths = []string{writeSample(t)}
	return cfg
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a config with a weights file", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.WeightsFile = filepath.Join(t.TempDir(), "weights.toml")
		convey.So(os.WriteFile(cfg.WeightsFile, []byte("[presets.attacking]\nw_g = 2.0\n"), 0o600), convey.ShouldBeNil)

		convey.Convey("Then the service starts with the preset selectable", func() {
			svc, err := newService(cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			convey.So(svc.Profiles(), convey.ShouldContain, "attacking")
		})

		convey.Convey("Then a broken weights file fails early", func() {
			convey.So(os.WriteFile(cfg.WeightsFile, []byte("[presets.x]\nw_nope = 1\n"), 0o600), convey.ShouldBeNil)
			_, err := newService(cfg, logger.Get())
			convey.So(errors.Is(err, config.ErrUnknownWeightKey), convey.ShouldBeTrue)
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the full handler chain", t, func() {
		ctx := context.Background()
		svc, err := newService(testConfig(t), logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, svc, api.NewRateLimiter(1, 3), logger.Get())
		get := func(target string, header map[string]string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
			req.RemoteAddr = "198.51.100.4:1234"
			for k, v := range header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w
		}

		convey.Convey("Then ratings are served and compressed on request", func() {
			w := get("/ratings?limit=3", map[string]string{"Accept-Encoding": "gzip"})
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Encoding"), convey.ShouldEqual, "gzip")
		})

		convey.Convey("Then docs and the viewer are mounted", func() {
			convey.So(get("/openapi.yaml", nil).Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/", nil).Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then a client over its burst is rejected", func() {
			for i := 0; i < 3; i++ {
				get("/stats", nil)
			}
			convey.So(get("/stats", nil).Code, convey.ShouldEqual, http.StatusTooManyRequests)
			convey.So(get("/stats", map[string]string{"X-Forwarded-For": "203.0.113.9"}).Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running server", t, func() {
		cfg := testConfig(t)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- run(ctx, cfg) }()

		convey.Convey("Then cancelling the context shuts it down cleanly", func() {
			time.Sleep(200 * time.Millisecond)
			cancel()
			select {
			case err := <-done:
				convey.So(err, convey.ShouldBeNil)
			case <-time.After(10 * time.Second):
				t.Fatal("run did not return after cancel")
			}
		})
	})

	convey.Convey("Given no data", t, func() {
		cfg := testConfig(t)
		cfg.DataPaths = nil
		convey.So(run(context.Background(), cfg), convey.ShouldNotBeNil)
	})

	convey.Convey("Given the system metrics updater", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
