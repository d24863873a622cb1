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

	"github.com/dara-lab/dara/internal/config"
	"github.com/dara-lab/dara/pkg/logger"
	"github.com/dara-lab/dara/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("DARA_ADDR", ":8080")
			t.Setenv("DARA_MAX_TOP_N", "50")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			cfg := config.New()
			cfg.ReadTimeoutMS = 1500
			svc := newService(cfg, logger.Get())
			srv := newHTTPServer(context.Background(), cfg, svc)

			convey.Convey("Then the configured address and timeouts are applied", func() {
				convey.So(srv.Addr, convey.ShouldEqual, ":5000")
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 1500*time.Millisecond)
				convey.So(srv.WriteTimeout, convey.ShouldEqual, 30*time.Second)
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			})

			convey.Convey("And unknown routes answer with the JSON not-found payload", func() {
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Endpoint not found")
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServiceStartup(t *testing.T) {
	convey.Convey("Given a data directory without the dataset files", t, func() {
		cfg := config.New()
		cfg.DataDir = t.TempDir()
		svc := newService(cfg, logger.Get())

		convey.Convey("When the service starts", func() {
			err := svc.Start(context.Background())

			convey.Convey("Then startup fails with the missing file", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, os.ErrNotExist), convey.ShouldBeTrue)
				convey.So(svc.Started(), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given an absolute dataset path", t, func() {
		cfg := config.New()
		abs := filepath.Join(t.TempDir(), "athletes.csv")

		convey.Convey("Then it is used as is", func() {
			convey.So(cfg.Path(abs), convey.ShouldEqual, abs)
			convey.So(cfg.Path(cfg.OlympicsFile), convey.ShouldEqual, filepath.Join("data", "athlete_events.csv"))
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("DARA_READ_TIMEOUT_MS", "0")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
