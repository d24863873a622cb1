package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.enabled, ShouldBeTrue)
				So(manager.queryBuckets, ShouldResemble, defaultQueryBuckets)
				So(manager.httpBuckets, ShouldResemble, defaultHTTPBuckets)
			})

			Convey("And metric names carry the service namespace", func() {
				manager.RecordQuery("host_cities", 0.2, false)
				manager.RecordHTTPRequest("/api/host/cities", "GET", "200", 1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["dara_query_duration_milliseconds"], ShouldBeTrue)
				So(names["dara_api_http_requests_total"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom buckets", func() {
			manager := NewManager(
				WithQueryBuckets([]float64{0.1, 1}),
				WithHTTPBuckets([]float64{1, 10}),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options are applied", func() {
				So(manager.queryBuckets, ShouldResemble, []float64{0.1, 1})
				So(manager.httpBuckets, ShouldResemble, []float64{1, 10})
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithQueryBuckets(nil),
				WithHTTPBuckets([]float64{}),
				WithRegistry(nil),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.queryBuckets, ShouldResemble, defaultQueryBuckets)
				So(manager.httpBuckets, ShouldResemble, defaultHTTPBuckets)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithRegistry(prometheus.NewRegistry()))

		Convey("When dataset metrics are set", func() {
			manager.SetDatasetRows("olympics", 271116)
			manager.SetDatasetLoadDuration("olympics", 850)
			manager.RecordDatasetLoadError("energy")

			Convey("Then the gauges hold the values", func() {
				So(testutil.ToFloat64(manager.datasetRows.WithLabelValues("olympics")), ShouldEqual, 271116)
				So(testutil.ToFloat64(manager.datasetLoadDuration.WithLabelValues("olympics")), ShouldEqual, 850)
				So(testutil.ToFloat64(manager.datasetLoadErrors.WithLabelValues("energy")), ShouldEqual, 1)
			})
		})

		Convey("When queries are recorded", func() {
			manager.RecordQuery("lucky_names", 3, false)
			manager.RecordQuery("lucky_names", 2, true)
			manager.RecordQueryError("lucky_names")

			Convey("Then outcomes are split by label", func() {
				So(testutil.ToFloat64(manager.queryResults.WithLabelValues("lucky_names", "rows")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.queryResults.WithLabelValues("lucky_names", "empty")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.queryErrors.WithLabelValues("lucky_names")), ShouldEqual, 1)
			})
		})

		Convey("When HTTP traffic is recorded", func() {
			manager.RecordHTTPRequest("names_lucky", "GET", "200", 4)
			manager.RecordNotModified("names_lucky")
			manager.RecordError("medals_rankings", "GET", "client_error", "medium")
			manager.RecordPanic()

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("names_lucky", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.httpNotModified.WithLabelValues("names_lucky")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.errorRateByType.WithLabelValues("client_error", "medium")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.panicsRecovered), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(WithRegistry(prometheus.NewRegistry()), WithoutRecording())

		Convey("When recording", func() {
			manager.RecordPanic()
			manager.SetDatasetRows("ipl", 10)

			Convey("Then nothing is observed", func() {
				So(testutil.ToFloat64(manager.panicsRecovered), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.datasetRows.WithLabelValues("ipl")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global registry", t, func() {
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When package helpers are called", func() {
			SetDatasetRows("netflix", 8807)
			RecordQuery("top_directors", 1, false)
			RecordHTTPRequest("netflix_top_directors", "GET", "200", 1)
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(8)
			RecordSystemGCPauseTime(0.2)

			Convey("Then the registry gathers without error", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
