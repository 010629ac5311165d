// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package metrics exports render loop metrics to
// Prometheus.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gviegas/cubes/scene"
)

// Recorder collects statistics of rendered frames.
type Recorder struct {
	frames     prometheus.Counter
	draws      prometheus.Counter
	frameTimes prometheus.Histogram
	fps        prometheus.Gauge
	handler    http.Handler
}

// NewRecorder creates a Recorder whose collectors are
// registered in reg.
// A nil reg means the default registry.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	var r prometheus.Registerer = prometheus.DefaultRegisterer
	h := promhttp.Handler()
	if reg != nil {
		r = reg
		h = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	f := promauto.With(r)
	return &Recorder{
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "cubes_frames_total",
			Help: "Number of frames rendered",
		}),
		draws: f.NewCounter(prometheus.CounterOpts{
			Name: "cubes_draw_calls_total",
			Help: "Number of draw calls submitted",
		}),
		frameTimes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cubes_frame_seconds",
			Help:    "Time spent building a frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		fps: f.NewGauge(prometheus.GaugeOpts{
			Name: "cubes_fps",
			Help: "Frames per second over the last measurement interval",
		}),
		handler: h,
	}
}

// Observe records st. It can be used as
// scene.Config.OnFrame.
func (r *Recorder) Observe(st scene.FrameStats) {
	r.frames.Inc()
	r.draws.Add(float64(st.Draws))
	r.frameTimes.Observe(st.Elapsed.Seconds())
}

// SetFPS records a frame rate measurement. It can be
// used as a frame.Callback.
func (r *Recorder) SetFPS(fps float32) { r.fps.Set(float64(fps)) }

func (r *Recorder) InitRoutes(router *mux.Router) {
	router.Handle("/metrics", r.handler).Methods("GET")
}

// NewRouter creates a router serving r's metrics.
func NewRouter(r *Recorder) *mux.Router {
	router := mux.NewRouter()
	r.InitRoutes(router)
	return router
}
