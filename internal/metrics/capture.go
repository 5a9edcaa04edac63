// Package metrics exposes capture counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
)

// Capture counts stream lines by outcome for one capture session.
type Capture struct {
	lines *prometheus.CounterVec
}

func NewCapture(reg prometheus.Registerer, gesture string) *Capture {
	var lines = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "gesture",
		Subsystem:   "capture",
		Name:        "lines_total",
		Help:        "Sensor lines seen during capture, by outcome.",
		ConstLabels: prometheus.Labels{"gesture": gesture},
	}, []string{"outcome"})
	if reg != nil {
		reg.MustRegister(lines)
	}
	for _, outcome := range []string{OutcomeAccepted, OutcomeRejected, OutcomeMalformed} {
		lines.WithLabelValues(outcome)
	}
	return &Capture{lines: lines}
}

// Observe is safe to call on a nil receiver.
func (c *Capture) Observe(outcome string) {
	if c == nil {
		return
	}
	c.lines.WithLabelValues(outcome).Inc()
}

func (c *Capture) Count(outcome string) prometheus.Counter {
	return c.lines.WithLabelValues(outcome)
}

// Serve exposes the gatherer on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *log.Logger) error {
	var mux = http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	var srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var errc = make(chan error, 1)
	go func() {
		logger.Println("metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		var shutdownCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var err = srv.Shutdown(shutdownCtx)
		if serveErr := <-errc; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return err
	}
}
