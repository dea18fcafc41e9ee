package cmd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/gibbs-sim/gibbs-sim/sim/engine"
)

// runMetrics holds the gauges of one CLI run in a private registry, written
// in the node-exporter textfile format.
type runMetrics struct {
	registry *prometheus.Registry

	// runsTotal counts finished runs by sampler, model and status
	runsTotal *prometheus.CounterVec
	// points is the size of the returned configuration
	points *prometheus.GaugeVec
	// duration is the wall time of the sampler call
	duration *prometheus.GaugeVec
	// cftpEvents is the final backward horizon of an exact run
	cftpEvents prometheus.Gauge
	// cftpDoublings is the number of horizon doublings of an exact run
	cftpDoublings prometheus.Gauge
	// mhAcceptance is the acceptance rate per move type
	mhAcceptance *prometheus.GaugeVec
}

func newRunMetrics() *runMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &runMetrics{
		registry: reg,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gibbs_sim_runs_total",
			Help: "Finished runs by sampler, model and status",
		}, []string{"sampler", "model", "status"}),
		points: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gibbs_sim_points",
			Help: "Number of points in the returned configuration",
		}, []string{"sampler", "model"}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gibbs_sim_run_duration_seconds",
			Help: "Wall time of the sampler call",
		}, []string{"sampler", "model"}),
		cftpEvents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gibbs_sim_cftp_events",
			Help: "Backward horizon of the last coupling attempt, in dominating events",
		}),
		cftpDoublings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gibbs_sim_cftp_doublings",
			Help: "Horizon doublings performed by the exact sampler",
		}),
		mhAcceptance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gibbs_sim_mh_acceptance_ratio",
			Help: "Fraction of accepted Metropolis-Hastings proposals by move type",
		}, []string{"move"}),
	}
}

// observe records the outcome shared by every sampler.
func (m *runMetrics) observe(out RunOutput, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(out.Sampler, out.Model, out.Status).Inc()
	m.points.WithLabelValues(out.Sampler, out.Model).Set(float64(out.N))
	m.duration.WithLabelValues(out.Sampler, out.Model).Set(elapsed.Seconds())
}

// observeDiagnostics records sampler-specific statistics.
func (m *runMetrics) observeDiagnostics(out RunOutput, d engine.Diagnostics) {
	switch out.Sampler {
	case "perfect":
		m.cftpEvents.Set(float64(d.Events))
		m.cftpDoublings.Set(float64(d.Doublings))
	case "mh":
		m.mhAcceptance.WithLabelValues("birth").Set(d.Moves.Birth.AcceptanceRate())
		m.mhAcceptance.WithLabelValues("death").Set(d.Moves.Death.AcceptanceRate())
		m.mhAcceptance.WithLabelValues("shift").Set(d.Moves.Shift.AcceptanceRate())
	}
}

// write exports the registry to path; a no-op when path is empty.
func (m *runMetrics) write(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return err
	}
	logrus.Infof("Metrics written to %s", path)
	return nil
}
