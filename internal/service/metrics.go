package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"notepilot/internal/extractor"
)

// Metrics counts extraction and generation work. A nil *Metrics records nothing.
type Metrics struct {
	extractionPages *prometheus.CounterVec
	generations     *prometheus.CounterVec
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		extractionPages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extraction_pages_total",
				Help: "Total number of extracted units by extraction mode.",
			},
			[]string{"mode"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_requests_total",
				Help: "Total number of generative calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	for _, c := range []prometheus.Collector{m.extractionPages, m.generations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observeExtraction counts an image as a single ocr unit.
func (m *Metrics) observeExtraction(res *extractor.Result) {
	if m == nil || res == nil {
		return
	}
	if len(res.Pages) == 0 {
		m.extractionPages.WithLabelValues("ocr").Inc()
		return
	}
	for _, p := range res.Pages {
		mode := "ocr"
		if p.Mode == extractor.ModeDigital {
			mode = "digital"
		}
		m.extractionPages.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) observeGeneration(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.generations.WithLabelValues(operation, outcome).Inc()
}
