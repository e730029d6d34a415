// Package metrics exposes invoicing health signals over Prometheus.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics captures invoice issuance counters. Scraped from /metrics.
type Metrics struct {
	invoicesIssued    *prometheus.CounterVec
	creditNotesIssued prometheus.Counter
	invoicesFlagged   prometheus.Counter
	generateFailures  *prometheus.CounterVec
}

func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	invoicesIssued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gstbill_invoices_issued_total",
		Help: "Invoices issued, split by intra or inter state supply.",
	}, []string{"transaction_type"})

	creditNotesIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gstbill_credit_notes_issued_total",
		Help: "Credit notes issued.",
	})

	// Advisory validation never blocks issuance, so flagged invoices are
	// only visible here and on the stored report.
	invoicesFlagged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gstbill_invoices_flagged_total",
		Help: "Invoices issued with advisory validation problems.",
	})

	generateFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gstbill_generate_failures_total",
		Help: "Invoice generation failures by reason.",
	}, []string{"reason"})

	registerer.MustRegister(
		invoicesIssued,
		creditNotesIssued,
		invoicesFlagged,
		generateFailures,
	)

	return &Metrics{
		invoicesIssued:    invoicesIssued,
		creditNotesIssued: creditNotesIssued,
		invoicesFlagged:   invoicesFlagged,
		generateFailures:  generateFailures,
	}
}

func (m *Metrics) RecordInvoiceIssued(transactionType string) {
	if m == nil {
		return
	}
	m.invoicesIssued.WithLabelValues(strings.ToLower(transactionType)).Inc()
}

func (m *Metrics) RecordCreditNoteIssued() {
	if m == nil {
		return
	}
	m.creditNotesIssued.Inc()
}

func (m *Metrics) RecordInvoiceFlagged() {
	if m == nil {
		return
	}
	m.invoicesFlagged.Inc()
}

func (m *Metrics) RecordGenerateFailure(reason string) {
	if m == nil {
		return
	}
	m.generateFailures.WithLabelValues(reason).Inc()
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
