package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newMetrics(registry)

	m.RecordInvoiceIssued("INTRA_STATE")
	m.RecordInvoiceIssued("INTRA_STATE")
	m.RecordInvoiceIssued("INTER_STATE")
	m.RecordCreditNoteIssued()
	m.RecordInvoiceFlagged()
	m.RecordGenerateFailure("already_invoiced")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.invoicesIssued.WithLabelValues("intra_state")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.invoicesIssued.WithLabelValues("inter_state")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.creditNotesIssued))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.invoicesFlagged))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.generateFailures.WithLabelValues("already_invoiced")))
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordInvoiceIssued("INTRA_STATE")
	m.RecordCreditNoteIssued()
	m.RecordInvoiceFlagged()
	m.RecordGenerateFailure("x")
}
