package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutation(t *testing.T) {
	m := New()
	m.RecordMutation("skills", "create")
	m.RecordMutation("skills", "create")
	m.RecordMutation("work", "delete")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ContentMutations.WithLabelValues("skills", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContentMutations.WithLabelValues("work", "delete")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMutation("work", "create")
		m.RecordUpload("misc")
	})
}
