package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New(nil)

	c.ObserveAction("signin", "success")
	c.ObserveAction("signin", "success")
	c.ObserveAction("tasks", "error")
	c.ObserveSignIn(1)
	c.ObserveSignIn(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.actions.WithLabelValues("signin", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("tasks", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.signins))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.signinCount))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(nil), New(nil)
	a.ObserveSignIn(5)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.signins))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.signins))
}

func TestWriteText(t *testing.T) {
	c := New(nil)
	c.ObserveSignIn(3)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), "signinwidget_signins_total 1")
	assert.Contains(t, buf.String(), "signinwidget_signin_count 3")
}
