package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceContextKeepsCallerIDs(t *testing.T) {
	trace := NewTraceContext("trace-1", "req-1")
	assert.Equal(t, "trace-1", trace.TraceID)
	assert.Equal(t, "req-1", trace.RequestID)
	assert.Len(t, trace.SpanID, 16)
}

func TestNewTraceContextGeneratesMissingIDs(t *testing.T) {
	trace := NewTraceContext("", "")
	assert.NotEmpty(t, trace.TraceID)
	assert.NotEmpty(t, trace.RequestID)
	assert.NotEqual(t, trace.TraceID, trace.RequestID)
}

func TestTraceRoundTrip(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, GetTrace(ctx))

	trace := NewTraceContext("trace-2", "req-2")
	got := GetTrace(WithTrace(ctx, trace))
	require.NotNil(t, got)
	assert.Equal(t, "trace-2", got.TraceID)
}
