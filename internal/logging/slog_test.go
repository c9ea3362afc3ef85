package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SlogTextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendSlog, "warn", false, &buf)
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "hidden-debug")
	log.Info(ctx, "hidden-info")
	log.Warn(ctx, "category in use", "id", "c1", "bookmarks", 2)
	log.Error(ctx, "catalog failed", "status", 502)

	out := buf.String()
	assert.NotContains(t, out, "hidden-debug")
	assert.NotContains(t, out, "hidden-info")
	assert.Contains(t, out, `level=WARN msg="category in use" id=c1 bookmarks=2`)
	assert.Contains(t, out, `level=ERROR msg="catalog failed" status=502`)
}

func TestNew_SlogJSONWithAttributes(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "debug", true, &buf)
	require.NoError(t, err)

	log.With("component", "legacy").Debug(context.Background(), "phase done", "created", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "phase done", line["msg"])
	assert.Equal(t, "legacy", line["component"])
	assert.EqualValues(t, 3, line["created"])
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("zerolog", "info", false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zerolog")
}

func TestSlogLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendSlog, "verbose", false, &buf)
	require.NoError(t, err)

	log.Debug(context.Background(), "dropped")
	log.Info(context.Background(), "kept")

	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() {
		log.With("k", "v").Error(context.TODO(), "nothing")
	})
}
