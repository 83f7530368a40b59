package esis

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(level.NewFilter(NewLogger(&buf, "test"), level.AllowDebug()))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := Compose(newTestInstrument(150))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg="composed system"`)
	assert.Contains(t, out, "surfaces=6")

	buf.Reset()
	SetLogger(nil)
	_, err = Compose(newTestInstrument(150))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
