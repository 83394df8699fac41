package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Release(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	var buf bytes.Buffer

	l := New(&buf)
	l.Debug("hidden")
	l.WithField("shop_id", 3).Info("visible")

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"shop_id":3`)
}

func TestNew_WithLevel(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	assert.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.WarnLevel, New(&bytes.Buffer{}, WithLevel("warn")).GetLevel())
	assert.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}, WithLevel("loud")).GetLevel())
}
