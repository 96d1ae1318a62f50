package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfence/internal/logging"
)

func TestFromContextDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger := logging.NewWithWriter(&bytes.Buffer{}, "info")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info"))
	ctx = logging.WithFields(ctx, logging.FieldLanguage, "go")

	logging.FromContext(ctx).Info("merged")

	assert.Contains(t, buf.String(), "merged")
	assert.Contains(t, buf.String(), "language=go")
}
