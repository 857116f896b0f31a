package input

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/edgeui/internal/model"
)

func TestLineReader_Run(t *testing.T) {
	in := strings.Join([]string{
		`{"type": "warning", "message": "battery below 10%"}`,
		``,
		`not json`,
		`{"type": "fatal", "message": "unknown type"}`,
		`{"message": "defaults to info"}`,
		`{"type": "error", "message": ""}`,
		`{"type": "SUCCESS", "message": "charged"}`,
	}, "\n")

	var got []model.Notification
	r := NewLineReader(strings.NewReader(in), nil)
	count, err := r.Run(context.Background(), func(n model.Notification) {
		got = append(got, n)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.Len(t, got, 3)
	assert.Equal(t, model.TypeWarning, got[0].Type)
	assert.Equal(t, "battery below 10%", got[0].Message)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, model.TypeInfo, got[1].Type)
	assert.Equal(t, model.TypeSuccess, got[2].Type)
}

func TestLineReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewLineReader(strings.NewReader(`{"message": "x"}`), nil)
	count, err := r.Run(ctx, func(model.Notification) {})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, count)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestLineReader_ReadError(t *testing.T) {
	r := NewLineReader(failingReader{}, nil)
	_, err := r.Run(context.Background(), func(model.Notification) {})

	var inErr *Error
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "failed to read input: pipe closed", err.Error())
}
