package instrument_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/ghasedak/pkg/instrument"
)

func TestCaptureErrors_HandledClassification(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{})
	require.NoError(t, err)

	var gotErr error
	original := func(ctx context.Context, req instrument.Request, err error) error {
		gotErr = err
		return nil // the hook converts the error into an HTTP response
	}

	hook := instrument.CaptureErrors(original)
	boom := errors.New("template rendering failed")

	ctx := instrument.WithIntegration(context.Background(), integ)
	result := hook(ctx, newFakeRequest(), boom)

	assert.NoError(t, result, "the hook's result must be returned unchanged")
	assert.Same(t, boom, gotErr, "the original hook must receive identical arguments")

	events := client.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Mechanism)
	assert.True(t, events[0].Mechanism.Handled)
	assert.Equal(t, instrument.Identifier, events[0].Mechanism.Type)
	require.NotNil(t, events[0].Exception)
	assert.Equal(t, "template rendering failed", events[0].Exception.Value)
}

func TestCaptureErrors_InactivePassthrough(t *testing.T) {
	client := &recordingCapturer{}

	delegated := false
	hook := instrument.CaptureErrors(func(ctx context.Context, req instrument.Request, err error) error {
		delegated = true
		return err
	})

	boom := errors.New("boom")
	got := hook(context.Background(), newFakeRequest(), boom)

	assert.True(t, delegated)
	assert.Same(t, boom, got)
	assert.Empty(t, client.Events())
}
