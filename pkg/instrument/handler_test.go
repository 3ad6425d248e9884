package instrument_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/ghasedak/pkg/event"
	"github.com/Alijeyrad/ghasedak/pkg/instrument"
	"github.com/Alijeyrad/ghasedak/pkg/scope"
)

func TestWrap_InactiveForwardsWithoutExtraction(t *testing.T) {
	integ, err := instrument.New(nil, instrument.Options{})
	require.NoError(t, err)

	req := newFakeRequest()
	req.stream = []byte("never read")

	forwarded := false
	h := instrument.Wrap(integ, func(ctx context.Context, req instrument.Request) error {
		forwarded = true
		_, ok := scope.FromContext(ctx)
		assert.False(t, ok, "no scope without an active integration")
		return nil
	})

	require.NoError(t, h(context.Background(), req))
	assert.True(t, forwarded, "the request must always be forwarded")
	assert.Zero(t, req.bodyReads, "the extractor must never run when inactive")
}

func TestWrap_NonHTTPBypass(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{})
	require.NoError(t, err)

	req := newFakeRequest()
	req.kind = "websocket"
	req.stream = []byte("never read")

	forwarded := false
	h := instrument.Wrap(integ, func(ctx context.Context, req instrument.Request) error {
		forwarded = true
		_, ok := instrument.FromContext(ctx)
		assert.False(t, ok)
		return nil
	})

	require.NoError(t, h(context.Background(), req))
	assert.True(t, forwarded)
	assert.Zero(t, req.bodyReads)
}

func TestWrap_EnrichesCapturedEvents(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{TransactionStyle: instrument.StyleEndpoint})
	require.NoError(t, err)

	req := newFakeRequest()
	req.method = "POST"
	req.path = "/upload/something"
	req.headers = map[string]string{"Content-Type": "application/json"}
	req.stream = []byte(`{"login":"my_login"}`)
	req.router = fakeRouteTable{
		&fakeRoute{outcome: instrument.MatchFull, name: "upload", path: "/upload/:name"},
	}

	h := instrument.Wrap(integ, func(ctx context.Context, req instrument.Request) error {
		in, ok := instrument.FromContext(ctx)
		require.True(t, ok)
		in.CaptureException(ctx, errors.New("upload failed"), true)
		return nil
	})
	require.NoError(t, h(context.Background(), req))

	events := client.Events()
	require.Len(t, events, 1)
	ev := events[0]

	assert.Equal(t, "upload", ev.Transaction)
	require.NotNil(t, ev.Request)
	data, ok := ev.Request.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "my_login", data["login"])
}

func TestWrap_TransactionResolvedAtEmissionTime(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{TransactionStyle: instrument.StyleURL})
	require.NoError(t, err)

	req := newFakeRequest()

	h := instrument.Wrap(integ, func(ctx context.Context, req instrument.Request) error {
		// the router is attached mid-dispatch, after extraction ran
		req.(*fakeRequest).router = fakeRouteTable{
			&fakeRoute{outcome: instrument.MatchFull, name: "late", path: "/late/:id"},
		}
		in, _ := instrument.FromContext(ctx)
		in.CaptureException(ctx, errors.New("boom"), true)
		return nil
	})
	require.NoError(t, h(context.Background(), req))

	events := client.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "/late/:id", events[0].Transaction)
}

func TestWrap_ErrorPropagatesUnchanged(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{})
	require.NoError(t, err)

	boom := errors.New("boom")
	h := instrument.Wrap(integ, func(context.Context, instrument.Request) error {
		return boom
	})

	assert.Same(t, boom, h(context.Background(), newFakeRequest()))
}

func TestWrap_ScopeUserReachesEvents(t *testing.T) {
	client := &recordingCapturer{}
	integ, err := instrument.New(client, instrument.Options{})
	require.NoError(t, err)

	req := newFakeRequest()
	auth := instrument.BridgeAuth(func(ctx context.Context, req instrument.Request, next instrument.Handler) error {
		req.(*fakeRequest).principal = emailOnlyPrincipal{email: "julian@example.com"}
		return next(ctx, req)
	})

	// the bridge copies identity after its delegation completes, so only
	// events emitted afterwards carry the user
	h := instrument.Wrap(integ, func(ctx context.Context, req instrument.Request) error {
		if err := auth(ctx, req, noopHandler); err != nil {
			return err
		}
		in, _ := instrument.FromContext(ctx)
		in.CaptureException(ctx, errors.New("boom"), true)
		return nil
	})
	require.NoError(t, h(context.Background(), req))

	events := client.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].User)
	assert.Equal(t, event.User{Email: "julian@example.com"}, *events[0].User)
}
