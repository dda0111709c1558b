package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/modules/model"
)

type fakeBackend struct {
	reply string
	err   error
	calls int

	// invoked between the outbound call and the transcript append, to
	// simulate work racing with a teardown
	midFlight func()
}

func (f *fakeBackend) Send(ctx context.Context, text string) (string, error) {
	f.calls++
	if f.midFlight != nil {
		f.midFlight()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestChat(backend chatBackend) *chatService {
	s := NewChatService(ChatConfig{APIKey: "test-key"}, zap.NewNop()).(*chatService)
	s.dial = func(ctx context.Context) (chatBackend, error) { return backend, nil }
	return s
}

func TestChat_NoCredentialReturnsFallback(t *testing.T) {
	ctx := context.Background()
	s := NewChatService(ChatConfig{}, zap.NewNop())

	reply, err := s.Send(ctx, "hello")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, UnavailableReply, reply.Text)
	assert.Equal(t, model.ChatRoleModel, reply.Role)

	transcript := s.Transcript(ctx)
	require.Len(t, transcript, 2)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, "hello", transcript[0].Text)
}

func TestChat_SuccessAppendsBothTurns(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{reply: "All capsules look healthy."}
	s := newTestChat(backend)

	reply, err := s.Send(ctx, "how are my capsules?")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, "All capsules look healthy.", reply.Text)

	transcript := s.Transcript(ctx)
	require.Len(t, transcript, 2)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, model.ChatRoleModel, transcript[1].Role)
}

func TestChat_BackendSessionIsReused(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{reply: "ok"}
	s := newTestChat(backend)

	dials := 0
	inner := s.dial
	s.dial = func(ctx context.Context) (chatBackend, error) {
		dials++
		return inner(ctx)
	}

	_, err := s.Send(ctx, "one")
	require.NoError(t, err)
	_, err = s.Send(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, 1, dials)
	assert.Equal(t, 2, backend.calls)
}

func TestChat_BackendErrorDropsReplySilently(t *testing.T) {
	ctx := context.Background()
	s := newTestChat(&fakeBackend{err: errors.New("boom")})

	reply, err := s.Send(ctx, "hello")
	require.NoError(t, err)
	assert.Nil(t, reply)

	// the user turn is still there, with no partner message
	transcript := s.Transcript(ctx)
	require.Len(t, transcript, 1)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
}

func TestChat_SendAfterCloseFails(t *testing.T) {
	ctx := context.Background()
	s := newTestChat(&fakeBackend{reply: "ok"})

	s.Close()
	_, err := s.Send(ctx, "hello")
	assert.ErrorIs(t, err, ErrChatClosed)
	assert.Empty(t, s.Transcript(ctx))
}

func TestChat_LateReplyAfterCloseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{reply: "too late"}
	s := newTestChat(backend)
	backend.midFlight = s.Close

	reply, err := s.Send(ctx, "hello")
	require.NoError(t, err)
	assert.Nil(t, reply)

	// only the optimistic user turn made it in before the teardown
	transcript := s.Transcript(ctx)
	require.Len(t, transcript, 1)
	assert.Equal(t, model.ChatRoleUser, transcript[0].Role)
}

func TestChat_TranscriptIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestChat(&fakeBackend{reply: "ok"})

	_, err := s.Send(ctx, "first")
	require.NoError(t, err)
	snapshot := s.Transcript(ctx)

	_, err = s.Send(ctx, "second")
	require.NoError(t, err)

	assert.Len(t, snapshot, 2)
	assert.Len(t, s.Transcript(ctx), 4)
}
