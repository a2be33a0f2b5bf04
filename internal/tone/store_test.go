package tone

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/testutil"
)

type recorder struct {
	messages []string
}

func (r *recorder) Announce(content string) {
	r.messages = append(r.messages, content)
}

type stubBackend struct {
	tone    internal.Tone
	getErr  error
	setErr  error
	setCall []internal.Tone
}

func (s *stubBackend) GetTone(context.Context, string) (internal.Tone, error) {
	return s.tone, s.getErr
}

func (s *stubBackend) SetTone(_ context.Context, _ string, t internal.Tone) error {
	s.setCall = append(s.setCall, t)
	return s.setErr
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		backend *stubBackend
		want    internal.Tone
	}{
		{name: "stored tone", backend: &stubBackend{tone: internal.ToneHumorous}, want: internal.ToneHumorous},
		{name: "failure keeps default", backend: &stubBackend{getErr: errors.New("offline")}, want: internal.DefaultTone},
		{name: "unknown tone keeps default", backend: &stubBackend{tone: "grumpy"}, want: internal.DefaultTone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.backend, "u1", nil)
			assert.Equal(t, tt.want, s.Load(context.Background()))
			assert.Equal(t, tt.want, s.Current())
		})
	}
}

func TestChange_SameToneIsNoop(t *testing.T) {
	b := &stubBackend{}
	r := &recorder{}
	s := NewStore(b, "u1", r)

	changed, err := s.Change(context.Background(), internal.DefaultTone)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, b.setCall, "no network call")
	assert.Empty(t, r.messages, "no new message")
}

func TestChange_Success(t *testing.T) {
	b := &stubBackend{}
	r := &recorder{}
	s := NewStore(b, "u1", r)

	changed, err := s.Change(context.Background(), " Casual ")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, internal.ToneCasual, s.Current())
	assert.Equal(t, []internal.Tone{internal.ToneCasual}, b.setCall)
	assert.Equal(t, []string{`Tone updated to "casual". I'll use that style going forward.`}, r.messages)
}

func TestChange_Failure(t *testing.T) {
	b := &stubBackend{setErr: &api.StatusError{StatusCode: 500, Message: "HTTP error! status: 500"}}
	r := &recorder{}
	s := NewStore(b, "u1", r)

	changed, err := s.Change(context.Background(), internal.ToneSocratic)
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, internal.DefaultTone, s.Current(), "local state unchanged")
	assert.Empty(t, r.messages)
}

func TestChange_UnknownTone(t *testing.T) {
	b := &stubBackend{}
	s := NewStore(b, "u1", nil)

	_, err := s.Change(context.Background(), "sarcastic")
	assert.ErrorIs(t, err, ErrUnknownTone)
	assert.Empty(t, b.setCall)
}

func TestStore_WithClient(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle(http.MethodGet, "/tone/u1", http.StatusOK, `{"tone":"concise"}`)
	fb.Handle(http.MethodPost, "/tone/u1", http.StatusOK, `{"ok":true}`)

	r := &recorder{}
	s := NewStore(api.New(fb.URL()), "u1", r)
	s.Load(context.Background())
	assert.Equal(t, internal.ToneConcise, s.Current())

	_, err := s.Change(context.Background(), internal.ToneConcise)
	require.NoError(t, err)
	assert.Len(t, fb.RequestsTo("/tone/u1"), 1, "only the initial load hit the backend")

	r2 := &recorder{}
	s.SetAnnouncer(r2)
	changed, err := s.Change(context.Background(), internal.ToneStoryteller)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, r2.messages, 1)
	assert.Empty(t, r.messages)
}
