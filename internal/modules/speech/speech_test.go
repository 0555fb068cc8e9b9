package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testService(synth synthFunc) *Service {
	return &Service{
		model:  "gpt-4o-mini-tts",
		logger: zap.NewNop(),
		synth:  synth,
	}
}

func TestSynthesizeUnknownPersona(t *testing.T) {
	svc := testService(func(ctx context.Context, text, voice string) ([]byte, error) {
		t.Fatal("synth should not be called")
		return nil, nil
	})

	_, err := svc.Synthesize(context.Background(), "hello", "ghost")
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestSynthesizeUsesPersonaVoice(t *testing.T) {
	var gotVoice string
	svc := testService(func(ctx context.Context, text, voice string) ([]byte, error) {
		gotVoice = voice
		return []byte("mp3-bytes"), nil
	})

	audio, err := svc.Synthesize(context.Background(), "hello", "ai_architect")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "onyx", gotVoice)
}

func TestSynthesizeWrapsUpstreamError(t *testing.T) {
	svc := testService(func(ctx context.Context, text, voice string) ([]byte, error) {
		return nil, errors.New("quota exceeded")
	})

	_, err := svc.Synthesize(context.Background(), "hello", "ai_investor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCacheKeyDistinguishesPersonaAndText(t *testing.T) {
	a := cacheKey("ai_architect", "hello")
	b := cacheKey("ai_investor", "hello")
	c := cacheKey("ai_architect", "goodbye")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, cacheKey("ai_architect", "hello"))
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func postTTS(t *testing.T, r *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/tts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTTSHandlerValidation(t *testing.T) {
	svc := testService(func(ctx context.Context, text, voice string) ([]byte, error) {
		t.Fatal("synth should not be called")
		return nil, nil
	})
	r := newTestRouter(svc)

	w := postTTS(t, r, gin.H{"text": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postTTS(t, r, gin.H{"text": "hello", "persona_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTTSHandlerReturnsAudio(t *testing.T) {
	svc := testService(func(ctx context.Context, text, voice string) ([]byte, error) {
		return []byte("mp3-bytes"), nil
	})
	r := newTestRouter(svc)

	w := postTTS(t, r, gin.H{"text": "hello", "persona_id": "mlops_engineer"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "mp3-bytes", w.Body.String())
}
