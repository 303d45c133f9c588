package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/audiocodec"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"go.uber.org/mock/gomock"
)

const captionPkg = "com.example.captions"

type audioEnv struct {
	router   *gin.Engine
	registry *session.Registry
	keys     *MockKeyVerifier
	sess     *session.UserSession
}

func newAudioEnv(t *testing.T) *audioEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &audioEnv{
		registry: newRegistry(),
		keys:     NewMockKeyVerifier(ctrl),
	}
	env.sess, _ = env.registry.Attach("u1", &stubConn{})

	h := NewAudioHandler(env.registry, env.keys)
	env.router = gin.New()
	env.router.GET("/api/sessions/:sessionId/audio", h.HandleSessionAudio)
	return env
}

func (env *audioEnv) runApp(packageName string) {
	env.sess.ReserveApp(&model.App{PackageName: packageName, AppType: model.AppTypeStandard}, env.sess.CreatedAt())
	env.sess.ConfirmApp(packageName, &stubConn{})
}

func (env *audioEnv) appendFrames(t *testing.T, codecName string, n int) {
	t.Helper()
	codec, err := audiocodec.New(codecName)
	if err != nil {
		t.Fatalf("audiocodec.New() error = %v", err)
	}
	pcm := make([]int16, audiocodec.SamplesPerFrame)
	for i := range pcm {
		pcm[i] = int16(i * 64)
	}
	data, err := codec.Encode(pcm)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i := 0; i < n; i++ {
		env.sess.Audio().Append(session.AudioFrame{
			Seq:      uint64(i),
			Duration: audiocodec.FrameDurationMs * time.Millisecond,
			Codec:    codecName,
			Data:     data,
		})
	}
}

func (env *audioEnv) get(sessionID, packageName, apiKey string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/api/sessions/"+sessionID+"/audio", nil)
	if packageName != "" {
		req.Header.Set(headerPackageName, packageName)
	}
	req.Header.Set(headerAPIKey, apiKey)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestHandleSessionAudio_ReturnsPCM(t *testing.T) {
	env := newAudioEnv(t)
	env.runApp(captionPkg)
	env.appendFrames(t, audiocodec.NamePCMU, 3)
	env.appendFrames(t, audiocodec.NamePCM16, 2)
	env.keys.EXPECT().VerifyAPIKey(gomock.Any(), captionPkg, "key").Return(nil)

	w := env.get(env.sess.ID(), captionPkg, "key")
	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if want := 5 * audiocodec.BytesPerFrame; w.Body.Len() != want {
		t.Errorf("body length = %d, want %d", w.Body.Len(), want)
	}
	if got := w.Header().Get("X-Audio-Sample-Rate"); got != "16000" {
		t.Errorf("X-Audio-Sample-Rate = %q, want 16000", got)
	}
}

func TestHandleSessionAudio_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		sessionID  func(env *audioEnv) string
		pkg        string
		keyErr     error
		wantVerify bool
		running    bool
		wantStatus int
	}{
		{
			name:       "missing package header",
			sessionID:  func(env *audioEnv) string { return env.sess.ID() },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key",
			sessionID:  func(env *audioEnv) string { return env.sess.ID() },
			pkg:        captionPkg,
			keyErr:     errors.New("invalid API key"),
			wantVerify: true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown session",
			sessionID:  func(*audioEnv) string { return "nope" },
			pkg:        captionPkg,
			wantVerify: true,
			running:    true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "app not running",
			sessionID:  func(env *audioEnv) string { return env.sess.ID() },
			pkg:        captionPkg,
			wantVerify: true,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAudioEnv(t)
			if tt.running {
				env.runApp(captionPkg)
			}
			if tt.wantVerify {
				env.keys.EXPECT().VerifyAPIKey(gomock.Any(), tt.pkg, "key").Return(tt.keyErr)
			}

			w := env.get(tt.sessionID(env), tt.pkg, "key")
			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleSessionAudio_PendingAppRejected(t *testing.T) {
	env := newAudioEnv(t)
	env.sess.ReserveApp(&model.App{PackageName: captionPkg, AppType: model.AppTypeStandard}, env.sess.CreatedAt())
	env.keys.EXPECT().VerifyAPIKey(gomock.Any(), captionPkg, "key").Return(nil)

	if w := env.get(env.sess.ID(), captionPkg, "key"); w.Code != http.StatusForbidden {
		t.Errorf("Status code = %d, want 403", w.Code)
	}
}

func TestDecodeFrames_SkipsUnknownCodec(t *testing.T) {
	frames := []session.AudioFrame{
		{Codec: audiocodec.NamePCM16, Data: make([]byte, audiocodec.BytesPerFrame)},
		{Codec: "lc3", Data: []byte{1, 2, 3}},
		{Codec: "lc3", Data: []byte{4, 5, 6}},
		{Codec: audiocodec.NamePCM16, Data: make([]byte, audiocodec.BytesPerFrame)},
	}
	pcm, skipped := decodeFrames(frames)
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if len(pcm) != 2*audiocodec.SamplesPerFrame {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), 2*audiocodec.SamplesPerFrame)
	}
}
