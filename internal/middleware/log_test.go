package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogMiddleware(t *testing.T) {
	var buf bytes.Buffer

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	logger := zap.New(core).Sugar()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("{}"))
	rr := httptest.NewRecorder()

	handler := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(rr, req)

	logOutput := buf.String()
	if !strings.Contains(logOutput, `"method":"POST"`) {
		t.Error("log is missing the method")
	}
	if !strings.Contains(logOutput, `"status":201`) {
		t.Error("log is missing the status")
	}
	if !strings.Contains(logOutput, `"path":"/test"`) {
		t.Error("log is missing the path")
	}
}
