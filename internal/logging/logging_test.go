package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	logger := SetupLogging("debug")
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &fields))
	return fields
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("chatty").Level)
}

func TestGetLogData_Absent(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestLogData_FieldsInOneLine(t *testing.T) {
	logger, buf := newBufferedLogger(t)
	logData := NewLogData(logger)
	ctx := WithLogData(context.Background(), logData)

	GetLogData(ctx).AddData("accountID", "abc")
	stop := GetLogData(ctx).AddTiming("evaluateBadgesMs")
	stop()
	logData.Log().Info("done")

	fields := lastLine(t, buf)
	assert.Equal(t, "abc", fields["accountID"])
	assert.Contains(t, fields, "evaluateBadgesMs")
	assert.Equal(t, "info", fields["loglevel"])
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := newBufferedLogger(t)
	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, r *http.Request, l *LogData) error {
		assert.Same(t, l, GetLogData(r.Context()))
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/status", nil))

	fields := lastLine(t, buf)
	assert.Equal(t, "error", fields["loglevel"])
	assert.Equal(t, "Handler.Status.Error", fields["msg"])
}

type pingOutput struct {
	Body struct {
		Seen bool `json:"seen"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	logger, buf := newBufferedLogger(t)
	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(logger))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		if logData := GetLogData(ctx); logData != nil {
			logData.AddData("pinged", true)
			out.Body.Seen = true
		}
		return out, nil
	})

	resp := api.Get("/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"seen":true`)
	fields := lastLine(t, buf)
	assert.Equal(t, "Handler.ping.Complete", fields["msg"])
	assert.Equal(t, true, fields["pinged"])
	assert.Equal(t, "/ping", fields["path"])
}
