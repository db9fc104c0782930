package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/middleware/requestid"
)

type recordingObserver struct {
	mu       sync.Mutex
	statuses []int
}

func (o *recordingObserver) ObserveUpstreamRequest(endpoint, method string, status int, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func TestDoDecodesEnvelopeAndForwardsHeaders(t *testing.T) {
	var gotAuth, gotReqID, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(requestid.Header)
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"status":true,"message":"ok","data":{"name":"x"}}`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(Config{BaseURL: srv.URL + "/", Observer: obs})
	ctx := requestid.WithContext(context.Background(), "req-1")

	var out struct {
		Name string `json:"name"`
	}
	res, err := client.Do(ctx, Request{Path: "/things", Query: url.Values{"page": {"2"}}, Token: "tok"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "x", out.Name)
	assert.Equal(t, "ok", res.Message)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "req-1", gotReqID)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, []int{http.StatusOK}, obs.statuses)
}

func TestDoClassifiesUnauthorized(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"http status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		"body code": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"status":false,"code":401,"message":"jwt expired"}`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/x", Token: "t"}, nil)
			require.Error(t, err)
			assert.True(t, appErrors.IsUnauthorized(err))
		})
	}
}

func TestDoSurfacesUpstreamMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"status":false,"message":"Employee not available"}`)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Method: http.MethodPost, Path: "/assign", Body: map[string]string{"employeeId": "e1"}}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstreamRejected.Code, appErr.Code)
	assert.Equal(t, "Employee not available", appErr.Message)
	assert.False(t, appErr.Retryable)
}

func TestDoUsesFallbackWhenStatusFalseWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":false}`)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/x", Fallback: "Failed to update status"}, nil)
	require.Error(t, err)
	assert.Equal(t, "Failed to update status", appErrors.FromError(err).Message)
}

func TestDoTimeoutIsRetryable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}).Do(context.Background(), Request{Path: "/slow"}, nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsRetryable(err))
	assert.Equal(t, appErrors.ErrUpstreamTimeout.Code, appErrors.FromError(err).Code)
}

func TestDoBareServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{Path: "/x"}, nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsRetryable(err))
}

func TestDoMultipartSendsFieldsAndFiles(t *testing.T) {
	var fields map[string]string
	var fileBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{"patientName": r.FormValue("patientName")}
		f, _, err := r.FormFile("trackingId")
		require.NoError(t, err)
		b, _ := io.ReadAll(f)
		fileBody = string(b)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": true, "message": "uploaded"})
	}))
	defer srv.Close()

	res, err := New(Config{BaseURL: srv.URL}).DoMultipart(context.Background(), MultipartRequest{
		Path:   "/upload",
		Fields: map[string]string{"patientName": "Jane"},
		Files:  []File{{Field: "trackingId", Filename: "t.png", ContentType: "image/png", Content: strings.NewReader("PNGDATA")}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "uploaded", res.Message)
	assert.Equal(t, "Jane", fields["patientName"])
	assert.Equal(t, "PNGDATA", fileBody)
}
