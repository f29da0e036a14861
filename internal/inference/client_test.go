package inference

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medipredict/internal/domain"
	"medipredict/internal/schema"
)

func imageInput(s *schema.Schema) *schema.Input {
	in := schema.NewInput(s)
	in.SetImage(&schema.ImageAsset{
		Filename:    "scan.png",
		ContentType: "image/png",
		Data:        []byte("not-a-real-png"),
	})
	in.Metadata = domain.PatientMetadata{
		"patientName":  "Jane Doe",
		"age":          "71",
		"gender":       "female",
		"hospitalName": "General",
	}
	return in
}

func TestSubmit_MissingCredentialFailsFast(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), filledInput(schema.Heart), "")

	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "no call may be issued without a credential")
}

func TestSubmit_TabularRequestShape(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/predict-heart", r.URL.Path)
		writeResp(w, map[string]any{"result": "Negative", "confidence": 88.5})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	res, err := c.Submit(context.Background(), filledInput(schema.Heart), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, domain.PredictionResult{Label: "Negative", Confidence: 88.5}, res)

	var body struct {
		InputData      map[string]string `json:"input_data"`
		AdditionalInfo map[string]string `json:"additional_info"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Len(t, body.InputData, 13)
}

func TestSubmit_ImageRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-brain-mri", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "scan.png", header.Filename)
		assert.Equal(t, []byte("not-a-real-png"), data)

		var meta map[string]string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("additional_info")), &meta))
		assert.Equal(t, "Jane Doe", meta["patientName"])

		writeResp(w, map[string]any{"tumor_type": "Glioma", "confidence": 97.1})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	res, err := c.Submit(context.Background(), imageInput(schema.BrainTumor), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, domain.PredictionResult{Label: "Glioma", Confidence: 97.1}, res)
}

// Any of the three upstream label fields must normalize to the same
// common shape.
func TestSubmit_NormalizesAllResponseShapes(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		in   func() *schema.Input
	}{
		{"alzheimer", map[string]any{"prediction": "Mild Dementia", "confidence": 92.0}, func() *schema.Input { return imageInput(schema.Alzheimer) }},
		{"brain_tumor", map[string]any{"tumor_type": "Mild Dementia", "confidence": 92.0}, func() *schema.Input { return imageInput(schema.BrainTumor) }},
		{"tabular", map[string]any{"result": "Mild Dementia", "confidence": 92.0}, func() *schema.Input { return filledInput(schema.Kidney) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeResp(w, tc.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
			res, err := c.Submit(context.Background(), tc.in(), "tok")
			require.NoError(t, err)
			assert.Equal(t, domain.PredictionResult{Label: "Mild Dementia", Confidence: 92.0}, res)
		})
	}
}

func TestSubmit_ClassifiesAuthFailure(t *testing.T) {
	for _, status := range []int{401, 403} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			writeBody(w, map[string]string{"detail": "Could not validate credentials"})
		}))

		c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
		_, err := c.Submit(context.Background(), filledInput(schema.Heart), "expired")
		srv.Close()

		require.Error(t, err)
		assert.Equal(t, KindAuth, KindOf(err))
		assert.Contains(t, err.Error(), "Could not validate credentials")
	}
}

func TestSubmit_PreservesServerDetailVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeBody(w, map[string]string{"detail": "This MRI scan has already been uploaded"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), imageInput(schema.Alzheimer), "tok")

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	var ie *Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "This MRI scan has already been uploaded", ie.Detail)
	assert.Equal(t, http.StatusBadRequest, ie.StatusCode)
}

func TestSubmit_NetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), filledInput(schema.Heart), "tok")

	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestSubmit_ServerErrorWithoutDetailIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), filledInput(schema.Heart), "tok")

	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestSubmit_ResponseWithoutLabelIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeResp(w, map[string]any{"confidence": 50.0})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), filledInput(schema.Heart), "tok")

	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func writeResp(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeBody(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
