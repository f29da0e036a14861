package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"medipredict/internal/domain"
	"medipredict/internal/schema"
)

// Client submits filled-in inputs to the remote inference service and
// normalizes its per-disease responses into domain.PredictionResult.
//
// The credential is passed in per call; the client never reaches into any
// ambient token store.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates an inference client. timeout bounds every request:
// the upstream flow had none and a hung model call would otherwise park a
// submission forever. No retries: a failed prediction always requires a
// new user-initiated submission.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// wireResponse covers the three upstream response shapes. Exactly one of
// the label members is set per disease.
type wireResponse struct {
	Prediction string  `json:"prediction"` // alzheimer
	TumorType  string  `json:"tumor_type"` // brain tumor
	Result     string  `json:"result"`     // heart, kidney
	Confidence float64 `json:"confidence"`
}

type wireError struct {
	Detail string `json:"detail"`
}

// Submit sends one prediction request and returns the normalized result.
// It fails fast with an auth error when credential is empty; no call is
// issued. All failures come back as *Error with a Kind.
func (c *Client) Submit(ctx context.Context, in *schema.Input, credential string) (domain.PredictionResult, error) {
	var zero domain.PredictionResult
	if credential == "" {
		return zero, &Error{Kind: KindAuth, Detail: "not authenticated"}
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+credential)

	if in.Schema.ImageBased() {
		meta, err := EncodeMetadata(in)
		if err != nil {
			return zero, &Error{Kind: KindTransport, Detail: err.Error(), cause: err}
		}
		req.SetFileReader("file", in.Image.Filename, bytes.NewReader(in.Image.Data)).
			SetMultipartFormData(map[string]string{"additional_info": string(meta)})
	} else {
		body, err := EncodeTabularPayload(in)
		if err != nil {
			return zero, &Error{Kind: KindTransport, Detail: err.Error(), cause: err}
		}
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	c.logger.Info("submitting prediction request",
		zap.String("disease", string(in.Schema.Disease)),
		zap.String("endpoint", in.Schema.Endpoint),
	)

	resp, err := req.Post(in.Schema.Endpoint)
	if err != nil {
		c.logger.Error("inference call failed", zap.Error(err))
		return zero, &Error{Kind: KindTransport, Detail: "prediction service unreachable", cause: err}
	}
	if !resp.IsSuccess() {
		return zero, c.classifyFailure(resp)
	}

	var wire wireResponse
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return zero, &Error{Kind: KindTransport, Detail: "unexpected response from prediction service", cause: err}
	}
	result, ok := normalize(wire)
	if !ok {
		return zero, &Error{Kind: KindTransport, Detail: "response carries no prediction label", StatusCode: resp.StatusCode()}
	}

	c.logger.Info("prediction received",
		zap.String("disease", string(in.Schema.Disease)),
		zap.String("label", result.Label),
		zap.Float64("confidence", result.Confidence),
	)
	return result, nil
}

// classifyFailure maps a non-2xx response onto the error taxonomy:
// 401/403 are auth, other 4xx with a detail message are service-side
// validation, anything else is transport. The server's detail string is
// kept verbatim.
func (c *Client) classifyFailure(resp *resty.Response) *Error {
	status := resp.StatusCode()

	var we wireError
	_ = json.Unmarshal(resp.Body(), &we)

	c.logger.Warn("inference service rejected request",
		zap.Int("status_code", status),
		zap.String("detail", we.Detail),
	)

	switch {
	case status == 401 || status == 403:
		detail := we.Detail
		if detail == "" {
			detail = "not authorized"
		}
		return &Error{Kind: KindAuth, Detail: detail, StatusCode: status}
	case status >= 400 && status < 500 && we.Detail != "":
		return &Error{Kind: KindValidation, Detail: we.Detail, StatusCode: status}
	default:
		return &Error{Kind: KindTransport, Detail: we.Detail, StatusCode: status}
	}
}

// normalize picks whichever label member the service used.
func normalize(wire wireResponse) (domain.PredictionResult, bool) {
	label := wire.Prediction
	if label == "" {
		label = wire.TumorType
	}
	if label == "" {
		label = wire.Result
	}
	if label == "" {
		return domain.PredictionResult{}, false
	}
	return domain.PredictionResult{Label: label, Confidence: wire.Confidence}, true
}
