package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"medipredict/internal/domain"
	"medipredict/internal/inference"
	"medipredict/internal/interpret"
	"medipredict/internal/repository"
	"medipredict/internal/schema"
	"medipredict/internal/store"
	"medipredict/internal/submit"
)

const maxImageBytes = 32 << 20

// PredictHandler serves the four prediction workflows. Each request is
// one submission cycle: gate, validate, forward to the inference
// service, interpret, persist the record.
type PredictHandler struct {
	client      submit.InferenceClient
	sessions    *store.SessionStore
	predictions repository.PredictionsRepository
	kv          store.KV // duplicate-upload tracking
	logger      *zap.Logger
}

func NewPredictHandler(
	client submit.InferenceClient,
	sessions *store.SessionStore,
	predictions repository.PredictionsRepository,
	kv store.KV,
	logger *zap.Logger,
) *PredictHandler {
	return &PredictHandler{
		client:      client,
		sessions:    sessions,
		predictions: predictions,
		kv:          kv,
		logger:      logger,
	}
}

func (h *PredictHandler) PredictHeart(w http.ResponseWriter, r *http.Request) {
	h.predictTabular(w, r, schema.Heart)
}

func (h *PredictHandler) PredictKidney(w http.ResponseWriter, r *http.Request) {
	h.predictTabular(w, r, schema.Kidney)
}

func (h *PredictHandler) PredictAlzheimer(w http.ResponseWriter, r *http.Request) {
	h.predictImage(w, r, schema.Alzheimer)
}

func (h *PredictHandler) PredictBrainTumor(w http.ResponseWriter, r *http.Request) {
	h.predictImage(w, r, schema.BrainTumor)
}

// tabularRequest is the JSON predict body. input_data values may arrive
// as strings or numbers; both are normalized to the entered-text form the
// schema validates.
type tabularRequest struct {
	InputData      map[string]any `json:"input_data"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

func (h *PredictHandler) predictTabular(w http.ResponseWriter, r *http.Request, s *schema.Schema) {
	token, _, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var req tabularRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	in := schema.NewInput(s)
	for k, v := range req.InputData {
		in.Values[k] = stringify(v)
	}
	for k, v := range req.AdditionalInfo {
		in.Metadata[k] = stringify(v)
	}

	h.run(w, r, in, token)
}

func (h *PredictHandler) predictImage(w http.ResponseWriter, r *http.Request, s *schema.Schema) {
	token, sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeDetail(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	// Reject re-uploads of the same scan (matches the upstream service's
	// content-hash check).
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	dupKey := fmt.Sprintf("mri:%s:%s", sess.UserID, hash)
	if _, err := h.kv.Get(r.Context(), dupKey); err == nil {
		writeDetail(w, http.StatusBadRequest, "This MRI scan has already been uploaded")
		return
	}

	in := schema.NewInput(s)
	in.SetImage(&schema.ImageAsset{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if raw := r.FormValue("additional_info"); raw != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			writeDetail(w, http.StatusBadRequest, "additional_info is not valid JSON")
			return
		}
		for k, v := range meta {
			in.Metadata[k] = stringify(v)
		}
	}

	if h.run(w, r, in, token) {
		_ = h.kv.Set(r.Context(), dupKey, header.Filename, 0)
	}
}

// run drives one submission cycle and writes the response. Returns true
// on success.
func (h *PredictHandler) run(w http.ResponseWriter, r *http.Request, in *schema.Input, token string) bool {
	ctx := r.Context()

	submitter := submit.NewSubmitter(h.client, submit.StaticCredential(token), h.logger)
	display, err := submitter.Submit(ctx, in)
	if err != nil {
		h.writeSubmitError(w, err)
		return false
	}

	id := h.persist(r, in, display)

	writeJSON(w, http.StatusOK, successBody(in.Schema.Disease, display, id))
	return true
}

// persist records the finished prediction. A storage failure is logged
// but does not fail the request; the user already has the result.
func (h *PredictHandler) persist(r *http.Request, in *schema.Input, display domain.DisplayResult) string {
	ctx := r.Context()

	sess, err := h.sessions.Get(ctx, bearerToken(r))
	if err != nil {
		return ""
	}

	rec := domain.Prediction{
		DiseaseType:      in.Schema.Disease,
		PredictionResult: domain.ResultEnvelope{Result: display.Label},
	}
	confidence := display.Confidence
	rec.ConfidenceScore = &confidence

	if in.Schema.ImageBased() {
		rec.ImageURL = "uploads/" + in.Image.Filename
		rec.InputData, _ = json.Marshal(map[string]string{"filename": in.Image.Filename})
	} else {
		rec.InputData, _ = json.Marshal(in.Values)
	}

	id, err := h.predictions.Insert(ctx, sess.UserID, rec)
	if err != nil {
		h.logger.Error("failed to persist prediction",
			zap.String("disease", string(in.Schema.Disease)),
			zap.Error(err),
		)
		return ""
	}
	return id
}

// successBody mirrors the per-disease upstream response shapes
// ({prediction|tumor_type|result} + confidence).
func successBody(disease domain.DiseaseType, display domain.DisplayResult, id string) map[string]any {
	body := map[string]any{"confidence": display.Confidence}
	switch disease {
	case domain.DiseaseAlzheimer:
		body["prediction"] = display.Label
	case domain.DiseaseBrainTumor:
		body["tumor_type"] = display.Label
	default:
		body["result"] = display.Label
	}
	if id != "" {
		body["id"] = id
	}
	return body
}

// requireSession rejects requests without a resolvable bearer session.
func (h *PredictHandler) requireSession(w http.ResponseWriter, r *http.Request) (string, store.Session, bool) {
	token := bearerToken(r)
	if token == "" {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return "", store.Session{}, false
	}
	sess, err := h.sessions.Get(r.Context(), token)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired session")
		return "", store.Session{}, false
	}
	return token, sess, true
}

// writeSubmitError maps the submission error taxonomy onto HTTP statuses,
// preserving server-supplied detail messages verbatim.
func (h *PredictHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		writeDetail(w, http.StatusBadRequest,
			"Please fill in all fields before prediction: "+strings.Join(verr.Fields(), ", "))
		return
	}
	var uerr *interpret.ErrUnrecognizedLabel
	if errors.As(err, &uerr) {
		writeDetail(w, http.StatusBadGateway, uerr.Error())
		return
	}
	if errors.Is(err, submit.ErrSubmissionInFlight) {
		writeDetail(w, http.StatusConflict, err.Error())
		return
	}
	var ierr *inference.Error
	if errors.As(err, &ierr) {
		switch ierr.Kind {
		case inference.KindAuth:
			detail := ierr.Detail
			if detail == "" {
				detail = "Not authenticated"
			}
			writeDetail(w, http.StatusUnauthorized, detail)
		case inference.KindValidation:
			status := ierr.StatusCode
			if status == 0 {
				status = http.StatusBadRequest
			}
			writeDetail(w, status, ierr.Detail)
		default:
			detail := ierr.Detail
			if detail == "" {
				detail = "An error occurred during prediction"
			}
			writeDetail(w, http.StatusBadGateway, detail)
		}
		return
	}
	h.logger.Error("prediction failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "An error occurred during prediction")
}

// stringify renders a JSON scalar the way the form would have entered it.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// integers arrive as float64 from encoding/json; keep them whole
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}
