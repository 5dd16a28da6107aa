package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/sentiment"
)

// maxBodyBytes bounds a /predict request body.
const maxBodyBytes = 1 << 20

// Classifier is the part of sentiment.Service the handler needs.
type Classifier interface {
	Classify(text string) (sentiment.Prediction, error)
	Health() sentiment.Health
}

// Handler implements all HTTP endpoints.
type Handler struct {
	svc      Classifier
	validate *validator.Validate
}

func New(svc Classifier) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Register mounts routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /predict", h.predict)
}

type predictRequest struct {
	Text string `json:"text" validate:"required"`
}

type predictResponse struct {
	Text          string             `json:"text"`
	Sentiment     string             `json:"sentiment"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	ModelID       string             `json:"model_id,omitempty"`
}

type healthResponse struct {
	Status      string          `json:"status"`
	ModelLoaded bool            `json:"model_loaded"`
	State       sentiment.State `json:"state"`
	ModelID     string          `json:"model_id,omitempty"`
	Classes     []string        `json:"classes,omitempty"`
}

// ---------- endpoints ----------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	hl := h.svc.Health()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		ModelLoaded: hl.Ready,
		State:       hl.State,
		ModelID:     hl.ModelID,
		Classes:     hl.Classes,
	})
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeErr(w, http.StatusBadRequest, "No text provided")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, "No text provided")
		return
	}

	pred, err := h.svc.Classify(req.Text)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("prediction failed", "request_id", RequestID(r.Context()), "err", err)
		}
		writeErr(w, status, errs.Detail(err))
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Text:          pred.Text,
		Sentiment:     pred.Label,
		Confidence:    pred.Confidence,
		Probabilities: pred.Probabilities,
		ModelID:       h.svc.Health().ModelID,
	})
}

func statusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrNotReady:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
