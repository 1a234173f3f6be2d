package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/iwvelando/capital-simulator/internal/capital"
	"github.com/iwvelando/capital-simulator/internal/form"
	"github.com/iwvelando/capital-simulator/internal/simulation"
	"github.com/iwvelando/capital-simulator/pkg/constants"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	optimizer   simulation.Dispatcher
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the simulation form and
// the endpoints it calls.
func NewHandler(logger *zap.Logger, optimizer simulation.Dispatcher, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, optimizer: optimizer, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Capital field formatting, called on every edit
	mux.HandleFunc("/api/format", h.handleFormat)

	// Simulate action
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web form)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type formatRequest struct {
	Capital string `json:"capital"`
}

type formatResponse struct {
	Capital    string `json:"capital"`
	MinorUnits int64  `json:"minorUnits"`
}

type simulateRequest struct {
	Capital     string  `json:"capital"`
	RiskProfile string  `json:"riskProfile"`
	Company     *string `json:"company,omitempty"`
}

type simulateResponse struct {
	Outcome   simulation.OutcomeKind `json:"outcome"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"requestId,omitempty"`
}

func (h *handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload formatRequest
	if !h.decodeBody(w, r, &payload, "server.handleFormat") {
		return
	}

	field := form.NewInput(payload.Capital)
	amount := capital.NewFormatter(field).HandleInput()

	h.writeJSON(w, http.StatusOK, formatResponse{
		Capital:    field.Value(),
		MinorUnits: amount.Minor(),
	})
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload simulateRequest
	if !h.decodeBody(w, r, &payload, "server.handleSimulate") {
		return
	}

	controls := form.Controls{
		Capital: form.NewInput(payload.Capital),
		Risk:    form.NewInput(payload.RiskProfile),
	}
	if payload.Company != nil {
		controls.Company = form.NewInput(*payload.Company)
	}

	recorder := &simulation.Recorder{}
	controller := simulation.NewController(controls, h.optimizer, recorder, h.logger)
	outcome, err := controller.Submit(r.Context())

	status := http.StatusOK
	switch simulation.KindOf(err) {
	case simulation.OutcomeValidation:
		status = http.StatusBadRequest
	case simulation.OutcomeTransport:
		status = http.StatusBadGateway
	}

	h.writeJSON(w, status, simulateResponse{
		Outcome:   outcome.Kind,
		Message:   recorder.Last(),
		RequestID: outcome.RequestID,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
