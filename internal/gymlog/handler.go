package gymlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/2beens/gymsheets/internal/middleware"
	"github.com/2beens/gymsheets/internal/telemetry/tracing"
	"github.com/2beens/gymsheets/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the log endpoints. Routes carry no method matcher,
// the method guard answers OPTIONS and non-POST requests itself.
func (h *Handler) SetupRoutes(r *mux.Router) {
	postOnly := middleware.AllowMethods(http.MethodPost)
	r.Handle("/logWorkout", postOnly(http.HandlerFunc(h.HandleLogWorkout))).Name("log-workout")
	r.Handle("/logWeight", postOnly(http.HandlerFunc(h.HandleLogWeight))).Name("log-weight")
	r.Handle("/logEffort", postOnly(http.HandlerFunc(h.HandleLogEffort))).Name("log-effort")
}

func (h *Handler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymlog.workout")
	defer span.End()

	var req LogWorkoutRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Debugf("log workout, decode request: %s", err)
		writeError(w, ErrInvalidRequestBody)
		return
	}

	resp, err := h.service.LogWorkout(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Debugf("logged %d sets for session [%s]", resp.LoggedSets, resp.SessionID)
	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleLogWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymlog.weight")
	defer span.End()

	var req LogWeightRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Debugf("log weight, decode request: %s", err)
		writeError(w, ErrInvalidRequestBody)
		return
	}

	resp, err := h.service.LogWeight(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleLogEffort(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymlog.effort")
	defer span.End()

	var req LogEffortRequest
	if err := decodeRequest(r, &req); err != nil {
		log.Debugf("log effort, decode request: %s", err)
		writeError(w, ErrInvalidRequestBody)
		return
	}

	resp, err := h.service.LogEffort(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, resp)
}

// decodeRequest reads a JSON body into dst. An empty body leaves dst untouched.
func decodeRequest(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	return json.Unmarshal(body, dst)
}

func writeError(w http.ResponseWriter, err error) {
	var inputErr *InputError
	var storeErr *StoreError

	switch {
	case errors.As(err, &inputErr):
		pkg.WriteJSONError(w, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &storeErr):
		pkg.WriteJSONError(w, http.StatusInternalServerError, storeErr.Error())
	default:
		log.Errorf("gymlog request failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
