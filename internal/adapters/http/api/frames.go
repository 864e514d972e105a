package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/gestura/internal/app"
	"github.com/okian/gestura/internal/domain/dedupe"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/metrics"
)

const maxFrameBody = 1 << 20

var errNoFrames = errors.New("request carries no points and no frames")

// FramesHandler bridges remote device backends onto the frame queue.
type FramesHandler struct {
	deps  FrameDependencies
	dedup dedupe.Deduper
}

// NewFramesHandler creates a new frames handler. Batches carrying a
// batch_id are deduplicated per frame through d, so a client may resend a
// batch after a 429 without replaying the frames already accepted.
func NewFramesHandler(deps FrameDependencies, d dedupe.Deduper) *FramesHandler {
	if d == nil {
		d = dedupe.NewInMemoryDeduper()
	}
	return &FramesHandler{deps: deps, dedup: d}
}

// frameRequest accepts either one frame or a batch under "frames".
type frameRequest struct {
	model.TouchFrame
	BatchID string             `json:"batch_id,omitempty"`
	Frames  []model.TouchFrame `json:"frames,omitempty"`
}

type framesResponse struct {
	Status     string `json:"status"`
	Accepted   int    `json:"accepted"`
	Duplicates int    `json:"duplicates,omitempty"`
}

func (f frameRequest) list() []model.TouchFrame {
	if len(f.Frames) > 0 {
		return f.Frames
	}
	if len(f.Points) == 0 {
		return nil
	}
	return []model.TouchFrame{f.TouchFrame}
}

// HandlePostFrame handles POST /frames requests.
func (h *FramesHandler) HandlePostFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_frame"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req frameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFrameBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	frames := req.list()
	if len(frames) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errNoFrames))
		return
	}

	ctx := r.Context()
	resp := framesResponse{Status: "accepted"}
	for i, f := range frames {
		var key string
		if req.BatchID != "" {
			key = dedupe.FrameKey(req.BatchID, i)
			if h.dedup.SeenAndRecord(ctx, key) {
				metrics.RecordFrameDuplicate()
				resp.Duplicates++
				continue
			}
		}
		err := h.deps.IngestFrame(ctx, f)
		if err != nil && key != "" {
			h.dedup.Unrecord(ctx, key)
		}
		switch {
		case err == nil:
			resp.Accepted++
		case errors.Is(err, service.ErrBackpressure):
			writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
			return
		case errors.Is(err, service.ErrNotStarted):
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// HandleReset handles POST /reset requests. The optional cause query
// parameter is recorded with the reset.
func (h *FramesHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	cause := strings.TrimSpace(r.URL.Query().Get("cause"))
	if cause == "" {
		cause = "api"
	}
	h.deps.Reset(r.Context(), cause)
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
