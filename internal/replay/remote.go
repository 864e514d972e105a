package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gestura/internal/adapters/device"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/logger"
)

// frameBatch carries a batch id so the daemon can drop frames it already
// accepted when a 429 forces a resend.
type frameBatch struct {
	BatchID string             `json:"batch_id"`
	Frames  []model.TouchFrame `json:"frames"`
}

// Remote posts script to the daemon at cfg.BaseURL. Without Realtime the
// whole script goes out as one batch; with it, each frame is posted at its
// scripted offset. A reset is posted first so the script starts from Idle.
func Remote(ctx context.Context, cfg RemoteConfig, script device.Script) (Stats, error) {
	start := time.Now()
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Retries <= 0 {
		cfg.Retries = defaultRetries
	}
	client := newHTTPClient(cfg.Timeout)

	var st Stats
	if err := checkServiceHealth(ctx, client, base); err != nil {
		return st, err
	}
	if err := post(ctx, client, base+"/reset?cause=replay", nil, cfg.Retries, &st); err != nil {
		return st, err
	}

	now := time.Now()
	frames := script.Resolve(now, cfg.Interval)
	if !cfg.Realtime {
		if err := post(ctx, client, base+"/frames", frameBatch{BatchID: uuid.NewString(), Frames: frames}, cfg.Retries, &st); err != nil {
			return st, err
		}
		st.Frames = len(frames)
	} else {
		for _, f := range frames {
			if d := time.Until(f.Timestamp); d > 0 {
				select {
				case <-ctx.Done():
					return st, ctx.Err()
				case <-time.After(d):
				}
			}
			one := frameBatch{BatchID: uuid.NewString(), Frames: []model.TouchFrame{f}}
			if err := post(ctx, client, base+"/frames", one, cfg.Retries, &st); err != nil {
				return st, err
			}
			st.Frames++
		}
	}

	resp, err := client.Get(ctx, base+"/stats")
	if err == nil {
		var remote map[string]any
		if json.Unmarshal(drain(resp), &remote) == nil {
			st.RemoteStats = remote
		}
	}
	st.Duration = time.Since(start)
	log.Info(ctx, "replay submitted",
		logger.String("script", script.Name),
		logger.Int("frames", st.Frames),
		logger.Int("retries", st.Retries),
		logger.Duration("duration", st.Duration))
	return st, nil
}

// post sends body, retrying on 429 up to retries times.
func post(ctx context.Context, client *HTTPClient, url string, body any, retries int, st *Stats) error {
	for attempt := 0; ; attempt++ {
		st.Requests++
		resp, err := client.Post(ctx, url, body)
		if err != nil {
			return fmt.Errorf("post %s: %w", url, err)
		}
		msg := drain(resp)
		switch {
		case resp.StatusCode < http.StatusMultipleChoices:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests && attempt < retries:
			st.Retries++
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay << attempt):
			}
		default:
			return fmt.Errorf("%w: %s: status %d: %s", ErrRejected, url, resp.StatusCode, strings.TrimSpace(string(msg)))
		}
	}
}
