package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/okian/gestura/internal/adapters/device"
	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/recognizer"
)

// Local runs script through a fresh recognizer and writes every gesture as
// one JSON line to w. Frames are stamped from base, so results do not
// depend on wall-clock time.
func Local(ctx context.Context, script device.Script, cfg classifier.Config, interval time.Duration, w io.Writer, opts ...recognizer.Option) (Stats, error) {
	start := time.Now()
	if interval <= 0 {
		interval = DefaultInterval
	}
	rec := recognizer.New(cfg, opts...)
	enc := json.NewEncoder(w)

	var st Stats
	for _, f := range script.Resolve(time.Unix(0, 0).UTC(), interval) {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		st.Frames++
		for _, ev := range rec.IngestFrame(ctx, f) {
			st.Gestures++
			if err := enc.Encode(ev); err != nil {
				return st, fmt.Errorf("write event: %w", err)
			}
		}
	}
	st.Duration = time.Since(start)
	return st, nil
}
