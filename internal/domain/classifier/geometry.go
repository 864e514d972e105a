package classifier

import (
	"math"

	"github.com/okian/gestura/internal/domain/model"
)

func centroid(vs []model.Vec) model.Vec {
	var c model.Vec
	for _, v := range vs {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(vs)))
}

// dominant maps a displacement to a direction along its larger axis.
// Ties go to the vertical axis. Y grows downward.
func dominant(d model.Vec) model.Direction {
	if math.Abs(d.Y) >= math.Abs(d.X) {
		switch {
		case d.Y > 0:
			return model.DirectionDown
		case d.Y < 0:
			return model.DirectionUp
		default:
			return model.DirectionNone
		}
	}
	if d.X > 0 {
		return model.DirectionRight
	}
	return model.DirectionLeft
}

// normalizeAngle folds a into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
