// Package metric provides the sensor-derived finger-count sample used by
// telemetry. The real source consumes the vision pipeline's MQTT topics;
// the fake allows testing without a broker or camera.
package metric

import "errors"

// Vision pipeline topics. The pipeline publishes the latest finger count
// as a bare decimal integer, and a separate marker when no hand is in frame.
const (
	TopicFingerCount     = "mediapipe/fingers"
	TopicHandNotDetected = "mediapipe/handnotdetected"
)

// MaxFingers is the upper bound of a valid reading (two hands).
const MaxFingers = 10

// ErrUnavailable is returned by Sample when no valid reading exists.
// Callers treat it as a non-fatal, unretried skip condition.
var ErrUnavailable = errors.New("metric: sample unavailable")

// Source produces finger-count samples.
type Source interface {
	// Sample returns the current reading in [0, MaxFingers], or
	// ErrUnavailable if no valid reading exists.
	Sample() (int, error)

	// Close releases the source's resources.
	Close() error
}
