// Package capture records a short animated clip of the rendered frames.
package capture

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEncoderUnavailable is returned by Trigger when no encoder can be made.
	ErrEncoderUnavailable = errors.New("capture: animated image encoder unavailable")
	// ErrAlreadyRecording is returned by Trigger while a clip is in progress.
	ErrAlreadyRecording = errors.New("capture: already recording")
	// ErrFinalized is reported when an encoder is finalized twice.
	ErrFinalized = errors.New("capture: encoder already finalized")
)

// Blob is a finished clip.
type Blob struct {
	Name string
	MIME string
	Data []byte
}

// Encoder accumulates frames into an animated image.
type Encoder interface {
	// AddFrame snapshots img before returning; the caller may reuse it.
	AddFrame(img image.Image, delay time.Duration)
	// Finalize encodes asynchronously and calls done exactly once.
	Finalize(done func(Blob, error))
}

// EncoderFactory builds an encoder for frames of width x height pixels.
type EncoderFactory func(width, height int) (Encoder, error)

// Notifier is the user feedback surface.
type Notifier interface {
	SetStatus(text string)
	Alert(message string)
}

// Sink receives finished clips.
type Sink interface {
	Save(Blob) error
}

// State of a Recorder.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	}
	return "unknown"
}

// Options tune a Recorder.
type Options struct {
	Duration           time.Duration
	FrameRate          float64
	IdleStatus         string
	RecordingStatus    string
	UnavailableMessage string
}

// DefaultOptions records 2.5 s at 20 fps.
func DefaultOptions() Options {
	return Options{
		Duration:           2500 * time.Millisecond,
		FrameRate:          20,
		IdleStatus:         "Record GIF",
		RecordingStatus:    "Recording...",
		UnavailableMessage: "The GIF encoder is not available.",
	}
}

// FrameDelay is the per-frame delay handed to the encoder.
func (o Options) FrameDelay() time.Duration {
	if o.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / o.FrameRate)
}

// Recorder forwards rendered frames to an encoder for a fixed duration. It is
// driven from the animation loop and is not safe for concurrent use; only
// finalization runs elsewhere.
type Recorder struct {
	opts       Options
	newEncoder EncoderFactory
	notifier   Notifier
	sink       Sink
	log        logrus.FieldLogger

	state     State
	enc       Encoder
	start     time.Duration
	nextFrame time.Duration
	forwarded int
	finalized int

	pending sync.WaitGroup
}

// NewRecorder returns an idle recorder. A nil factory marks the encoder as
// unavailable.
func NewRecorder(opts Options, factory EncoderFactory, notifier Notifier, sink Sink, log logrus.FieldLogger) *Recorder {
	r := &Recorder{
		opts:       opts,
		newEncoder: factory,
		notifier:   notifier,
		sink:       sink,
		log:        log,
	}
	notifier.SetStatus(opts.IdleStatus)
	return r
}

// State reports whether a clip is being recorded.
func (r *Recorder) State() State { return r.state }

// Forwarded is the number of frames handed to the current or last encoder.
func (r *Recorder) Forwarded() int { return r.forwarded }

// Finalized counts Finalize calls issued over the recorder's lifetime.
func (r *Recorder) Finalized() int { return r.finalized }

// Trigger starts a clip at now for a surface of width x height logical
// units. The encoder works at half that resolution.
func (r *Recorder) Trigger(now time.Duration, width, height float64) error {
	if r.state == Recording {
		return ErrAlreadyRecording
	}
	if r.newEncoder == nil {
		r.notifier.Alert(r.opts.UnavailableMessage)
		return ErrEncoderUnavailable
	}
	ew, eh := halfSize(width), halfSize(height)
	enc, err := r.newEncoder(ew, eh)
	if err != nil {
		r.log.WithError(err).Error("Creating capture encoder failed")
		r.notifier.Alert(r.opts.UnavailableMessage)
		return ErrEncoderUnavailable
	}
	r.enc = enc
	r.state = Recording
	r.start = now
	r.nextFrame = now
	r.forwarded = 0
	r.notifier.SetStatus(r.opts.RecordingStatus)
	r.log.WithFields(logrus.Fields{"width": ew, "height": eh}).Info("Capture started")
	return nil
}

// Observe is called once per rendered frame. While recording it forwards
// frame at the capped frame rate and, once the duration has elapsed, stops
// and finalizes the clip without forwarding.
//
// Forwarding deadlines sit on a fixed grid of FrameDelay steps from the
// trigger time, so the clip keeps the capped rate whatever the display rate.
// Grid slots missed during a stall are skipped, not replayed.
func (r *Recorder) Observe(now time.Duration, frame image.Image) {
	if r.state != Recording {
		return
	}
	if now-r.start >= r.opts.Duration {
		r.stop()
		return
	}
	if now < r.nextFrame {
		return
	}
	delay := r.opts.FrameDelay()
	r.enc.AddFrame(frame, delay)
	r.forwarded++
	if delay <= 0 {
		return
	}
	r.nextFrame += delay
	if r.nextFrame <= now {
		r.nextFrame += ((now-r.nextFrame)/delay + 1) * delay
	}
}

func (r *Recorder) stop() {
	enc := r.enc
	frames := r.forwarded
	r.enc = nil
	r.state = Idle
	r.finalized++
	r.notifier.SetStatus(r.opts.IdleStatus)
	r.log.WithField("frames", frames).Info("Capture stopped, encoding")

	r.pending.Add(1)
	enc.Finalize(func(blob Blob, err error) {
		defer r.pending.Done()
		if err != nil {
			r.log.WithError(err).Error("Encoding capture failed")
			return
		}
		if err := r.sink.Save(blob); err != nil {
			r.log.WithError(err).WithField("name", blob.Name).Error("Saving capture failed")
			return
		}
		r.log.WithFields(logrus.Fields{"name": blob.Name, "bytes": len(blob.Data)}).Info("Capture saved")
	})
}

// Wait blocks until every issued finalization has been delivered to the sink.
func (r *Recorder) Wait() {
	r.pending.Wait()
}

func halfSize(v float64) int {
	n := int(v / 2)
	if n < 1 {
		n = 1
	}
	return n
}
