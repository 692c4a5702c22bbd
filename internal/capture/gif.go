package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
)

// GIFName is the fixed file name of recorded clips.
const GIFName = "waves.gif"

// gifJob is one snapshot waiting for quantization.
type gifJob struct {
	index int
	img   *image.RGBA
}

// GIFEncoder downsizes frames synchronously and quantizes them on a pool of
// worker goroutines so AddFrame never waits for palette work.
type GIFEncoder struct {
	width, height int
	palette       color.Palette

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []gifJob
	frames    []*image.Paletted
	delays    []int
	pending   int
	closed    bool
	finalized bool
}

// NewGIFEncoder starts workers goroutines that quantize to palette.
func NewGIFEncoder(width, height int, palette color.Palette, workers int) *GIFEncoder {
	if workers < 1 {
		workers = 1
	}
	e := &GIFEncoder{
		width:   width,
		height:  height,
		palette: palette,
	}
	e.cond = sync.NewCond(&e.mu)
	for i := 0; i < workers; i++ {
		go e.workerLoop()
	}
	return e
}

// NewGIFFactory returns an EncoderFactory producing GIF encoders.
func NewGIFFactory(palette color.Palette, workers int) EncoderFactory {
	return func(width, height int) (Encoder, error) {
		if width < 1 || height < 1 {
			return nil, fmt.Errorf("invalid gif size %dx%d", width, height)
		}
		if len(palette) == 0 || len(palette) > 256 {
			return nil, fmt.Errorf("gif palette needs 1-256 colours, got %d", len(palette))
		}
		return NewGIFEncoder(width, height, palette, workers), nil
	}
}

// AddFrame scales img into a private snapshot and queues it. Frames added
// after Finalize are dropped.
func (e *GIFEncoder) AddFrame(img image.Image, delay time.Duration) {
	snap := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	xdraw.ApproxBiLinear.Scale(snap, snap.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.queue = append(e.queue, gifJob{index: len(e.frames), img: snap})
	e.frames = append(e.frames, nil)
	e.delays = append(e.delays, centiseconds(delay))
	e.pending++
	e.cond.Broadcast()
}

// workerLoop quantizes queued snapshots until the encoder is closed and the
// queue has drained.
func (e *GIFEncoder) workerLoop() {
	e.mu.Lock()
	for {
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}
		job := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		frame := quantize(job.img, e.palette)

		e.mu.Lock()
		e.frames[job.index] = frame
		e.pending--
		if e.pending == 0 {
			e.cond.Broadcast()
		}
	}
}

// Finalize stops accepting frames, waits for the workers in the background
// and encodes the clip.
func (e *GIFEncoder) Finalize(done func(Blob, error)) {
	e.mu.Lock()
	if e.finalized {
		e.mu.Unlock()
		go done(Blob{}, ErrFinalized)
		return
	}
	e.finalized = true
	e.closed = true
	e.cond.Broadcast()
	e.mu.Unlock()

	go func() {
		e.mu.Lock()
		for e.pending > 0 {
			e.cond.Wait()
		}
		anim := &gif.GIF{
			Image:     e.frames,
			Delay:     e.delays,
			LoopCount: 0,
			Config: image.Config{
				ColorModel: e.palette,
				Width:      e.width,
				Height:     e.height,
			},
		}
		e.frames, e.delays = nil, nil
		e.mu.Unlock()

		if len(anim.Image) == 0 {
			done(Blob{}, fmt.Errorf("encoding %s: no frames captured", GIFName))
			return
		}
		var buf bytes.Buffer
		if err := gif.EncodeAll(&buf, anim); err != nil {
			done(Blob{}, fmt.Errorf("encoding %s: %w", GIFName, err))
			return
		}
		done(Blob{Name: GIFName, MIME: "image/gif", Data: buf.Bytes()}, nil)
	}()
}

func quantize(src *image.RGBA, palette color.Palette) *image.Paletted {
	dst := image.NewPaletted(src.Bounds(), palette)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	return dst
}

// centiseconds converts a frame delay to GIF's 1/100 s units.
func centiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	return cs
}
