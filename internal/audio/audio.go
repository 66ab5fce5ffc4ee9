// Package audio captures the default microphone and exposes its loudness as
// a single last-value reading.
//
// The portaudio callback thread is the only writer; the main loop reads
// whatever value is current. Readings are never queued and may be stale.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

var ErrUnavailable = errors.New("audio: capture unavailable")

// Bands are smoothed, gain-normalized spectrum levels in [0, 1].
type Bands struct {
	Bass, Mid, High float64
}

// Meter is the read side of the capture.
type Meter interface {
	Volume() float64
	Bands() Bands
}

// Silent is used when no microphone could be opened. It always reads zero.
type Silent struct{}

func (Silent) Volume() float64 { return 0 }
func (Silent) Bands() Bands    { return Bands{} }

type Processor struct {
	stream *portaudio.Stream

	complexBuffer []complex128
	maxLevel      float64

	mu     sync.RWMutex
	volume float64
	bands  Bands
}

func NewProcessor() *Processor {
	return &Processor{
		complexBuffer: make([]complex128, BufferSize),
		maxLevel:      0.1,
	}
}

// Start opens a mono input stream on the default device.
func (p *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, BufferSize, p.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: open input: %v", ErrUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: start input: %v", ErrUnavailable, err)
	}
	p.stream = stream
	return nil
}

func (p *Processor) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
}

// ProcessAudio is the portaudio input callback.
func (p *Processor) ProcessAudio(in []float32) {
	vol := Loudness(in)

	for i := range p.complexBuffer {
		var s float64
		if i < len(in) {
			s = float64(in[i])
		}
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		p.complexBuffer[i] = complex(s*window, 0)
	}
	raw := bucket(fft.FFT(p.complexBuffer))

	// AGC
	peak := math.Max(raw.Bass, math.Max(raw.Mid, raw.High))
	if peak > p.maxLevel {
		p.maxLevel = peak
	} else {
		p.maxLevel *= 0.999
	}
	gain := 1.0
	if p.maxLevel > 0.001 {
		gain = math.Min(1.0/p.maxLevel, 50.0)
	}

	p.mu.Lock()
	p.volume = vol
	p.bands = Bands{
		Bass: p.bands.Bass*0.9 + math.Min(raw.Bass*gain, 1.0)*0.1,
		Mid:  p.bands.Mid*0.9 + math.Min(raw.Mid*gain, 1.0)*0.1,
		High: p.bands.High*0.9 + math.Min(raw.High*gain, 1.0)*0.1,
	}
	p.mu.Unlock()
}

func (p *Processor) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

func (p *Processor) Bands() Bands {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bands
}

// Loudness is the mean absolute sample value of a buffer.
func Loudness(in []float32) float64 {
	if len(in) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range in {
		sum += math.Abs(float64(s))
	}
	return sum / float64(len(in))
}

// bucket sums spectrum magnitudes into bass (<~215Hz), mid (<~2kHz) and
// high (<~20kHz) at SampleRate/BufferSize resolution.
func bucket(spectrum []complex128) Bands {
	var b Bands
	for i := 0; i < len(spectrum)/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 5:
			b.Bass += mag
		case i < 46:
			b.Mid += mag
		case i < 460:
			b.High += mag
		}
	}
	b.Bass /= 100.0
	b.Mid /= 500.0
	b.High /= 1000.0
	return b
}

// Open starts microphone capture. When that fails the error is logged and a
// Silent meter is returned; there is no retry. The returned stop function
// is always safe to call.
func Open(log *slog.Logger) (Meter, func()) {
	p := NewProcessor()
	if err := p.Start(); err != nil {
		log.Warn("microphone disabled, volume reads 0", "err", err)
		return Silent{}, func() {}
	}
	log.Info("microphone capture started", "sample_rate", SampleRate, "buffer", BufferSize)
	return p, p.Stop
}
