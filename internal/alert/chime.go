package alert

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

// Two rising notes with a short gap. A zero frequency is a pause.
var chimeTones = []tone{
	{freq: 660, duration: 180 * time.Millisecond},
	{freq: 0, duration: 70 * time.Millisecond},
	{freq: 880, duration: 320 * time.Millisecond},
}

// Chime plays a short synthesized chime through the default audio device.
type Chime struct {
	mu          sync.Mutex
	logger      *slog.Logger
	volume      float64
	initialized bool
}

// NewChime creates a Chime at the given volume (0.0 to 1.0).
func NewChime(volume float64, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chime{logger: logger, volume: math.Max(0, math.Min(1, volume))}
}

// Play starts the chime and returns without waiting for it to finish.
func (c *Chime) Play() error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}
	streamer, err := chimeStreamer(chimeSampleRate, c.volume, nil)
	if err != nil {
		return err
	}
	speaker.Play(streamer)
	return nil
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		speaker.Close()
		c.initialized = false
	}
}

func (c *Chime) ensureInitialized() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	c.initialized = true
	c.logger.Debug("speaker initialized", "sample_rate", chimeSampleRate)
	return nil
}

// chimeStreamer builds the chime; done, if set, runs after the last sample.
func chimeStreamer(sampleRate beep.SampleRate, volume float64, done func()) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(chimeTones)+1)
	for _, t := range chimeTones {
		samples := sampleRate.N(t.duration)
		if t.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("generate %.0f Hz tone: %w", t.freq, err)
		}
		parts = append(parts, beep.Take(samples, sine))
	}
	if done != nil {
		parts = append(parts, beep.Callback(done))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volumeToExponent(volume),
		Silent:   volume <= 0,
	}, nil
}

func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}

func chimeLength(sampleRate beep.SampleRate) int {
	total := 0
	for _, t := range chimeTones {
		total += sampleRate.N(t.duration)
	}
	return total
}
