//go:build (linux && cgo) || windows || darwin

package play

import (
	"context"
	"math/rand"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const rainSampleRate = 44100

// playRain renders generated rain sound (filtered brown noise) through the
// system speaker until ctx is cancelled.
func playRain(ctx context.Context) error {
	err := speaker.Init(beep.SampleRate(rainSampleRate), rainSampleRate/10)
	if err != nil {
		return err
	}

	streamer := &rainStreamer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-ctx.Done():
		speaker.Clear()
		return nil
	case <-done:
		// The streamer is endless, so ending means it failed
		return streamer.Err()
	}
}

// rainStreamer generates soft filtered brown noise, which reads as steady
// rainfall on speakers.
type rainStreamer struct {
	rng  *rand.Rand
	last float64
}

func (r *rainStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		white := r.rng.Float64()*2 - 1

		// Leaky integration turns white noise into brown noise
		r.last = (r.last + 0.02*white) / 1.02

		value := r.last * 3.5
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}

		value *= 0.4 // keep the volume sleep friendly
		samples[i][0] = value
		samples[i][1] = value
	}
	return len(samples), true
}

func (r *rainStreamer) Err() error {
	return nil
}
