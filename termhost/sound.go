package termhost

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	cueSampleRate = beep.SampleRate(44100)
	cueFrequency  = 880
	cueLength     = 50 * time.Millisecond
)

// dropCue plays a short sine blip through the speaker.
type dropCue struct{}

func newDropCue() (*dropCue, error) {
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &dropCue{}, nil
}

func (c *dropCue) play() {
	sine, err := generators.SineTone(cueSampleRate, cueFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(cueSampleRate.N(cueLength), sine))
}

func (c *dropCue) close() {
	speaker.Close()
}
