// Package sound plays short synthesized tones, used for the redline warning.
package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/roffe/speedometer/pkg/logger"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	fadeSamples  = 256
)

var (
	octx    *oto.Context
	initMu  sync.Mutex
	initErr error
)

func Init() error {
	initMu.Lock()
	defer initMu.Unlock()
	if octx != nil {
		return nil
	}
	if initErr != nil {
		return initErr
	}

	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		initErr = fmt.Errorf("sound.Init failed: %w", err)
		return initErr
	}
	select {
	case <-readyChan:
		octx = otoCtx
		return nil
	case <-time.After(10 * time.Second):
		initErr = fmt.Errorf("sound.Init timed out")
		return initErr
	}
}

// Tone returns signed 16 bit little endian stereo PCM of a sine wave. The
// edges are faded to avoid clicks.
func Tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(float64(SampleRate) * d.Seconds())
	buf := bytes.NewBuffer(make([]byte, 0, n*ChannelCount*2))
	volume = math.Max(0, math.Min(volume, 1))
	for i := 0; i < n; i++ {
		env := 1.0
		if i < fadeSamples {
			env = float64(i) / fadeSamples
		} else if n-i < fadeSamples {
			env = float64(n-i) / fadeSamples
		}
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * env * volume * math.MaxInt16)
		for c := 0; c < ChannelCount; c++ {
			_ = binary.Write(buf, binary.LittleEndian, v)
		}
	}
	return buf.Bytes()
}

// PlayTone plays a tone and returns without waiting for it to finish.
func PlayTone(freq float64, d time.Duration, volume float64) error {
	if err := Init(); err != nil {
		return err
	}
	player := octx.NewPlayer(bytes.NewReader(Tone(freq, d, volume)))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			logger.Warn().Err(err).Msg("player.Close failed")
		}
	}()
	return nil
}

// Redline returns a value callback that starts play once each time the value
// climbs to top from below. play runs on its own goroutine so a slow audio
// device never holds up the caller.
func Redline(top, initial float64, play func()) func(float64) {
	var mu sync.Mutex
	prev := initial
	return func(v float64) {
		mu.Lock()
		crossed := v >= top && prev < top
		prev = v
		mu.Unlock()
		if crossed {
			go play()
		}
	}
}
