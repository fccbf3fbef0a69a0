// Package synth renders short arcade sound effects as 16-bit mono WAV data.
//
// The game ships pre-rendered WAV assets; this package is the fallback path
// for asset-resolution failures (a synthesized placeholder beep instead of
// silence) and the reference renderer the shipped effects were produced with.
// Rendering is fully deterministic: the noise generator is a fixed-seed LCG,
// so the same Spec always yields identical bytes.
package synth

import (
	"bytes"
	"encoding/binary"
	"math"
)

// SampleRate is the render rate in Hz. It matches the game's audio context,
// so the WAV bytes can be decoded without resampling.
const SampleRate = 48000

// Waveform selects the oscillator used for a sound effect.
type Waveform int

const (
	// Sine is a pure tone (UI feedback, power-up chimes).
	Sine Waveform = iota
	// Square is the classic harsh arcade tone (shots).
	Square
	// Noise is white noise (explosions, rumble).
	Noise
)

// Spec describes one sound effect.
//
// The oscillator sweeps linearly from StartHz to EndHz over Duration.
// For Noise the frequencies control a crude low-pass: higher values keep
// more hiss, lower values rumble.
type Spec struct {
	Wave     Waveform
	StartHz  float64
	EndHz    float64
	Duration float64 // seconds
	Volume   float64 // 0..1, clamped
}

// Placeholder is the beep used when a sound asset fails to resolve.
func Placeholder() Spec {
	return Spec{Wave: Sine, StartHz: 660, EndHz: 440, Duration: 0.12, Volume: 0.4}
}

// Render produces the mono 16-bit PCM samples for a spec.
func Render(spec Spec, sampleRate int) []int16 {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if spec.Duration <= 0 {
		return nil
	}
	vol := spec.Volume
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}

	n := int(spec.Duration * float64(sampleRate))
	samples := make([]int16, n)

	// Fixed-seed LCG keeps noise rendering deterministic.
	lcg := uint32(0x2F6E2B1)
	noiseVal := 0.0

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) // normalized progress 0..1
		hz := spec.StartHz + (spec.EndHz-spec.StartHz)*t

		var v float64
		switch spec.Wave {
		case Square:
			phase += hz / float64(sampleRate)
			if math.Mod(phase, 1.0) < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case Noise:
			lcg = lcg*1664525 + 1013904223
			white := float64(int32(lcg)) / math.MaxInt32 // roughly -1..1
			// One-pole low-pass tracking the swept frequency.
			alpha := hz / float64(sampleRate) * 2 * math.Pi
			if alpha > 1 {
				alpha = 1
			}
			noiseVal += alpha * (white - noiseVal)
			v = noiseVal * 3
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
		default: // Sine
			phase += hz / float64(sampleRate)
			v = math.Sin(2 * math.Pi * phase)
		}

		// Envelope: 5 ms attack ramp, linear release over the last 30%.
		env := 1.0
		attack := 0.005 * float64(sampleRate)
		if float64(i) < attack {
			env = float64(i) / attack
		}
		if t > 0.7 {
			release := (1 - t) / 0.3
			if release < env {
				env = release
			}
		}

		samples[i] = int16(v * env * vol * math.MaxInt16)
	}
	return samples
}

// WAV renders a spec and wraps the PCM samples in a RIFF/WAVE container
// (16-bit mono, little-endian) ready for Ebitengine's wav decoder.
func WAV(spec Spec, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	samples := Render(spec, sampleRate)
	return EncodeWAV(samples, sampleRate)
}

// EncodeWAV wraps mono 16-bit PCM samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := &bytes.Buffer{}
	buf.Grow(44 + dataSize)

	// RIFF chunk
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	// fmt chunk: PCM, mono, 16 bit
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(buf, binary.LittleEndian, uint16(16))           // bits per sample

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
