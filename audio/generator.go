package audio

import (
	"math"

	"github.com/lixenwraith/brickstorm/vmath"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// sweepSine generates a sine whose frequency glides linearly from f0 to f1
func sweepSine(rate int, f0, f1 float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(samples)
		freq := f0 + (f1-f0)*t
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(rate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// noise generates white noise in [-1, 1)
func noise(rng *vmath.FastRand, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// lowPass runs a one-pole filter in place; the cutoff rises with the sweep so the noise opens up
func lowPass(buf floatBuffer, rate int, cutoff0, cutoff1 float64) {
	prev := 0.0
	n := float64(len(buf))
	for i, x := range buf {
		fc := cutoff0 + (cutoff1-cutoff0)*float64(i)/n
		alpha := 1 - math.Exp(-2*math.Pi*fc/float64(rate))
		prev += alpha * (x - prev)
		buf[i] = prev
	}
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, rate int, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(rate))
	releaseSamples := int(releaseSec * float64(rate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mix adds b into a scaled by bScale; a must be at least as long as b
func mix(a, b floatBuffer, bScale float64) {
	for i := range b {
		a[i] += b[i] * bScale
	}
}

// normalize scales buf so its peak equals gain
func normalize(buf floatBuffer, gain float64) {
	peak := 0.0
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}
	for i := range buf {
		buf[i] *= gain / peak
	}
}

// generateWhoosh is filtered noise over a rising low tone, the capture cue
func generateWhoosh(rate int, cfg Config, rng *vmath.FastRand) floatBuffer {
	samples := int(cfg.Duration.Seconds() * float64(rate))
	if samples <= 0 {
		return nil
	}

	buf := noise(rng, samples)
	lowPass(buf, rate, cfg.BaseFreq*2, cfg.BaseFreq*12)

	tone := sweepSine(rate, cfg.BaseFreq, cfg.BaseFreq+cfg.Sweep, samples)
	mix(buf, tone, 0.4)

	attack := cfg.Duration.Seconds() * 0.3
	applyEnvelope(buf, rate, attack, cfg.Duration.Seconds()-attack)
	normalize(buf, cfg.Volume)
	return buf
}
