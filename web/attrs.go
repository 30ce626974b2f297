// Package web hosts the swarm in a browser: GopherJS drives an A-Frame scene
// from requestAnimationFrame and reads the microphone through Web Audio.
package web

import (
	"strconv"

	"github.com/pthm-cable/murmur/systems"
)

// MeanLevel maps analyser byte bins to loudness: the mean bin over 255,
// capped at 1. No bins is silence.
func MeanLevel(bins []byte) float64 {
	if len(bins) == 0 {
		return 0
	}
	sum := 0
	for _, b := range bins {
		sum += int(b)
	}
	l := float64(sum) / float64(len(bins)) / 255
	if l > 1 {
		return 1
	}
	return l
}

// PositionAttr formats a particle position for an A-Frame position attribute.
func PositionAttr(p systems.ParticleState) string {
	return ftoa(p.Position.X) + " " + ftoa(p.Position.Y) + " " + ftoa(p.Position.Z)
}

// FogAttr formats the scene fog component: white linear fog whose opacity and
// far plane follow loudness.
func FogAttr(f systems.FogState) string {
	return "type: linear; color: rgba(255, 255, 255, " + ftoa(f.Alpha) +
		"); near: " + ftoa(f.Near) + "; far: " + ftoa(f.Far)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
