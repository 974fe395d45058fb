// SPDX-License-Identifier: EPL-2.0

package utils

// MsToFrames converts milliseconds to a frame count at the given rate
// (frames or ticks per second), truncating sub-frame remainders.
func MsToFrames(ms, rate int) int {
	return int(int64(ms) * int64(rate) / 1000)
}

// FramesToMs converts a frame count at the given rate to milliseconds,
// rounding up so durations never shrink through conversion.
func FramesToMs(frames, rate int) int {
	if rate <= 0 {
		return 0
	}
	n := int64(frames) * 1000
	return int((n + int64(rate) - 1) / int64(rate))
}
