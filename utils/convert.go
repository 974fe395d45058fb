// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt16 converts one float32 sample in [-1,1] to 16-bit PCM,
// clamping out-of-range values.
func FloatToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}

// Int16ToFloat converts one 16-bit PCM sample to float32 in [-1,1].
func Int16ToFloat(v int16) float32 {
	return float32(v) / 32768.0
}
