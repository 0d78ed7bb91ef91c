// Package board is the per-target bring-up used by the boot command:
// console output, optional I2C controller and the fatal halt that ends an
// uncaught unwind.
package board

import "bspcore-go/errcode"

// Describe renders an uncaught payload for the last line printed before
// the board halts.
func Describe(payload any) string {
	code := errcode.OfPayload(payload)
	switch v := payload.(type) {
	case nil:
		return "FATAL " + string(code)
	case error:
		if v.Error() == string(code) {
			return "FATAL " + string(code)
		}
		return "FATAL " + string(code) + ": " + v.Error()
	case string:
		return "FATAL " + string(code) + ": " + v
	default:
		return "FATAL " + string(code)
	}
}
