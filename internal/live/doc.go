// Package live is the mode state machine that drives the canvas.
//
// A [Machine] is always in exactly one [Mode]:
//
//   - [Running]: a compiled script is evaluated over the canvas on every
//     [Machine.Step]
//   - [Editing]: the animation is stopped and keys edit the script text
//
// Transitions replace the whole mode value. The canvas is reset to zero when
// a pattern is selected with a digit key or an edit is committed with Enter,
// and kept when Escape toggles between the two modes.
//
// A frame is computed into a clone of the canvas by [Advance]; the first
// failing cell aborts the frame, the clone is dropped and the machine falls
// back to Editing with the error.
//
// # Thread Safety
//
// Machine instances are NOT thread-safe. They are owned by the main loop.
package live
