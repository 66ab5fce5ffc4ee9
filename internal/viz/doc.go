// Package viz is the terminal front end: a Bubble Tea program that drives a
// [live.Machine] once per frame and draws its canvas.
//
//   - [Model]: frame pacing, key translation, snapshots and watched files
//   - [RenderCanvas]: coloured glyph rendering of a canvas
//   - Themes selecting the positive/negative cell colours
//
// # Key Bindings
//
//	Esc     - Edit the running script / discard the edit
//	Enter   - Run the edited script
//	0-9     - Switch to a built-in pattern
//	Ctrl+S  - Save a snapshot of the canvas
//	Ctrl+U  - Clear the edit buffer
//	Ctrl+C  - Quit
//
// # Rendering
//
// Each cell is two columns wide. The glyph is picked from eight fill levels
// by min(|value|, 1); zero cells use the background colour, positive cells
// the theme's primary colour and negative cells its secondary colour.
package viz
