// Package viz draws a running simulation in the terminal.
//
// [Model] is a Bubble Tea model that advances the simulation one tick per
// frame and draws every body and its trail on a Braille [Canvas]. The side
// panel lists each body's distance to the anchor in kilometres.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single tick while paused
//	+/-   - Zoom in/out
//	R     - Reset to initial state
//	?     - Show help overlay
//	Q     - Quit
//
// A failed tick halts the simulation and shows the error in the panel;
// reset to start again.
package viz
