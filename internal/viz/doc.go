// Package viz hosts the fold animation in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live view; taps trigger the sequencer, TickMsg drives it
//   - [Canvas]: Braille-based dot canvas the node segments are drawn on
//   - Theme selection with the configured colours plus 3 built-in schemes
//
// # Key Bindings
//
//	Space/Enter - Tap
//	Click       - Tap
//	R           - Reset every node to folded
//	T           - Cycle color themes
//	?           - Show help overlay
//	Q           - Quit
//
// Ticks are only scheduled while a node is animating; once the sequencer
// reports a completion the model stops asking for TickMsg until the next tap.
package viz
