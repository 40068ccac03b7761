// Package scale provides the easing arithmetic behind the fold animation.
//
// Every animated quantity is derived from a single progress value x that
// sweeps 0 -> 1 (or back). The helpers split that value into sequential
// phases and compute the per-tick increment:
//
//   - [DivideScale]: the i-th of n sequential 0 -> 1 ramps inside x
//   - [Easing.ScaleFactor]: which side of the easing threshold x is on
//   - [Easing.MirrorValue]: the rate for that side
//   - [Easing.UpdateValue]: the signed delta added to x each tick
//
// # Example
//
//	e := scale.Easing{Gap: 0.05, Div: 0.51}
//	x += e.UpdateValue(x, dir, 8, 2)
//	fold := scale.DivideScale(x, 0, 2)
//	lift := scale.DivideScale(x, 1, 2)
//
// All functions are pure and operate in float32.
package scale
