// Package rhythm tracks the phase of every polyrhythm voice inside a shared beat cycle.
//
// A Scheduler is reset with a tempo and a list of ratios and then advanced once per
// frame with the real elapsed time. Voice i fires each time the cycle position passes
// period/ratio*repeat; the scheduler itself never touches audio or graphics.
package rhythm
