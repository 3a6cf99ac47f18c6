// Package ring provides a reactive model of a tonal ring: a keyboard
// and a stack of interval-set structures that can be rotated,
// anchored to one another, merged, and played.
//
// The reactive kernel is in package 'cell', and the stack itself is in
// 'stack'.  Package 'workspace' wires everything together, and
// 'cmd/ringctl' drives a workspace from the command line.
package ring
