// Package ration projects a cyclic layout of rations onto a trip. Ration i of a
// layout with L rations is eaten on trip days i, i+L, i+2L, ... (0-indexed), so
// the package answers how many trip days realize each ration.
package ration
