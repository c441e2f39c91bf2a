// Package gui shows a running simulation in a raylib window.
//
// The window is 1200×800 at 60 frames per second and advances the
// simulation one tick per frame. Bodies are drawn as coloured discs with
// their trails; the + and - buttons at the bottom centre and the mouse
// wheel change the zoom between -3 and +3. Space pauses, R resets and Esc
// or closing the window quits.
package gui
