// Package buffer implements the edit buffer: a fixed-size in-memory window
// split at the cursor into a low and a high region, with the rest of the
// document spilled to a spill.Store on either side.
//
// Editing happens at the cursor. Inserting into a full window spills half
// of the larger region; moving the cursor either shuffles bytes across the
// window or, for long moves, flushes the window and copies bytes between
// the spill extents. Deleting bytes that are not resident only adjusts the
// extent bookkeeping.
package buffer
