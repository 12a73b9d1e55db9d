// Package renderer paints the document onto a character-cell terminal.
//
// The screen is split into text rows, a status line and a menu line:
//
//	row 0 .. rows-3   document text starting at the page start
//	row rows-2        status line (file name, length, messages)
//	row rows-1        menu line (command menu or mode banner)
//
// Painting is incremental. The Screen remembers the terminal cursor and,
// for every row, the rightmost column that may hold visible text, so that
// clearing the rest of a line is only sent when something is there to
// clear. Keeping the cursor visible either scrolls the text rows by one
// line with a scroll region or repaints the whole page around the cursor.
//
// All row and column arithmetic goes through position.Mapper.
package renderer
