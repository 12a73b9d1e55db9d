// Package engine is the document facade used by the editor.
//
// An Engine owns one open document: the spill store, the edit buffer
// layered over it and the position mapper that turns offsets into screen
// rows and columns. It adds the file level operations the editor needs on
// top of the buffer: open, save, save a range and insert a file at the
// cursor.
//
// # Architecture
//
// The engine is built on three sub-packages:
//
//   - spill: growable backing store over a seekable byte stream, with a
//     512-byte read cache
//   - buffer: split low/high in-memory window over the store
//   - position: line boundaries and display columns
//
// # Thread Safety
//
// An Engine is owned by a single goroutine. None of its operations lock.
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithSpillDir(os.TempDir()))
//	if err != nil {
//		return err
//	}
//	defer e.Close()
//
//	if err := e.Open("notes.txt"); err != nil && !errors.Is(err, fs.ErrNotExist) {
//		return err
//	}
//	_ = e.Buffer().Insert('x')
//	_ = e.Save("notes.txt")
package engine
