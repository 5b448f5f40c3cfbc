// Package screen hosts an element tree.
//
// A Screen is the window collaborator every element talks to: it owns the
// root, the single focused element, the asset manager and the layout
// pipeline. The host drives it with Frame once per tick and feeds keys
// through HandleKey. Both run on the UI thread; other goroutines hand work
// over with Post.
//
//	s := screen.New(screen.Options{Width: 1920, Height: 1080})
//	s.SetRoot(root)
//	s.Show()
//	list := s.Frame(time.Now())
package screen
