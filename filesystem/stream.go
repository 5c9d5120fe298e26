package filesystem

import "github.com/boyter/gocodewalker"

// StreamFiles starts a gitignore-aware file walker and returns a channel of files.
// Walk errors are passed to onError; the walk continues while it returns true.
func StreamFiles(root string, onError func(error) bool) <-chan *gocodewalker.File {
	fileListQueue := make(chan *gocodewalker.File, 100)
	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	if onError != nil {
		fileWalker.SetErrorHandler(onError)
	}

	go func() {
		_ = fileWalker.Start()
	}()

	return fileListQueue
}
