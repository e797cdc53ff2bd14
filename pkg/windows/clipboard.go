package windows

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipOnce sync.Once
	clipErr  error
)

// copyImage puts PNG bytes on the system clipboard.
func copyImage(png []byte) (err error) {
	clipOnce.Do(func() {
		clipErr = clipboard.Init()
	})
	if clipErr != nil {
		return fmt.Errorf("clipboard not available: %w", clipErr)
	}
	if len(png) == 0 {
		return errors.New("nothing to copy")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
