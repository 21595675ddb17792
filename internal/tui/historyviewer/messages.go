package historyviewer

import (
	"github.com/msto63/mRW/internal/calculator"
)

// Loader reads the history shown by the browser.
type Loader func() ([]calculator.Calculation, error)

// historyLoadedMsg is sent when the history has been read
type historyLoadedMsg struct {
	entries []calculator.Calculation
	err     error
}
