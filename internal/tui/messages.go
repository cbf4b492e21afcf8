package tui

// exportedMsg reports a file written by an export command.
type exportedMsg struct {
	kind string
	path string
}

// publishedMsg reports a slice written to Google Sheets.
type publishedMsg struct {
	url  string
	rows int
}

// errMsg carries a failed command back to the status line.
type errMsg struct {
	err error
}

// clearStatusMsg clears the status line if it still shows the message with
// the given sequence number.
type clearStatusMsg struct {
	seq int
}
