package ui

// FileDoneMsg reports one completed file attempt from the batch, in
// completion order.
type FileDoneMsg struct {
	File string
	Err  error
}

// AllDoneMsg indicates the whole batch has finished.
type AllDoneMsg struct{}
