package quiz

// gradeResultMsg is sent when the open-answer grading call returns.
type gradeResultMsg struct {
	Score int
	Err   error
}

// hintMsg is sent when hint generation returns.
type hintMsg struct {
	Text string
	Err  error
}

// explanationMsg is sent when explanation generation returns.
type explanationMsg struct {
	Text string
	Err  error
}
