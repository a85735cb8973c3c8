package app

import "example.com/tabedit/pkg/command"

// confirmState is a pending yes/no question.
type confirmState struct {
	question string
	onYes    func()
}

// askConfirm shows question on the message line; onYes runs if the user
// answers y.
func (r *Runner) askConfirm(question string, onYes func()) {
	r.confirm = confirmState{question: question, onYes: onYes}
	r.mode = command.ModeConfirm
}

func (r *Runner) confirmCommand(cmd command.Command) {
	c := r.confirm
	switch cmd.Kind {
	case command.ConfirmYes:
		r.confirm = confirmState{}
		r.mode = command.ModeEdit
		if c.onYes != nil {
			c.onYes()
		}
	case command.ConfirmNo:
		r.confirm = confirmState{}
		r.mode = command.ModeEdit
		r.message = "Cancelled"
	}
}
