// Package command resolves canonical input events into editor commands.
package command

import "example.com/tabedit/pkg/keymap"

// Mode is the interaction mode an event is dispatched in.
type Mode int

const (
	ModeEdit Mode = iota
	// ModeFinder is the fuzzy file finder overlay.
	ModeFinder
	// ModePrompt is a single line of input such as find or save-as.
	ModePrompt
	// ModeConfirm waits for a yes/no answer.
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeFinder:
		return "finder"
	case ModePrompt:
		return "prompt"
	case ModeConfirm:
		return "confirm"
	default:
		return "edit"
	}
}

// Kind identifies what a Command does.
type Kind int

const (
	None Kind = iota
	// Action runs a named keymap action such as save or quit.
	Action
	Move
	Delete
	Insert
	Newline
	Click
	Drag
	Release
	Scroll
	SelectWordAt
	SelectLineAt
	PromptInput
	PromptBackspace
	PromptAccept
	PromptCancel
	PromptMove
	ConfirmYes
	ConfirmNo
)

var kindNames = [...]string{
	None:            "none",
	Action:          "action",
	Move:            "move",
	Delete:          "delete",
	Insert:          "insert",
	Newline:         "newline",
	Click:           "click",
	Drag:            "drag",
	Release:         "release",
	Scroll:          "scroll",
	SelectWordAt:    "select-word-at",
	SelectLineAt:    "select-line-at",
	PromptInput:     "prompt-input",
	PromptBackspace: "prompt-backspace",
	PromptAccept:    "prompt-accept",
	PromptCancel:    "prompt-cancel",
	PromptMove:      "prompt-move",
	ConfirmYes:      "confirm-yes",
	ConfirmNo:       "confirm-no",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Unit is the distance a Move or Delete covers.
type Unit int

const (
	UnitChar Unit = iota
	UnitWord
	UnitLine
	UnitPage
	UnitLineEdge
	UnitDoc
)

// Command is a resolved editor command. Only the fields relevant to Kind
// are set.
type Command struct {
	Kind       Kind
	Action     keymap.Action
	Unit       Unit
	Dir        int
	Extend     bool
	Text       string
	Row        int
	Col        int
	Delta      int
	Horizontal bool
}

// Name is a short label for logging.
func (c Command) Name() string {
	if c.Kind == Action {
		return string(c.Action)
	}
	return c.Kind.String()
}
