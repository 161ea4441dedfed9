package reviewboard

import "github.com/anjiri1684/review_board/models"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message for the user. Key is a catalog key.
type Notice struct {
	Level Level  `json:"level"`
	Key   string `json:"key"`
}

// View is the state of one review board screen. An empty Redirect means the
// view is gated and may be rendered.
type View struct {
	User       *models.User    `json:"user,omitempty"`
	Reviews    []models.Review `json:"reviews"`
	Loading    bool            `json:"loading"`
	DialogOpen bool            `json:"dialog_open"`
	Form       ReviewInput     `json:"-"`
	Notices    []Notice        `json:"notices,omitempty"`
	Redirect   string          `json:"-"`
}

func (v *View) Gated() bool {
	return v.Redirect == "" && v.User != nil
}

func (v *View) notify(level Level, key string) {
	v.Notices = append(v.Notices, Notice{Level: level, Key: key})
}
