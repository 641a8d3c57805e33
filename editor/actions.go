package editor

import "sync"

type Action uint64

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveStartOfLine
	ActionMoveEndOfLine
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveFirstLine
	ActionMoveLastLine
	ActionInsert
	ActionInsertStartOfLine
	ActionInsertAfter
	ActionInsertEndOfLine
	ActionInsertBelow
	ActionInsertAbove
	ActionDeleteUnderCursor
	ActionDeleteChar
	ActionDeleteLine
	ActionDeleteLineDown
	ActionDeleteLineUp
	ActionDeleteRight
	ActionDeleteLeft
	ActionDeleteWord
	ActionReplace
	ActionYankLine
	ActionPaste
	ActionIndent
	ActionOutdent
	ActionEnableSearch
	ActionSave
	ActionQuit
)

var actionMapper = map[Action]string{
	ActionMoveLeft:          "move_left",
	ActionMoveRight:         "move_right",
	ActionMoveUp:            "move_up",
	ActionMoveDown:          "move_down",
	ActionMoveStartOfLine:   "move_start_of_line",
	ActionMoveEndOfLine:     "move_end_of_line",
	ActionMovePageUp:        "move_page_up",
	ActionMovePageDown:      "move_page_down",
	ActionMoveFirstLine:     "move_first_line",
	ActionMoveLastLine:      "move_last_line",
	ActionInsert:            "insert",
	ActionInsertStartOfLine: "insert_start_of_line",
	ActionInsertAfter:       "insert_after",
	ActionInsertEndOfLine:   "insert_end_of_line",
	ActionInsertBelow:       "insert_below",
	ActionInsertAbove:       "insert_above",
	ActionDeleteUnderCursor: "delete_under_cursor",
	ActionDeleteChar:        "delete_char",
	ActionDeleteLine:        "delete_line",
	ActionDeleteLineDown:    "delete_line_down",
	ActionDeleteLineUp:      "delete_line_up",
	ActionDeleteRight:       "delete_right",
	ActionDeleteLeft:        "delete_left",
	ActionDeleteWord:        "delete_word",
	ActionReplace:           "replace",
	ActionYankLine:          "yank_line",
	ActionPaste:             "paste",
	ActionIndent:            "indent",
	ActionOutdent:           "outdent",
	ActionEnableSearch:      "enable_search",
	ActionSave:              "save",
	ActionQuit:              "quit",
}

var (
	reverseActionMapper     map[string]Action
	reverseActionMapperOnce sync.Once
)

func (a Action) String() string {
	if actionMapper[a] != "" {
		return "editor." + actionMapper[a]
	}
	return "editor.none"
}

func ActionFromString(s string) Action {
	reverseActionMapperOnce.Do(func() {
		reverseActionMapper = make(map[string]Action, len(actionMapper))
		for k, v := range actionMapper {
			reverseActionMapper["editor."+v] = k
		}
	})

	return reverseActionMapper[s]
}
