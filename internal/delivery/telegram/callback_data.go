package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionPlay     = "play"
	actionMode     = "mode"
	actionContinue = "continue"
	actionAnswer   = "answer"
	actionSkip     = "skip"
	actionChange   = "change"
	actionMissed   = "missed"
	actionExport   = "export"
	actionReset    = "reset"
	actionProgress = "progress"
)

// Missed sub-actions.
const (
	missedClear = "clear"
)

// Confirmation sub-actions.
const (
	confirmYes = "confirm"
	confirmNo  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func buildPlayCallback() string {
	return actionPlay
}

func buildModeCallback(m entities.Mode) string {
	return callbackData{Action: actionMode, Params: []string{string(m)}}.encode()
}

func buildContinueCallback() string {
	return actionContinue
}

// buildAnswerCallback carries the question cursor so answers to old questions
// can be told apart from answers to the current one.
func buildAnswerCallback(cursor, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(cursor), strconv.Itoa(option)},
	}.encode()
}

func buildSkipCallback(cursor int) string {
	return callbackData{Action: actionSkip, Params: []string{strconv.Itoa(cursor)}}.encode()
}

func buildChangeModeCallback() string {
	return actionChange
}

// buildMissedCallback, buildMissedClearCallback and buildExportCallback carry
// the mode of the list on screen, so a button pressed after a mode switch still
// acts on that list.
func buildMissedCallback(m entities.Mode) string {
	return callbackData{Action: actionMissed, Params: []string{string(m)}}.encode()
}

func buildMissedClearCallback(m entities.Mode, confirm ...string) string {
	params := append([]string{missedClear, string(m)}, confirm...)
	return callbackData{Action: actionMissed, Params: params}.encode()
}

func buildExportCallback(m entities.Mode) string {
	return callbackData{Action: actionExport, Params: []string{string(m)}}.encode()
}

func buildResetCallback(m entities.Mode, confirm ...string) string {
	params := append([]string{string(m)}, confirm...)
	return callbackData{Action: actionReset, Params: params}.encode()
}

func buildProgressCallback() string {
	return actionProgress
}
