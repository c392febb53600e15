package cli

// user-facing strings of the interactive editor
var messages = map[string]map[string]string{
	"en": {
		"title":           "Lyrics Editor",
		"prompt":          "lylvey> ",
		"empty":           "No lyrics available",
		"until_end":       "Until End",
		"new_confirm":     "Do you want to delete current lyrics and start new? Run `new -y` to confirm.",
		"nothing_undo":    "Nothing to undo",
		"nothing_redo":    "Nothing to redo",
		"no_media":        "No media loaded",
		"unknown_command": "Unknown command. Type `help` for the list of commands.",
		"bye":             "Bye",
	},
	"ko": {
		"title":           "가사 편집기",
		"prompt":          "lylvey> ",
		"empty":           "가사가 없습니다",
		"until_end":       "끝까지",
		"new_confirm":     "현재 가사를 삭제하고 새로 시작하시겠습니까? 확인하려면 `new -y`를 입력하세요.",
		"nothing_undo":    "실행 취소할 내용이 없습니다",
		"nothing_redo":    "다시 실행할 내용이 없습니다",
		"no_media":        "불러온 미디어가 없습니다",
		"unknown_command": "알 수 없는 명령입니다. `help`로 명령 목록을 확인하세요.",
		"bye":             "안녕히 가세요",
	},
}

// msg looks key up in the configured language, falling back to English.
func msg(key string) string {
	lang := "en"
	if cfg != nil {
		lang = cfg.Language
	}
	if text, ok := messages[lang][key]; ok {
		return text
	}
	return messages["en"][key]
}
