package i18n

import "sync"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "depth").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_state":
			return "呼び出し順序が不正です"
		case "depth_exceeded":
			return "ネストの深さが上限を超えました"
		case "unterminated_structure":
			return "閉じられていない構造があります"
		case "unsupported":
			return "サポートされていない値です"
		case "custom":
			return "ストリームエラー"
		}
	default: // "en"
		switch code {
		case "invalid_state":
			return "invalid call for the current nesting state"
		case "depth_exceeded":
			return "nesting depth exceeded"
		case "unterminated_structure":
			return "unterminated sequence or map"
		case "unsupported":
			return "unsupported value"
		case "custom":
			return "stream error"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
