// Package i18n localizes schema issue messages.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes. data provides
// optional values substituted for {key} placeholders.
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type": "expected {expected}",
		"required":     "required",
		"unknown_key":  "unrecognized key",
		"too_small":    "must be greater than or equal to {min}",
		"too_big":      "must be less than or equal to {max}",
		"too_short":    "must contain at least {min} element(s)",
		"too_long":     "must contain at most {max} element(s)",
		"parse_error":  "parse error",
	},
	"ja": {
		"invalid_type": "{expected} が必要です",
		"required":     "必須です",
		"unknown_key":  "未知のキーです",
		"too_small":    "{min} 以上である必要があります",
		"too_big":      "{max} 以下である必要があります",
		"too_short":    "{min} 個以上必要です",
		"too_long":     "{max} 個以下である必要があります",
		"parse_error":  "解析エラー",
	},
}

// dictTranslator is the built-in dictionary-based Translator. Codes missing
// from the language fall back to English, then to the code itself.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		if msg, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	if len(data) == 0 {
		return strings.NewReplacer("{expected}", "value").Replace(msg)
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu      sync.RWMutex
	current Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja"). Unknown
// languages select English.
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation. nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	current = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := current
	mu.RUnlock()
	return tr.Message(code, data)
}
