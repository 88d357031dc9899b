package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "input" or "limit").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_input":
			tmpl = "入力からスキーマを推論できません - 引数は有効な{input}ではありません"
		case "not_implemented":
			tmpl = "入力からスキーマを推論できません - {input}からの推論は未実装です"
		case "cyclic_structure":
			tmpl = "循環参照を含む構造です"
		case "max_depth_exceeded":
			tmpl = "最大深度{limit}を超えました"
		case "unknown_format":
			tmpl = "未知の入力形式です: {format}"
		}
	default: // "en"
		switch code {
		case "invalid_input":
			tmpl = "unable to infer schema from provided input - argument is not a valid {input}"
		case "not_implemented":
			tmpl = "unable to infer schema from provided input - inference from {input} is not yet implemented"
		case "cyclic_structure":
			tmpl = "cyclic structure"
		case "max_depth_exceeded":
			tmpl = "max depth {limit} exceeded"
		case "unknown_format":
			tmpl = "unknown input format: {format}"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {key} placeholders from data; unknown keys are left as is.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
