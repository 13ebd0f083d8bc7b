package feature

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize 把文本切分为 token：转小写，按非字母数字字符切分，
// 丢弃少于两个字符的 token 与停用词。
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || IsStopWord(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
