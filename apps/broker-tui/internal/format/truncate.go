package format

import (
	"fmt"
	"unicode/utf8"
)

// Truncate は文字列を指定した文字数に切り詰める。
// 切り詰めた場合は末尾に "..." を付加する。
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateMiddle は文字列の中央を省略して切り詰める。
// 登録IDやURLのように前後両方に意味がある値に使う。
// 例: "0123456789" -> "012...789" (maxLen=9)
func TruncateMiddle(s string, maxLen int) string {
	if maxLen <= 5 {
		return Truncate(s, maxLen)
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	remaining := maxLen - 3
	front := remaining / 2
	back := remaining - front
	return string(runes[:front]) + "..." + string(runes[len(runes)-back:])
}

// JoinLimited は先頭limit件を連結し、残り件数を "(+N)" として付加する。
func JoinLimited(items []string, limit int) string {
	if len(items) == 0 {
		return "-"
	}
	out := ""
	for i, item := range items {
		if i == limit {
			return out + fmt.Sprintf(" (+%d)", len(items)-limit)
		}
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
