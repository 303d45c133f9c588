// Package format は画面表示用のフォーマットユーティリティを提供する。
package format

import (
	"fmt"
	"time"
)

// DateTime はUnixミリ秒を "2006-01-02 15:04:05" 形式にフォーマットする。
// 0は未設定として "-" を返す。
func DateTime(unixMilli int64) string {
	if unixMilli == 0 {
		return "-"
	}
	return time.UnixMilli(unixMilli).Local().Format("2006-01-02 15:04:05")
}

// DateTimeShort はUnixミリ秒を "01-02 15:04:05" 形式にフォーマットする。
func DateTimeShort(unixMilli int64) string {
	if unixMilli == 0 {
		return "-"
	}
	return time.UnixMilli(unixMilli).Local().Format("01-02 15:04:05")
}

// Clock は時刻を "15:04:05" 形式にフォーマットする。
func Clock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// Duration は経過時間を人間が読みやすい形式にフォーマットする。
// 例: 3661s -> "1h 1m 1s"
func Duration(d time.Duration) string {
	if d < 0 {
		return "-"
	}

	secs := int64(d / time.Second)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	secs %= 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// Ago は経過時間を "... ago" 形式にフォーマットする。
func Ago(d time.Duration) string {
	if d < time.Second {
		return "just now"
	}
	return Duration(d) + " ago"
}

// Since はUnixミリ秒からnowまでの経過時間をフォーマットする。
func Since(unixMilli int64, now time.Time) string {
	if unixMilli == 0 {
		return "-"
	}
	return Duration(now.Sub(time.UnixMilli(unixMilli)))
}

// Millis はミリ秒を秒単位の文字列にフォーマットする。
// 例: 2500 -> "2.5s"
func Millis(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
