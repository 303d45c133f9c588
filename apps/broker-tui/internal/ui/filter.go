package ui

import "strings"

// Filter はクライアント側の部分一致フィルタを管理する。
type Filter struct {
	Query  string
	Active bool
}

// SetQuery はフィルタクエリを設定する。空白のみの場合は解除する。
func (f *Filter) SetQuery(query string) {
	f.Query = strings.TrimSpace(query)
	f.Active = f.Query != ""
}

// Clear はフィルタを解除する。
func (f *Filter) Clear() {
	f.Query = ""
	f.Active = false
}

// MatchAny はいずれかの値がクエリを含むかどうかを返す（大文字小文字を区別しない）。
func (f *Filter) MatchAny(values ...string) bool {
	if !f.Active {
		return true
	}
	query := strings.ToLower(f.Query)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// Status はタイトル表示用のフィルタ状態を返す。
func (f *Filter) Status() string {
	if !f.Active {
		return ""
	}
	return "Filter: \"" + f.Query + "\""
}

// FilterItems はフィルタ条件にマッチするアイテムを抽出する。
func FilterItems[T any](items []T, filter *Filter, values func(T) []string) []T {
	if !filter.Active {
		return items
	}
	var result []T
	for _, item := range items {
		if filter.MatchAny(values(item)...) {
			result = append(result, item)
		}
	}
	return result
}
