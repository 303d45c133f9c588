package ui

import "fmt"

// DefaultPageSize はリスト画面のページサイズ
const DefaultPageSize = 50

// Pagination はページネーション状態を管理する。
type Pagination struct {
	TotalItems  int
	PageSize    int
	CurrentPage int
}

// NewPagination は新しいPaginationを生成する。
func NewPagination(pageSize int) *Pagination {
	return &Pagination{PageSize: pageSize, CurrentPage: 1}
}

// SetTotalItems は総アイテム数を設定し、現在ページを範囲内に収める。
func (p *Pagination) SetTotalItems(total int) {
	p.TotalItems = total
	if p.CurrentPage > p.TotalPages() {
		p.CurrentPage = p.TotalPages()
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
}

// TotalPages は総ページ数を返す。空でも1ページとして扱う。
func (p *Pagination) TotalPages() int {
	if p.TotalItems == 0 {
		return 1
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// NextPage は次のページに移動する。
func (p *Pagination) NextPage() bool {
	if p.CurrentPage < p.TotalPages() {
		p.CurrentPage++
		return true
	}
	return false
}

// PrevPage は前のページに移動する。
func (p *Pagination) PrevPage() bool {
	if p.CurrentPage > 1 {
		p.CurrentPage--
		return true
	}
	return false
}

// FirstPage は最初のページに移動する。
func (p *Pagination) FirstPage() {
	p.CurrentPage = 1
}

// PageItems はスライスから現在のページのアイテムを取得する。
func PageItems[T any](items []T, p *Pagination) []T {
	p.SetTotalItems(len(items))
	start := (p.CurrentPage - 1) * p.PageSize
	end := min(start+p.PageSize, len(items))
	if start >= len(items) {
		return nil
	}
	return items[start:end]
}

// Info はページ情報の文字列を生成する。
func (p *Pagination) Info() string {
	if p.TotalItems == 0 {
		return "No items"
	}
	start := (p.CurrentPage-1)*p.PageSize + 1
	end := min(p.CurrentPage*p.PageSize, p.TotalItems)
	return fmt.Sprintf("%d-%d of %d (Page %d/%d)", start, end, p.TotalItems, p.CurrentPage, p.TotalPages())
}
