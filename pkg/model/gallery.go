package model

// GalleryPhoto はユーザーのギャラリーに保存された撮影結果。
// Valkeyキー: gallery:{UserID}（リスト、JSON要素）
type GalleryPhoto struct {
	RequestID string `json:"requestId"`
	UserID    string `json:"userId"`
	Origin    string `json:"origin"` // "system" またはパッケージ名
	PhotoURL  string `json:"photoUrl"`
	MimeType  string `json:"mimeType"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"createdAt"` // Unixミリ秒
}
