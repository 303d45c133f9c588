package store

// Valkeyキープレフィックス
const (
	KeyPrefixApp             = "app:"            // アプリカタログ（CRUD層が書き込む）
	KeyPrefixUserApps        = "idx:user:apps:"  // ユーザーのインストール済みアプリ集合
	KeyPrefixRegistration    = "tpareg:"         // TPAサーバー登録
	KeyPrefixRegistrationPkg = "idx:tpareg:pkg:" // パッケージ名 → 登録ID集合
	KeyRegistrationAll       = "idx:tpareg:all"  // 全登録ID集合
	KeyPrefixGallery         = "gallery:"        // ユーザーのギャラリー（リスト）
	KeyPrefixPhoto           = "photo:"          // アップロード済み写真
	KeyPrefixSettings        = "settings:"       // ユーザー×アプリの設定JSON
)

func settingsKey(userID, packageName string) string {
	return KeyPrefixSettings + userID + ":" + packageName
}
