// Package store はBroker TUIのValkey読み取り層を提供する。
// キーはクラウドブローカーが書き込むものと同一で、TUIからは書き込まない。
package store

// キープレフィックス定義
const (
	// PrefixRegistration はTPAサーバー登録キーのプレフィックス
	PrefixRegistration = "tpareg:"
	// PrefixRegistrationPkg はパッケージ別登録インデックスのプレフィックス
	PrefixRegistrationPkg = "idx:tpareg:pkg:"
	// KeyRegistrationAll は全登録IDの集合
	KeyRegistrationAll = "idx:tpareg:all"
	// PrefixApp はアプリカタログキーのプレフィックス
	PrefixApp = "app:"
)

// RegistrationKey はTPAサーバー登録のValkeyキーを生成する。
func RegistrationKey(id string) string {
	return PrefixRegistration + id
}

// RegistrationPackageKey はパッケージ別登録インデックスのキーを生成する。
func RegistrationPackageKey(packageName string) string {
	return PrefixRegistrationPkg + packageName
}

// AppKey はアプリカタログのValkeyキーを生成する。
func AppKey(packageName string) string {
	return PrefixApp + packageName
}
