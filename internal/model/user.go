// Package model はドメインモデルと閉じたエラー分類を定義する。
package model

import "time"

// User はGitHub OAuthでログインしたサービス利用ユーザーを表す。
// GithubIDが外部IdPとの紐付けキーであり、初回ログイン時に作成され、
// 以降のログインではプロフィール項目のみが上書きされる。
// ID、GithubID、CreatedAtは作成後に変更されない。
type User struct {
	ID          string
	GithubID    int64
	Username    string
	Name        *string
	Email       *string
	AvatarURL   *string
	AccessToken string // GitHub APIアクセス用のシークレット。レスポンスには含めない。
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
