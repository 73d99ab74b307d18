// Package model はドメインモデルと閉じたエラー分類を定義する。
package model

import "fmt"

// ValidationError は入力値が検証ルールに違反したことを表す。
// メッセージはそのままクライアントに返却できる。HTTP 400に対応する。
type ValidationError struct {
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError は指定IDのエンティティが存在しないことを表す。HTTP 404に対応する。
type NotFoundError struct {
	Resource string
	ID       string
}

// Error はerrorインターフェースを実装する。
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError はNotFoundErrorを生成する。
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError は自然キーの重複を表す。HTTP 400に対応し、
// メッセージには重複の内容を含める。
type ConflictError struct {
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError はConflictErrorを生成する。
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// AuthError は認証の失敗を表す。HTTP 401に対応する。
// クライアントに返すメッセージは意図的に一般的なものとし、
// 原因の詳細はErrに保持してログにのみ出力する。
type AuthError struct {
	Message string
	Err     error
}

// Error はerrorインターフェースを実装する。
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap はラップされた原因エラーを返す。
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError はAuthErrorを生成する。
func NewAuthError(message string, err error) *AuthError {
	return &AuthError{Message: message, Err: err}
}

// DataError はストレージI/Oの失敗、または保存済みデータの破損を表す。
// 「見つからない」とは区別される。HTTP 500に対応し、詳細はログにのみ出力する。
type DataError struct {
	Op  string
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s: %v", e.Op, e.Err)
}

// Unwrap はラップされた原因エラーを返す。
func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError はDataErrorを生成する。
func NewDataError(op string, err error) *DataError {
	return &DataError{Op: op, Err: err}
}
