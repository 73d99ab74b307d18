// Package domain は検証済み値オブジェクトとエンティティの純粋なワークフロー関数を定義する。
// この層はI/Oを一切行わず、同一入力に対して常に同じタグの結果を返す。
package domain

// Entity は永続化対象エンティティの共通インターフェース。
type Entity interface {
	// EntityID はエンティティの不変な識別子を返す。
	EntityID() string
}

// Outcome は1回のエンティティ操作の結果を表すタグ付きユニオン。
// タグはCreated / Updated / Deleted / Found / NotFound / Listの6種類で、
// 1回の呼び出しで有効になるタグは必ず1つ。レスポンスへの変換境界では
// type switchで全タグを網羅的に処理する。
type Outcome[E Entity] interface {
	outcome()
}

// Created は新規エンティティが生成されたことを表す。
type Created[E Entity] struct {
	Entity E
}

// Updated は既存エンティティが更新されたことを表す。
type Updated[E Entity] struct {
	Entity E
}

// Deleted は指定IDのエンティティが削除されたことを表す。
type Deleted[E Entity] struct {
	ID string
}

// Found は指定IDのエンティティが見つかったことを表す。
type Found[E Entity] struct {
	Entity E
}

// NotFound は指定IDのエンティティが存在しなかったことを表す。
// IDには要求されたIDをそのまま保持する。
type NotFound[E Entity] struct {
	ID string
}

// List はエンティティ一覧の取得結果を表す。順序は呼び出し側の責務。
type List[E Entity] struct {
	Entities []E
}

func (Created[E]) outcome()  {}
func (Updated[E]) outcome()  {}
func (Deleted[E]) outcome()  {}
func (Found[E]) outcome()    {}
func (NotFound[E]) outcome() {}
func (List[E]) outcome()     {}
