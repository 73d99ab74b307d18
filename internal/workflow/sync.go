// Package workflow はワークフロー結果をストレージへ同期する。
// ドメイン層が決定したタグに応じた最小限の書き込みだけを行い、
// 読み取り系のタグでは一切書き込まない。
package workflow

import (
	"context"

	"github.com/hitoshi/gitodo/internal/domain"
)

// Store は同期に必要な永続化操作のインターフェース。
// repositoryパッケージの各リポジトリがこれを満たす。
type Store[E domain.Entity] interface {
	// FindByID は指定IDのエンティティを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*E, error)
	// Insert はエンティティを新規挿入する。
	Insert(ctx context.Context, entity E) error
	// Update は既存エンティティを上書きする。
	Update(ctx context.Context, entity E) error
	// Delete は指定IDのエンティティを削除する。対象が0行の場合はNotFoundErrorを返す。
	Delete(ctx context.Context, id string) error
}

// Sync はワークフロー結果が示すストレージ操作を実行する。
// Created / Updatedは存在確認を行ってからINSERTまたはUPDATEを選択する
// （盲目的なUPSERTではなく、書き込み前に必ず存在確認が入る）。
// Deletedは削除を実行し、対象0行はストア側でNotFoundErrorとして報告される。
// Found / NotFound / Listは書き込みを行わない。
func Sync[E domain.Entity](ctx context.Context, store Store[E], outcome domain.Outcome[E]) error {
	switch o := outcome.(type) {
	case domain.Created[E]:
		return save(ctx, store, o.Entity)
	case domain.Updated[E]:
		return save(ctx, store, o.Entity)
	case domain.Deleted[E]:
		return store.Delete(ctx, o.ID)
	default:
		return nil
	}
}

// save は存在確認の結果に応じてINSERTかUPDATEを選択する。
func save[E domain.Entity](ctx context.Context, store Store[E], entity E) error {
	existing, err := store.FindByID(ctx, entity.EntityID())
	if err != nil {
		return err
	}
	if existing == nil {
		return store.Insert(ctx, entity)
	}
	return store.Update(ctx, entity)
}
