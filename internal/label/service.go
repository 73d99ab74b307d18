// Package label はラベル管理のドメインロジックを提供する。
package label

import (
	"context"
	"fmt"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
	"github.com/hitoshi/gitodo/internal/repository"
	"github.com/hitoshi/gitodo/internal/workflow"
)

// CreateInput はラベル作成の未検証入力。
type CreateInput struct {
	Name        string
	Description *string
	Color       *string
}

// UpdateInput はラベル更新の未検証入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name        *string
	Description *string
	Color       *string
}

// Service はラベル管理のサービス層。
type Service struct {
	labels repository.LabelRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(labels repository.LabelRepository) *Service {
	return &Service{labels: labels}
}

// Create は新しいラベルを作成する。nameの重複はConflictErrorになる。
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Label, error) {
	name, err := domain.NewLabelName(input.Name)
	if err != nil {
		return nil, err
	}

	outcome := domain.CreateLabel(domain.CreateLabelInput{
		Name:        name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err := workflow.Sync(ctx, s.labels, outcome); err != nil {
		return nil, err
	}

	created := outcome.(domain.Created[domain.Label])
	return &created.Entity, nil
}

// Update は既存ラベルに部分更新を適用する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Label, error) {
	update := domain.UpdateLabelInput{
		ID:          id,
		Description: input.Description,
		Color:       input.Color,
	}
	if input.Name != nil {
		name, err := domain.NewLabelName(*input.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}

	existing, err := s.labels.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	switch o := domain.UpdateLabel(update, existing).(type) {
	case domain.Updated[domain.Label]:
		if err := workflow.Sync[domain.Label](ctx, s.labels, o); err != nil {
			return nil, fmt.Errorf("failed to save label: %w", err)
		}
		return &o.Entity, nil
	case domain.NotFound[domain.Label]:
		return nil, model.NewNotFoundError("label", o.ID)
	default:
		return nil, model.NewDataError("update label", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Delete はラベルを削除する。関連付けはDBのON DELETE CASCADEで削除される。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.labels.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find label: %w", err)
	}

	switch o := domain.DeleteLabel(id, existing).(type) {
	case domain.Deleted[domain.Label]:
		if err := workflow.Sync[domain.Label](ctx, s.labels, o); err != nil {
			return fmt.Errorf("failed to delete label: %w", err)
		}
		return nil
	case domain.NotFound[domain.Label]:
		return model.NewNotFoundError("label", o.ID)
	default:
		return model.NewDataError("delete label", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Get は指定IDのラベルを取得する。
func (s *Service) Get(ctx context.Context, id string) (*domain.Label, error) {
	existing, err := s.labels.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	switch o := domain.FindLabel(id, existing).(type) {
	case domain.Found[domain.Label]:
		return &o.Entity, nil
	case domain.NotFound[domain.Label]:
		return nil, model.NewNotFoundError("label", o.ID)
	default:
		return nil, model.NewDataError("find label", fmt.Errorf("unexpected outcome %T", o))
	}
}

// List は全ラベルをname昇順で取得する。
func (s *Service) List(ctx context.Context) ([]domain.Label, error) {
	labels, err := s.labels.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	list := domain.ListLabels(labels).(domain.List[domain.Label])
	return list.Entities, nil
}
