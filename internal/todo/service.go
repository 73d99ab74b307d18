// Package todo はTodo管理のドメインロジックを提供する。
package todo

import (
	"context"
	"fmt"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
	"github.com/hitoshi/gitodo/internal/repository"
	"github.com/hitoshi/gitodo/internal/workflow"
)

// CreateInput はTodo作成の未検証入力。
type CreateInput struct {
	Title string
}

// UpdateInput はTodo更新の未検証入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title     *string
	Completed *bool
}

// Service はTodo管理のサービス層。
// 入力の検証、ワークフローの実行、結果のストレージ同期を束ねる。
type Service struct {
	todos repository.TodoRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(todos repository.TodoRepository) *Service {
	return &Service{todos: todos}
}

// Create は新しいTodoを作成する。
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Todo, error) {
	title, err := domain.NewTodoTitle(input.Title)
	if err != nil {
		return nil, err
	}

	outcome := domain.CreateTodo(domain.CreateTodoInput{Title: title})
	if err := workflow.Sync(ctx, s.todos, outcome); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	created := outcome.(domain.Created[domain.Todo])
	return &created.Entity, nil
}

// Update は既存Todoに部分更新を適用する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Todo, error) {
	update := domain.UpdateTodoInput{ID: id, Completed: input.Completed}
	if input.Title != nil {
		title, err := domain.NewTodoTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		update.Title = &title
	}

	existing, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	switch o := domain.UpdateTodo(update, existing).(type) {
	case domain.Updated[domain.Todo]:
		if err := workflow.Sync[domain.Todo](ctx, s.todos, o); err != nil {
			return nil, fmt.Errorf("failed to save todo: %w", err)
		}
		return &o.Entity, nil
	case domain.NotFound[domain.Todo]:
		return nil, model.NewNotFoundError("todo", o.ID)
	default:
		return nil, model.NewDataError("update todo", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Delete はTodoを削除する。存在しないIDはNotFoundErrorになる。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find todo: %w", err)
	}

	switch o := domain.DeleteTodo(id, existing).(type) {
	case domain.Deleted[domain.Todo]:
		if err := workflow.Sync[domain.Todo](ctx, s.todos, o); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}
		return nil
	case domain.NotFound[domain.Todo]:
		return model.NewNotFoundError("todo", o.ID)
	default:
		return model.NewDataError("delete todo", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Get は指定IDのTodoを取得する。
func (s *Service) Get(ctx context.Context, id string) (*domain.Todo, error) {
	existing, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	switch o := domain.FindTodo(id, existing).(type) {
	case domain.Found[domain.Todo]:
		return &o.Entity, nil
	case domain.NotFound[domain.Todo]:
		return nil, model.NewNotFoundError("todo", o.ID)
	default:
		return nil, model.NewDataError("find todo", fmt.Errorf("unexpected outcome %T", o))
	}
}

// List は全Todoを作成日時の降順で取得する。
func (s *Service) List(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.todos.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	list := domain.ListTodos(todos).(domain.List[domain.Todo])
	return list.Entities, nil
}
