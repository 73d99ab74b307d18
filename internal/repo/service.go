// Package repo はGitHubリポジトリ管理とラベル関連付けのドメインロジックを提供する。
package repo

import (
	"context"
	"fmt"

	"github.com/hitoshi/gitodo/internal/domain"
	"github.com/hitoshi/gitodo/internal/model"
	"github.com/hitoshi/gitodo/internal/repository"
	"github.com/hitoshi/gitodo/internal/workflow"
)

// CreateInput はリポジトリ作成の未検証入力。
type CreateInput struct {
	GithubID        int64
	Name            string
	FullName        string
	Description     *string
	Language        *string
	HTMLURL         string
	StargazersCount int64
}

// UpdateInput はリポジトリ更新の未検証入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Name            *string
	FullName        *string
	Description     *string
	Language        *string
	HTMLURL         *string
	StargazersCount *int64
}

// Service はリポジトリ管理のサービス層。
type Service struct {
	repos      repository.RepoRepository
	labels     repository.LabelRepository
	repoLabels repository.RepoLabelRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	repos repository.RepoRepository,
	labels repository.LabelRepository,
	repoLabels repository.RepoLabelRepository,
) *Service {
	return &Service{
		repos:      repos,
		labels:     labels,
		repoLabels: repoLabels,
	}
}

// Create は新しいリポジトリを登録する。github_idの重複はConflictErrorになる。
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Repository, error) {
	name, err := domain.NewRepositoryName(input.Name)
	if err != nil {
		return nil, err
	}
	fullName, err := domain.NewRepositoryFullName(input.FullName)
	if err != nil {
		return nil, err
	}
	htmlURL, err := domain.NewRepositoryURL(input.HTMLURL)
	if err != nil {
		return nil, err
	}

	outcome := domain.CreateRepository(domain.CreateRepositoryInput{
		GithubID:        input.GithubID,
		Name:            name,
		FullName:        fullName,
		Description:     input.Description,
		Language:        input.Language,
		HTMLURL:         htmlURL,
		StargazersCount: input.StargazersCount,
	})
	if err := workflow.Sync(ctx, s.repos, outcome); err != nil {
		return nil, err
	}

	created := outcome.(domain.Created[domain.Repository])
	return &created.Entity, nil
}

// Update は既存リポジトリに部分更新を適用する。
// github_id、connected_at、created_atは変更されない。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Repository, error) {
	update := domain.UpdateRepositoryInput{
		ID:              id,
		Description:     input.Description,
		Language:        input.Language,
		StargazersCount: input.StargazersCount,
	}
	if input.Name != nil {
		name, err := domain.NewRepositoryName(*input.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if input.FullName != nil {
		fullName, err := domain.NewRepositoryFullName(*input.FullName)
		if err != nil {
			return nil, err
		}
		update.FullName = &fullName
	}
	if input.HTMLURL != nil {
		htmlURL, err := domain.NewRepositoryURL(*input.HTMLURL)
		if err != nil {
			return nil, err
		}
		update.HTMLURL = &htmlURL
	}

	existing, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository: %w", err)
	}

	switch o := domain.UpdateRepository(update, existing).(type) {
	case domain.Updated[domain.Repository]:
		if err := workflow.Sync[domain.Repository](ctx, s.repos, o); err != nil {
			return nil, fmt.Errorf("failed to save repository: %w", err)
		}
		return &o.Entity, nil
	case domain.NotFound[domain.Repository]:
		return nil, model.NewNotFoundError("repository", o.ID)
	default:
		return nil, model.NewDataError("update repository", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Delete はリポジトリを削除する。関連付けはDBのON DELETE CASCADEで削除される。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find repository: %w", err)
	}

	switch o := domain.DeleteRepository(id, existing).(type) {
	case domain.Deleted[domain.Repository]:
		if err := workflow.Sync[domain.Repository](ctx, s.repos, o); err != nil {
			return fmt.Errorf("failed to delete repository: %w", err)
		}
		return nil
	case domain.NotFound[domain.Repository]:
		return model.NewNotFoundError("repository", o.ID)
	default:
		return model.NewDataError("delete repository", fmt.Errorf("unexpected outcome %T", o))
	}
}

// Get は指定IDのリポジトリを取得する。
func (s *Service) Get(ctx context.Context, id string) (*domain.Repository, error) {
	existing, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository: %w", err)
	}

	switch o := domain.FindRepository(id, existing).(type) {
	case domain.Found[domain.Repository]:
		return &o.Entity, nil
	case domain.NotFound[domain.Repository]:
		return nil, model.NewNotFoundError("repository", o.ID)
	default:
		return nil, model.NewDataError("find repository", fmt.Errorf("unexpected outcome %T", o))
	}
}

// List は全リポジトリを作成日時の降順で取得する。
func (s *Service) List(ctx context.Context) ([]domain.Repository, error) {
	repos, err := s.repos.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	list := domain.ListRepositories(repos).(domain.List[domain.Repository])
	return list.Entities, nil
}

// AddLabel はリポジトリにラベルを関連付ける。
// リポジトリが存在しない場合はNotFoundError、ラベルが存在しない場合は
// ValidationError、既に関連付け済みの場合はConflictErrorになる。
func (s *Service) AddLabel(ctx context.Context, repositoryID, labelID string) error {
	repo, err := s.repos.FindByID(ctx, repositoryID)
	if err != nil {
		return fmt.Errorf("failed to find repository: %w", err)
	}
	if repo == nil {
		return model.NewNotFoundError("repository", repositoryID)
	}

	label, err := s.labels.FindByID(ctx, labelID)
	if err != nil {
		return fmt.Errorf("failed to find label: %w", err)
	}
	if label == nil {
		return model.NewValidationError(fmt.Sprintf("Label with ID %s does not exist", labelID))
	}

	return s.repoLabels.Attach(ctx, repositoryID, labelID)
}

// RemoveLabel は関連付けを削除する。関連が存在しない場合はNotFoundErrorになる。
func (s *Service) RemoveLabel(ctx context.Context, repositoryID, labelID string) error {
	return s.repoLabels.Detach(ctx, repositoryID, labelID)
}

// ListLabels はリポジトリに付与されたラベルをname昇順で取得する。
func (s *Service) ListLabels(ctx context.Context, repositoryID string) ([]domain.Label, error) {
	repo, err := s.repos.FindByID(ctx, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository: %w", err)
	}
	if repo == nil {
		return nil, model.NewNotFoundError("repository", repositoryID)
	}

	labels, err := s.repoLabels.ListLabelsByRepository(ctx, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// ListByLabel はラベルが付与されたリポジトリをcreated_at降順で取得する。
func (s *Service) ListByLabel(ctx context.Context, labelID string) ([]domain.Repository, error) {
	label, err := s.labels.FindByID(ctx, labelID)
	if err != nil {
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	if label == nil {
		return nil, model.NewNotFoundError("label", labelID)
	}

	repos, err := s.repoLabels.ListRepositoriesByLabel(ctx, labelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, nil
}
