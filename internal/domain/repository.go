package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/model"
)

const (
	maxRepositoryNameLength     = 100
	maxRepositoryFullNameLength = 200
)

// RepositoryName は検証済みのリポジトリ名。
type RepositoryName struct {
	value string
}

// NewRepositoryName はリポジトリ名を検証して構築する。
func NewRepositoryName(raw string) (RepositoryName, error) {
	if strings.TrimSpace(raw) == "" {
		return RepositoryName{}, model.NewValidationError("Repository name cannot be empty")
	}
	if len(raw) > maxRepositoryNameLength {
		return RepositoryName{}, model.NewValidationError("Repository name is too long (max 100 characters)")
	}
	return RepositoryName{value: raw}, nil
}

// String はリポジトリ名の文字列値を返す。
func (n RepositoryName) String() string {
	return n.value
}

// RepositoryFullName は検証済みの「owner/repo」形式のフルネーム。
type RepositoryFullName struct {
	value string
}

// NewRepositoryFullName はフルネームを検証して構築する。
// 「owner/repo」形式であるため`/`区切りを必須とする。
func NewRepositoryFullName(raw string) (RepositoryFullName, error) {
	if strings.TrimSpace(raw) == "" {
		return RepositoryFullName{}, model.NewValidationError("Repository full name cannot be empty")
	}
	if len(raw) > maxRepositoryFullNameLength {
		return RepositoryFullName{}, model.NewValidationError("Repository full name is too long (max 200 characters)")
	}
	if !strings.Contains(raw, "/") {
		return RepositoryFullName{}, model.NewValidationError("Repository full name must be in format 'owner/repo'")
	}
	return RepositoryFullName{value: raw}, nil
}

// String はフルネームの文字列値を返す。
func (n RepositoryFullName) String() string {
	return n.value
}

// RepositoryURL は検証済みのリポジトリURL。
type RepositoryURL struct {
	value string
}

// NewRepositoryURL はURLを検証して構築する。https://で始まらないURLは拒否する。
func NewRepositoryURL(raw string) (RepositoryURL, error) {
	if strings.TrimSpace(raw) == "" {
		return RepositoryURL{}, model.NewValidationError("Repository URL cannot be empty")
	}
	if !strings.HasPrefix(raw, "https://") {
		return RepositoryURL{}, model.NewValidationError("Repository URL must be a valid HTTPS URL")
	}
	return RepositoryURL{value: raw}, nil
}

// String はURLの文字列値を返す。
func (u RepositoryURL) String() string {
	return u.value
}

// Repository はGitHubリポジトリエンティティを表す。
// GithubIDはGitHub側の数値IDで、重複登録を防ぐ自然キー。
type Repository struct {
	ID              string
	GithubID        int64
	Name            RepositoryName
	FullName        RepositoryFullName
	Description     *string
	Language        *string
	HTMLURL         RepositoryURL
	StargazersCount int64
	ConnectedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EntityID はRepositoryの識別子を返す。
func (r Repository) EntityID() string {
	return r.ID
}

// CreateRepositoryInput はリポジトリ作成の検証済み入力。
type CreateRepositoryInput struct {
	GithubID        int64
	Name            RepositoryName
	FullName        RepositoryFullName
	Description     *string
	Language        *string
	HTMLURL         RepositoryURL
	StargazersCount int64
}

// UpdateRepositoryInput はリポジトリ更新の検証済み入力。nilのフィールドは変更しない。
// GithubIDは作成後に変更できないため含まれない。
type UpdateRepositoryInput struct {
	ID              string
	Name            *RepositoryName
	FullName        *RepositoryFullName
	Description     *string
	Language        *string
	HTMLURL         *RepositoryURL
	StargazersCount *int64
}

// CreateRepository は新しいRepositoryを生成する。
func CreateRepository(input CreateRepositoryInput) Outcome[Repository] {
	now := time.Now().UTC()
	return Created[Repository]{Entity: Repository{
		ID:              uuid.New().String(),
		GithubID:        input.GithubID,
		Name:            input.Name,
		FullName:        input.FullName,
		Description:     input.Description,
		Language:        input.Language,
		HTMLURL:         input.HTMLURL,
		StargazersCount: input.StargazersCount,
		ConnectedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}}
}

// UpdateRepository は既存Repositoryに部分更新を適用する。
// ID、GithubID、ConnectedAt、CreatedAtは変更されない。
func UpdateRepository(input UpdateRepositoryInput, existing *Repository) Outcome[Repository] {
	if existing == nil {
		return NotFound[Repository]{ID: input.ID}
	}

	updated := *existing
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.FullName != nil {
		updated.FullName = *input.FullName
	}
	if input.Description != nil {
		updated.Description = input.Description
	}
	if input.Language != nil {
		updated.Language = input.Language
	}
	if input.HTMLURL != nil {
		updated.HTMLURL = *input.HTMLURL
	}
	if input.StargazersCount != nil {
		updated.StargazersCount = *input.StargazersCount
	}
	updated.UpdatedAt = time.Now().UTC()

	return Updated[Repository]{Entity: updated}
}

// DeleteRepository は削除結果を決定する。
func DeleteRepository(id string, existing *Repository) Outcome[Repository] {
	if existing == nil {
		return NotFound[Repository]{ID: id}
	}
	return Deleted[Repository]{ID: id}
}

// FindRepository は取得結果を決定する。
func FindRepository(id string, existing *Repository) Outcome[Repository] {
	if existing == nil {
		return NotFound[Repository]{ID: id}
	}
	return Found[Repository]{Entity: *existing}
}

// ListRepositories は一覧をそのままListタグに包んで返す。
func ListRepositories(repositories []Repository) Outcome[Repository] {
	return List[Repository]{Entities: repositories}
}
