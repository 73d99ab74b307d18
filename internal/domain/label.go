package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/model"
)

const maxLabelNameLength = 100

// LabelName は検証済みのラベル名。
type LabelName struct {
	value string
}

// NewLabelName はラベル名を検証して構築する。
func NewLabelName(raw string) (LabelName, error) {
	if strings.TrimSpace(raw) == "" {
		return LabelName{}, model.NewValidationError("Label name cannot be empty")
	}
	if len(raw) > maxLabelNameLength {
		return LabelName{}, model.NewValidationError("Label name is too long (max 100 characters)")
	}
	return LabelName{value: raw}, nil
}

// String はラベル名の文字列値を返す。
func (n LabelName) String() string {
	return n.value
}

// Label はリポジトリに付与するラベルエンティティを表す。
// Nameは重複登録を防ぐ自然キー。
type Label struct {
	ID          string
	Name        LabelName
	Description *string
	Color       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntityID はLabelの識別子を返す。
func (l Label) EntityID() string {
	return l.ID
}

// CreateLabelInput はラベル作成の検証済み入力。
type CreateLabelInput struct {
	Name        LabelName
	Description *string
	Color       *string
}

// UpdateLabelInput はラベル更新の検証済み入力。nilのフィールドは変更しない。
type UpdateLabelInput struct {
	ID          string
	Name        *LabelName
	Description *string
	Color       *string
}

// CreateLabel は新しいLabelを生成する。
func CreateLabel(input CreateLabelInput) Outcome[Label] {
	now := time.Now().UTC()
	return Created[Label]{Entity: Label{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
}

// UpdateLabel は既存Labelに部分更新を適用する。IDとCreatedAtは変更されない。
func UpdateLabel(input UpdateLabelInput, existing *Label) Outcome[Label] {
	if existing == nil {
		return NotFound[Label]{ID: input.ID}
	}

	updated := *existing
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Description != nil {
		updated.Description = input.Description
	}
	if input.Color != nil {
		updated.Color = input.Color
	}
	updated.UpdatedAt = time.Now().UTC()

	return Updated[Label]{Entity: updated}
}

// DeleteLabel は削除結果を決定する。
func DeleteLabel(id string, existing *Label) Outcome[Label] {
	if existing == nil {
		return NotFound[Label]{ID: id}
	}
	return Deleted[Label]{ID: id}
}

// FindLabel は取得結果を決定する。
func FindLabel(id string, existing *Label) Outcome[Label] {
	if existing == nil {
		return NotFound[Label]{ID: id}
	}
	return Found[Label]{Entity: *existing}
}

// ListLabels は一覧をそのままListタグに包んで返す。
func ListLabels(labels []Label) Outcome[Label] {
	return List[Label]{Entities: labels}
}
