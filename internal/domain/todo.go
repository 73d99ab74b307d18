package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/gitodo/internal/model"
)

const maxTodoTitleLength = 100

// TodoTitle は検証済みのTodoタイトル。NewTodoTitle経由でのみ構築できるため、
// この型の値が存在すること自体が検証済みであることを保証する。
type TodoTitle struct {
	value string
}

// NewTodoTitle はタイトル文字列を検証してTodoTitleを構築する。
// トリム後に空、または100文字を超える場合はValidationErrorを返す。
// 保持する値は入力そのままであり、トリムによる変形は行わない。
func NewTodoTitle(raw string) (TodoTitle, error) {
	if strings.TrimSpace(raw) == "" {
		return TodoTitle{}, model.NewValidationError("Title cannot be empty")
	}
	if len(raw) > maxTodoTitleLength {
		return TodoTitle{}, model.NewValidationError("Title is too long (max 100 characters)")
	}
	return TodoTitle{value: raw}, nil
}

// String はタイトルの文字列値を返す。
func (t TodoTitle) String() string {
	return t.value
}

// Todo はTodoエンティティを表す。
type Todo struct {
	ID        string
	Title     TodoTitle
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityID はTodoの識別子を返す。
func (t Todo) EntityID() string {
	return t.ID
}

// CreateTodoInput はTodo作成の検証済み入力。
type CreateTodoInput struct {
	Title TodoTitle
}

// UpdateTodoInput はTodo更新の検証済み入力。nilのフィールドは変更しない。
type UpdateTodoInput struct {
	ID        string
	Title     *TodoTitle
	Completed *bool
}

// CreateTodo は新しいTodoを生成する。IDは新規UUID、completedはfalse、
// created_atとupdated_atは同一の現在時刻になる。
func CreateTodo(input CreateTodoInput) Outcome[Todo] {
	now := time.Now().UTC()
	return Created[Todo]{Entity: Todo{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// UpdateTodo は既存Todoに部分更新を適用する。existingがnilの場合は
// 要求されたIDを保持したNotFoundを返し、エンティティを捏造しない。
// 指定されたフィールドのみ上書きし、IDとcreated_atは変更しない。
// updated_atは内容の変更有無にかかわらず現在時刻に更新される。
func UpdateTodo(input UpdateTodoInput, existing *Todo) Outcome[Todo] {
	if existing == nil {
		return NotFound[Todo]{ID: input.ID}
	}

	updated := *existing
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Completed != nil {
		updated.Completed = *input.Completed
	}
	updated.UpdatedAt = time.Now().UTC()

	return Updated[Todo]{Entity: updated}
}

// DeleteTodo は削除結果を決定する。existingがnilの場合はNotFoundを返すため、
// 同じIDへの2回目の削除はエラーではなくNotFoundになる。
func DeleteTodo(id string, existing *Todo) Outcome[Todo] {
	if existing == nil {
		return NotFound[Todo]{ID: id}
	}
	return Deleted[Todo]{ID: id}
}

// FindTodo は取得結果を決定する。
func FindTodo(id string, existing *Todo) Outcome[Todo] {
	if existing == nil {
		return NotFound[Todo]{ID: id}
	}
	return Found[Todo]{Entity: *existing}
}

// ListTodos は一覧をそのままListタグに包んで返す。並べ替えは行わない。
func ListTodos(todos []Todo) Outcome[Todo] {
	return List[Todo]{Entities: todos}
}
