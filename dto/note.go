package dto

type CreateNoteRequest struct {
	FolderID string   `json:"folder_id" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateNoteRequest carries a partial-field merge; nil fields stay
// untouched.
type UpdateNoteRequest struct {
	FolderID *string   `json:"folder_id,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

type SaveContentRequest struct {
	Content string `json:"content"`
}

type SetPriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=high medium low"`
}

type MarkdownRequest struct {
	Content string `json:"content" binding:"required"`
}

type DeleteAllRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}
