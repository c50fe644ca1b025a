package entities

// Draft неструктурированный черновик, ожидающий организации в заметку.
type Draft struct {
	BaseRecord
	Title       *string    `json:"title"`
	Body        *string    `json:"body"`
	EditorState JSONObject `json:"editor_state"`
	Metadata    JSONObject `json:"metadata"`
}

// UntitledDraftTitle заголовок заметки, созданной из черновика без заголовка.
const UntitledDraftTitle = "Untitled Draft"

// NoteTitle заголовок заметки для этого черновика.
func (d *Draft) NoteTitle() string {
	if d.Title == nil || *d.Title == "" {
		return UntitledDraftTitle
	}
	return *d.Title
}

// NoteBody текст заметки для этого черновика.
func (d *Draft) NoteBody() string {
	if d.Body == nil {
		return ""
	}
	return *d.Body
}
