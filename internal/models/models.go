package models

import (
	"time"
)

// Folder is a node in the prompt hierarchy. Folders are addressed by their
// materialized path ("/AI/Coding"); parent/child relations are derived from
// path prefixes, ParentID is kept as a back-reference only.
type Folder struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Path      string    `json:"path" gorm:"size:500;not null;uniqueIndex"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Prompts []Prompt `json:"-" gorm:"foreignKey:FolderID"`

	// PromptCount is computed by ListFolders, not stored.
	PromptCount int64 `json:"prompt_count" gorm:"-"`
}

// Tag annotates prompts. Names are unique and matched case-sensitively.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Category  string    `json:"category,omitempty" gorm:"size:50"`
	Color     string    `json:"color,omitempty" gorm:"size:7"`
	CreatedAt time.Time `json:"created_at"`

	Prompts []*Prompt `json:"-" gorm:"many2many:prompt_tags"`
}

// Prompt is a stored text snippet. FolderID nil means the prompt lives at the
// root; FolderPath is resolved on load and never persisted.
type Prompt struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	FolderID    *uint     `json:"folder_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Folder *Folder `json:"-"`
	Tags   []Tag   `json:"tags" gorm:"many2many:prompt_tags"`

	FolderPath string `json:"folder_path,omitempty" gorm:"-"`
}

// TagNames returns the prompt's tag names in association order.
func (p *Prompt) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// PromptCreate carries the fields for creating a prompt.
type PromptCreate struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	FolderPath  string   `json:"folder_path,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// PromptUpdate carries a partial update. Nil fields are left untouched; a
// non-nil FolderPath (even "") re-resolves the folder, and a non-nil Tags
// replaces the entire tag set.
type PromptUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	FolderPath  *string   `json:"folder_path,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// PromptSearch carries search filters and pagination.
type PromptSearch struct {
	Query      string   `json:"query,omitempty"`
	FolderPath string   `json:"folder_path,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}
