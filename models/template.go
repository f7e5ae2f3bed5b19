package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract template kinds. A rich_text template carries placeholder-bearing
// HTML in Content; a word_file template is an uploaded .docx referenced by
// FilePath and merged binary-side.
const (
	TemplateTypeRichText = "rich_text"
	TemplateTypeWordFile = "word_file"
)

type ContractTemplate struct {
	Id          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Type        string `json:"type" gorm:"not null;default:rich_text"`

	Content  string `json:"content"` // HTML with {{placeholder}} tokens
	FilePath string `json:"-"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`

	IsDefault       bool   `json:"is_default"`
	TranslationPart string `json:"translation_part"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *ContractTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.Id == "" {
		t.Id = uuid.NewString()
	}
	return
}
