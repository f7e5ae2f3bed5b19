package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work is a source document queued for translation.
type Work struct {
	Id                  string    `json:"id" gorm:"primaryKey"`
	Name                string    `json:"name" gorm:"not null"`
	NameOriginal        string    `json:"name_original"`
	Author              string    `json:"author"`
	SourceLanguage      string    `json:"source_language" gorm:"default:Hán văn"`
	TargetLanguage      string    `json:"target_language" gorm:"default:Tiếng Việt"`
	PageCount           int       `json:"page_count" gorm:"default:0"` // converted pages, 350 words each
	WordCount           int       `json:"word_count" gorm:"default:0"`
	Description         string    `json:"description"`
	TranslationPartCode string    `json:"translation_part_code"`
	Stage               string    `json:"stage"`
	Active              bool      `json:"active" gorm:"default:true"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) (err error) {
	if w.Id == "" {
		w.Id = uuid.NewString()
	}
	return
}
