package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Tag - пользовательская метка словарной записи.
type Tag struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`

	LanguageID string `json:"language_id" gorm:"index"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Tag) TableName() string { return "tags" }

// GetTags возвращает теги языка.
func GetTags(db *gorm.DB, languageID string) ([]Tag, error) {
	var tags []Tag
	err := db.Where("language_id = ?", languageID).Order("name").Find(&tags).Error
	return tags, err
}

// CreateTag создает тег с новым id.
func CreateTag(db *gorm.DB, tag *Tag) error {
	tag.ID = GenUUID()
	return db.Create(tag).Error
}

// UpdateTag обновляет имя и цвет тега.
func UpdateTag(db *gorm.DB, tag *Tag) error {
	return db.Model(tag).
		Select("name", "color", "updated_at").
		Updates(map[string]interface{}{
			"name":       tag.Name,
			"color":      tag.Color,
			"updated_at": time.Now(),
		}).Error
}

// DeleteTag удаляет тег по id.
func DeleteTag(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&Tag{}).Error
}
