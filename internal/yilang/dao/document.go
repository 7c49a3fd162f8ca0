package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Document - документ редактора. Дерево контента хранится как непрозрачная
// JSON-строка; структуру понимает только пакет editor.
type Document struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title              string `json:"title" validate:"required,max=150"`
	SerializedDocument string `json:"serialized_document" gorm:"type:text"`

	LanguageID string    `json:"language_id" gorm:"index"`
	Language   *Language `json:"language_detail,omitempty" gorm:"foreignKey:LanguageID" extensions:"x-nullable"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Document) TableName() string { return "documents" }

// BeforeDelete удаляет предложения и заметки, созданные из этого документа.
// Слова к документу не привязаны и остаются в словаре.
func (d *Document) BeforeDelete(tx *gorm.DB) error {
	if err := tx.Where("source_document_id = ?", d.ID.String()).Delete(&Sentence{}).Error; err != nil {
		return err
	}
	return tx.Where("source_document_id = ?", d.ID.String()).Delete(&GrammarPoint{}).Error
}

// GetDocument возвращает документ по id.
func GetDocument(db *gorm.DB, id string) (Document, error) {
	var doc Document
	err := db.Preload("Language").Where("id = ?", id).First(&doc).Error
	return doc, err
}

// GetDocuments возвращает документы языка, без сериализованного контента.
func GetDocuments(db *gorm.DB, languageID string) ([]Document, error) {
	var docs []Document
	err := db.
		Select("id", "created_at", "updated_at", "title", "language_id").
		Where("language_id = ?", languageID).
		Order("updated_at desc").
		Find(&docs).Error
	return docs, err
}

// CreateDocument создает документ с новым id.
func CreateDocument(db *gorm.DB, doc *Document) error {
	doc.ID = GenUUID()
	return db.Create(doc).Error
}

// UpdateDocument обновляет заголовок и контент документа.
func UpdateDocument(db *gorm.DB, doc *Document) error {
	return db.Model(doc).
		Select("title", "serialized_document", "updated_at").
		Updates(map[string]interface{}{
			"title":               doc.Title,
			"serialized_document": doc.SerializedDocument,
			"updated_at":          time.Now(),
		}).Error
}

// DeleteDocument удаляет документ по id.
func DeleteDocument(db *gorm.DB, id string) error {
	doc, err := GetDocument(db, id)
	if err != nil {
		return err
	}
	return db.Delete(&doc).Error
}
