package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// GrammarPoint - грамматическая заметка, выделенная в документе.
// Тело заметки живет внутри сериализованного дерева документа, здесь
// хранится только заголовок для оглавления и поиска.
type GrammarPoint struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title string `json:"title" gorm:"type:text"`

	LanguageID string `json:"language_id" gorm:"index"`

	SourceDocumentID string    `json:"source_document_id" gorm:"index"`
	SourceDocument   *Document `json:"source_document,omitempty" gorm:"foreignKey:SourceDocumentID" extensions:"x-nullable"`
}

// Возвращает имя таблицы для данного типа структуры.
func (GrammarPoint) TableName() string { return "grammar_points" }

// GetGrammarPoint возвращает заметку по id.
func GetGrammarPoint(db *gorm.DB, id string) (GrammarPoint, error) {
	var gp GrammarPoint
	err := db.Where("id = ?", id).First(&gp).Error
	return gp, err
}

// GetGrammarPointsByDocument возвращает заметки, выделенные в документе.
func GetGrammarPointsByDocument(db *gorm.DB, documentID string) ([]GrammarPoint, error) {
	var gps []GrammarPoint
	err := db.Where("source_document_id = ?", documentID).Order("created_at").Find(&gps).Error
	return gps, err
}

// GetGrammarPointsByLanguage возвращает все заметки языка.
func GetGrammarPointsByLanguage(db *gorm.DB, languageID string) ([]GrammarPoint, error) {
	var gps []GrammarPoint
	err := db.Where("language_id = ?", languageID).Order("created_at desc").Find(&gps).Error
	return gps, err
}

// UpsertGrammarPoint создает заметку при нулевом id, иначе обновляет существующую.
func UpsertGrammarPoint(db *gorm.DB, gp *GrammarPoint) error {
	if gp.ID == uuid.Nil {
		gp.ID = GenUUID()
		return db.Create(gp).Error
	}
	return db.Model(gp).
		Select("title", "updated_at").
		Updates(map[string]interface{}{
			"title":      gp.Title,
			"updated_at": time.Now(),
		}).Error
}

// DeleteGrammarPoints пакетно удаляет заметки по id.
func DeleteGrammarPoints(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id in (?)", ids).Delete(&GrammarPoint{}).Error
}
