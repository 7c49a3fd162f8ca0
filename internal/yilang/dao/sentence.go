package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentence - переводимое предложение, выделенное в документе.
// ContainingWords - id слов словаря, встречающихся внутри предложения.
type Sentence struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sentence    string `json:"sentence" validate:"required" gorm:"type:text"`
	Translation string `json:"translation" gorm:"type:text"`

	ContainingWords pq.StringArray `json:"containing_words" gorm:"type:text[]"`

	LanguageID string `json:"language_id" gorm:"index"`

	SourceDocumentID string    `json:"source_document_id" gorm:"index"`
	SourceDocument   *Document `json:"source_document,omitempty" gorm:"foreignKey:SourceDocumentID" extensions:"x-nullable"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Sentence) TableName() string { return "sentences" }

// GetSentence возвращает предложение по id.
func GetSentence(db *gorm.DB, id string) (Sentence, error) {
	var sentence Sentence
	err := db.Where("id = ?", id).First(&sentence).Error
	return sentence, err
}

// GetSentencesByDocument возвращает предложения, выделенные в документе.
func GetSentencesByDocument(db *gorm.DB, documentID string) ([]Sentence, error) {
	var sentences []Sentence
	err := db.Where("source_document_id = ?", documentID).Order("created_at").Find(&sentences).Error
	return sentences, err
}

// GetSentencesByWord возвращает предложения языка, содержащие слово.
func GetSentencesByWord(db *gorm.DB, wordID string) ([]Sentence, error) {
	var sentences []Sentence
	err := db.Where("? = any(containing_words)", wordID).Order("created_at").Find(&sentences).Error
	return sentences, err
}

// UpsertSentence создает предложение при нулевом id, иначе обновляет существующее.
func UpsertSentence(db *gorm.DB, sentence *Sentence) error {
	if sentence.ID == uuid.Nil {
		sentence.ID = GenUUID()
		return db.Create(sentence).Error
	}
	return db.Model(sentence).
		Select("sentence", "translation", "containing_words", "updated_at").
		Updates(map[string]interface{}{
			"sentence":         sentence.Sentence,
			"translation":      sentence.Translation,
			"containing_words": sentence.ContainingWords,
			"updated_at":       time.Now(),
		}).Error
}

// DeleteSentences пакетно удаляет предложения по id.
func DeleteSentences(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id in (?)", ids).Delete(&Sentence{}).Error
}
