// DAO (Data Access Object) - предоставляет интерфейс для взаимодействия с базой данных. Содержит функции для работы с сущностями приложения: языками, документами, словами, предложениями, грамматическими заметками и тегами. Обеспечивает абстракцию от конкретной реализации базы данных.
//
// Основные возможности:
//   - Работа с языками пользователя (создание, получение, выбор активного).
//   - CRUD документов с сериализованным деревом контента.
//   - Работа со словарем (слова, переводы, теги).
//   - Работа с предложениями и грамматическими заметками, привязанными к документам.
package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GenID генерирует уникальный идентификатор в формате UUID.
// Не принимает параметров и возвращает строку, представляющую собой UUID.
func GenID() string {
	u2, _ := uuid.NewV4()
	return u2.String()
}

// GenUUID генерирует уникальный идентификатор в формате UUID. Не принимает параметров и возвращает UUID.
func GenUUID() uuid.UUID {
	u2, _ := uuid.NewV4()
	return u2
}

// Language - изучаемый язык пользователя. Все словарные сущности привязаны к языку.
type Language struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `json:"name" validate:"required,max=100"`
	// Шаблоны URL внешних словарей для поиска слов в этом языке
	LookupSources pq.StringArray `json:"lookup_sources" gorm:"type:text[]"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Language) TableName() string { return "languages" }

// GetLanguage возвращает язык по id.
func GetLanguage(db *gorm.DB, id string) (Language, error) {
	var lang Language
	err := db.Where("id = ?", id).First(&lang).Error
	return lang, err
}

// GetLanguages возвращает все языки.
func GetLanguages(db *gorm.DB) ([]Language, error) {
	var langs []Language
	err := db.Order("name").Find(&langs).Error
	return langs, err
}

// CreateLanguage создает язык с новым id.
func CreateLanguage(db *gorm.DB, lang *Language) error {
	lang.ID = GenUUID()
	return db.Create(lang).Error
}

// DeleteLanguage удаляет язык и все связанные с ним сущности.
func DeleteLanguage(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("language_id = ?", id).Delete(&Word{}).Error; err != nil {
			return err
		}
		if err := tx.Where("language_id = ?", id).Delete(&Sentence{}).Error; err != nil {
			return err
		}
		if err := tx.Where("language_id = ?", id).Delete(&GrammarPoint{}).Error; err != nil {
			return err
		}
		if err := tx.Where("language_id = ?", id).Delete(&Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("language_id = ?", id).Delete(&Document{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Language{}).Error
	})
}
