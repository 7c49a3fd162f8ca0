package dao

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Word - запись словаря. Переводы хранятся массивом, а не строкой с
// разделителем: перевод может содержать любой символ.
type Word struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Word         string         `json:"word" validate:"required,max=250" gorm:"index:idx_words_lang_word,priority:2"`
	Translations pq.StringArray `json:"translations" gorm:"type:text[]"`
	Spelling     string         `json:"spelling"`
	Comment      string         `json:"comment"`

	LanguageID string    `json:"language_id" gorm:"index:idx_words_lang_word,priority:1"`
	Language   *Language `json:"language_detail,omitempty" gorm:"foreignKey:LanguageID" extensions:"x-nullable"`

	TagIDs pq.StringArray `json:"tags" gorm:"type:text[];column:tag_ids"`
	Tags   []Tag          `json:"tag_details,omitempty" gorm:"-"`
}

// Возвращает имя таблицы для данного типа структуры.
func (Word) TableName() string { return "words" }

// AfterFind подгружает теги слова по сохраненным id.
func (w *Word) AfterFind(tx *gorm.DB) error {
	if len(w.TagIDs) == 0 {
		return nil
	}
	return tx.Where("id in (?)", []string(w.TagIDs)).Find(&w.Tags).Error
}

// GetWord возвращает слово по id.
func GetWord(db *gorm.DB, id string) (Word, error) {
	var word Word
	err := db.Where("id = ?", id).First(&word).Error
	return word, err
}

// GetWords возвращает слова языка. Непустой search фильтрует по подстроке
// поверхностной формы или перевода.
func GetWords(db *gorm.DB, languageID string, search string) ([]Word, error) {
	var words []Word
	query := db.Where("language_id = ?", languageID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"word ilike ? or array_to_string(translations, ',') ilike ?",
			pattern, pattern,
		)
	}
	err := query.Order("created_at desc").Find(&words).Error
	return words, err
}

// FindWordBySurface ищет слово языка по точной поверхностной форме.
func FindWordBySurface(db *gorm.DB, languageID string, surface string) (Word, error) {
	var word Word
	err := db.Where("language_id = ? and word = ?", languageID, surface).First(&word).Error
	return word, err
}

// CreateWord создает слово с новым id.
func CreateWord(db *gorm.DB, word *Word) error {
	word.ID = GenUUID()
	return db.Create(word).Error
}

// UpdateWord обновляет изменяемые поля слова.
func UpdateWord(db *gorm.DB, word *Word) error {
	return db.Model(word).
		Select("word", "translations", "spelling", "comment", "tag_ids", "updated_at").
		Updates(map[string]interface{}{
			"word":         word.Word,
			"translations": word.Translations,
			"spelling":     word.Spelling,
			"comment":      word.Comment,
			"tag_ids":      word.TagIDs,
			"updated_at":   time.Now(),
		}).Error
}

// DeleteWords пакетно удаляет слова по id.
func DeleteWords(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id in (?)", ids).Delete(&Word{}).Error
}
