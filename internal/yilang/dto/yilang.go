// Содержит структуры данных (DTO) для представления сущностей приложения в API. Предназначен для структурированного обмена данными между сервером и клиентами редактора.
//
// Основные возможности:
//   - Легкие представления сущностей для списков (DocumentLight, WordLight и др.).
//   - Тела запросов upsert/delete для сверки аннотаций документа.
package dto

import "time"

type LanguageLight struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type DocumentLight struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `json:"title"`
	Language  string    `json:"language_id"`
}

type DocumentFull struct {
	DocumentLight

	SerializedDocument string         `json:"serialized_document"`
	LanguageDetail     *LanguageLight `json:"language_detail,omitempty" extensions:"x-nullable"`
}

type WordLight struct {
	Id           string     `json:"id"`
	Word         string     `json:"word"`
	Translations []string   `json:"translations"`
	Spelling     string     `json:"spelling,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	Tags         []TagLight `json:"tag_details,omitempty" extensions:"x-nullable"`
}

type SentenceLight struct {
	Id          string `json:"id"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

type GrammarPointLight struct {
	Id             string `json:"id"`
	Title          string `json:"title"`
	SourceDocument string `json:"source_document_id"`
}

type TagLight struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LanguageLimitsInfo - остатки тарифных квот языка. Отрицательное значение
// означает, что лимит неизвестен.
type LanguageLimitsInfo struct {
	TariffName       string `json:"tariff_name"`
	DocumentsRemains int    `json:"documents_remains"`
	WordsRemains     int    `json:"words_remains"`
}

// GrammarPointUpsertRequest - тело запроса сохранения заметки.
// Пустой Id означает создание новой записи.
type GrammarPointUpsertRequest struct {
	Id               *string `json:"id,omitempty" extensions:"x-nullable"`
	Title            string  `json:"title"`
	SourceDocumentId string  `json:"source_document_id" validate:"required,uuid"`
	LanguageId       string  `json:"language_id" validate:"required,uuid"`
}

// SentenceUpsertRequest - тело запроса сохранения предложения.
type SentenceUpsertRequest struct {
	Id               *string  `json:"id,omitempty" extensions:"x-nullable"`
	Sentence         string   `json:"sentence" validate:"required"`
	Translation      string   `json:"translation"`
	ContainingWords  []string `json:"containing_words"`
	SourceDocumentId string   `json:"source_document_id" validate:"required,uuid"`
	LanguageId       string   `json:"language_id" validate:"required,uuid"`
}

// DeleteManyRequest - пакетное удаление по списку id.
type DeleteManyRequest struct {
	Ids []string `json:"ids" validate:"required,dive,uuid"`
}
