package yilang

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
)

// newTestServices поднимает сервисы поверх sqlite в памяти. Схема создается
// вручную, как в тестах пакета dao: массивы postgres в sqlite - обычный текст.
func newTestServices(t *testing.T) *Services {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := []string{
		`create table languages (id text primary key, created_at datetime, updated_at datetime, name text, lookup_sources text)`,
		`create table documents (id text primary key, created_at datetime, updated_at datetime, title text, serialized_document text, language_id text)`,
		`create table words (id text primary key, created_at datetime, updated_at datetime, word text, translations text, spelling text, comment text, language_id text, tag_ids text)`,
		`create table sentences (id text primary key, created_at datetime, updated_at datetime, sentence text, translation text, containing_words text, language_id text, source_document_id text)`,
		`create table grammar_points (id text primary key, created_at datetime, updated_at datetime, title text, language_id text, source_document_id text)`,
		`create table tags (id text primary key, created_at datetime, updated_at datetime, name text, color text, language_id text)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return &Services{db: db, sanitizer: bluemonday.StrictPolicy()}
}

func doDeleteLanguage(t *testing.T, s *Services, id string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/languages/"+id+"/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("languageId")
	c.SetParamValues(id)
	assert.NoError(t, s.deleteLanguage(c))
	return rec
}

func TestDeleteLanguageBlockedByDocuments(t *testing.T) {
	s := newTestServices(t)

	lang := dao.Language{Name: "Японский"}
	assert.NoError(t, dao.CreateLanguage(s.db, &lang))
	doc := dao.Document{Title: "Урок", LanguageID: lang.ID.String()}
	assert.NoError(t, dao.CreateDocument(s.db, &doc))

	rec := doDeleteLanguage(t, s, lang.ID.String())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":2002`)

	// Язык остался на месте
	_, err := dao.GetLanguage(s.db, lang.ID.String())
	assert.NoError(t, err)

	// Без документов удаление проходит
	assert.NoError(t, dao.DeleteDocument(s.db, doc.ID.String()))
	rec = doDeleteLanguage(t, s, lang.ID.String())
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err = dao.GetLanguage(s.db, lang.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteLanguageNotFound(t *testing.T) {
	s := newTestServices(t)

	rec := doDeleteLanguage(t, s, dao.GenID())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":2001`)
}
