package dao

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB поднимает sqlite в памяти. Схема создается вручную: массивы
// postgres хранятся в sqlite обычным текстом, AutoMigrate для них не годится.
func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createTestLanguage(t *testing.T, db *gorm.DB, name string) Language {
	lang := Language{Name: name, LookupSources: []string{"https://jisho.org/search/%s"}}
	assert.NoError(t, CreateLanguage(db, &lang))
	return lang
}

func TestLanguageCRUD(t *testing.T) {
	db := openTestDB(t)

	lang := createTestLanguage(t, db, "Японский")
	assert.NotEmpty(t, lang.ID)

	got, err := GetLanguage(db, lang.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Японский", got.Name)
	assert.Equal(t, []string{"https://jisho.org/search/%s"}, []string(got.LookupSources))

	createTestLanguage(t, db, "Английский")
	langs, err := GetLanguages(db)
	assert.NoError(t, err)
	assert.Len(t, langs, 2)
	// Сортировка по имени
	assert.Equal(t, "Английский", langs[0].Name)
}

func TestDeleteLanguageCascades(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()

	doc := Document{Title: "Урок 1", LanguageID: langID}
	assert.NoError(t, CreateDocument(db, &doc))
	word := Word{Word: "犬", Translations: []string{"собака"}, LanguageID: langID}
	assert.NoError(t, CreateWord(db, &word))
	sentence := Sentence{Sentence: "犬が好き", LanguageID: langID, SourceDocumentID: doc.ID.String()}
	assert.NoError(t, UpsertSentence(db, &sentence))
	gp := GrammarPoint{Title: "が", LanguageID: langID, SourceDocumentID: doc.ID.String()}
	assert.NoError(t, UpsertGrammarPoint(db, &gp))
	tag := Tag{Name: "JLPT N5", LanguageID: langID}
	assert.NoError(t, CreateTag(db, &tag))

	assert.NoError(t, DeleteLanguage(db, langID))

	_, err := GetLanguage(db, langID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = GetWord(db, word.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = GetDocument(db, doc.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	sentences, err := GetSentencesByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, sentences)
	tags, err := GetTags(db, langID)
	assert.NoError(t, err)
	assert.Empty(t, tags)
}

func TestDocumentLifecycle(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")

	doc := Document{
		Title:              "Сказка",
		SerializedDocument: `{"root":{"type":"root","version":1,"children":[]}}`,
		LanguageID:         lang.ID.String(),
	}
	assert.NoError(t, CreateDocument(db, &doc))

	got, err := GetDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Сказка", got.Title)
	assert.NotEmpty(t, got.SerializedDocument)
	assert.NotNil(t, got.Language)
	assert.Equal(t, "Японский", got.Language.Name)

	// Список не тащит сериализованный контент
	list, err := GetDocuments(db, lang.ID.String())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Empty(t, list[0].SerializedDocument)

	doc.Title = "Сказка (правка)"
	doc.SerializedDocument = `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1,"children":[]}]}}`
	assert.NoError(t, UpdateDocument(db, &doc))
	got, err = GetDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Сказка (правка)", got.Title)
	assert.Contains(t, got.SerializedDocument, "paragraph")

	assert.NoError(t, DeleteDocument(db, doc.ID.String()))
	_, err = GetDocument(db, doc.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteDocumentCascadesAnnotations(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()

	doc := Document{Title: "Урок", LanguageID: langID}
	assert.NoError(t, CreateDocument(db, &doc))
	other := Document{Title: "Другой", LanguageID: langID}
	assert.NoError(t, CreateDocument(db, &other))

	s1 := Sentence{Sentence: "一つ目", LanguageID: langID, SourceDocumentID: doc.ID.String()}
	assert.NoError(t, UpsertSentence(db, &s1))
	s2 := Sentence{Sentence: "他の", LanguageID: langID, SourceDocumentID: other.ID.String()}
	assert.NoError(t, UpsertSentence(db, &s2))
	gp := GrammarPoint{Title: "目", LanguageID: langID, SourceDocumentID: doc.ID.String()}
	assert.NoError(t, UpsertGrammarPoint(db, &gp))

	assert.NoError(t, DeleteDocument(db, doc.ID.String()))

	orphaned, err := GetSentencesByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, orphaned)
	gps, err := GetGrammarPointsByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, gps)

	// Аннотации чужого документа не тронуты
	kept, err := GetSentencesByDocument(db, other.ID.String())
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestWordCRUD(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()

	word := Word{
		Word:         "食べる",
		Translations: []string{"есть", "кушать"},
		Spelling:     "たべる",
		LanguageID:   langID,
	}
	assert.NoError(t, CreateWord(db, &word))

	got, err := GetWord(db, word.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{"есть", "кушать"}, []string(got.Translations))
	assert.Equal(t, "たべる", got.Spelling)

	found, err := FindWordBySurface(db, langID, "食べる")
	assert.NoError(t, err)
	assert.Equal(t, word.ID, found.ID)
	_, err = FindWordBySurface(db, langID, "飲む")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	word.Translations = []string{"есть"}
	word.Comment = "ру-глагол"
	assert.NoError(t, UpdateWord(db, &word))
	got, err = GetWord(db, word.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{"есть"}, []string(got.Translations))
	assert.Equal(t, "ру-глагол", got.Comment)

	words, err := GetWords(db, langID, "")
	assert.NoError(t, err)
	assert.Len(t, words, 1)

	assert.NoError(t, DeleteWords(db, []string{word.ID.String()}))
	_, err = GetWord(db, word.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWordTagsLoaded(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()

	tag := Tag{Name: "глаголы", Color: "#ff0000", LanguageID: langID}
	assert.NoError(t, CreateTag(db, &tag))

	word := Word{
		Word:       "走る",
		LanguageID: langID,
		TagIDs:     []string{tag.ID.String()},
	}
	assert.NoError(t, CreateWord(db, &word))

	got, err := GetWord(db, word.ID.String())
	assert.NoError(t, err)
	assert.Len(t, got.Tags, 1)
	assert.Equal(t, "глаголы", got.Tags[0].Name)
}

func TestSentenceUpsert(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()
	doc := Document{Title: "Урок", LanguageID: langID}
	assert.NoError(t, CreateDocument(db, &doc))

	sentence := Sentence{
		Sentence:         "私は学生です",
		Translation:      "Я студент",
		ContainingWords:  []string{"w-1", "w-2"},
		LanguageID:       langID,
		SourceDocumentID: doc.ID.String(),
	}
	assert.NoError(t, UpsertSentence(db, &sentence))
	assert.NotEmpty(t, sentence.ID)

	// Повторный upsert с id обновляет запись, а не создает новую
	sentence.Translation = "Я - студент"
	sentence.ContainingWords = []string{"w-1"}
	assert.NoError(t, UpsertSentence(db, &sentence))

	list, err := GetSentencesByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Я - студент", list[0].Translation)
	assert.Equal(t, []string{"w-1"}, []string(list[0].ContainingWords))

	assert.NoError(t, DeleteSentences(db, []string{sentence.ID.String()}))
	list, err = GetSentencesByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, list)

	// Пустой список id - no-op
	assert.NoError(t, DeleteSentences(db, nil))
}

func TestGrammarPointUpsert(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()
	doc := Document{Title: "Урок", LanguageID: langID}
	assert.NoError(t, CreateDocument(db, &doc))

	gp := GrammarPoint{Title: "て-форма", LanguageID: langID, SourceDocumentID: doc.ID.String()}
	assert.NoError(t, UpsertGrammarPoint(db, &gp))
	assert.NotEmpty(t, gp.ID)

	gp.Title = "て-форма глагола"
	assert.NoError(t, UpsertGrammarPoint(db, &gp))

	byDoc, err := GetGrammarPointsByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Len(t, byDoc, 1)
	assert.Equal(t, "て-форма глагола", byDoc[0].Title)

	byLang, err := GetGrammarPointsByLanguage(db, langID)
	assert.NoError(t, err)
	assert.Len(t, byLang, 1)

	assert.NoError(t, DeleteGrammarPoints(db, []string{gp.ID.String()}))
	byDoc, err = GetGrammarPointsByDocument(db, doc.ID.String())
	assert.NoError(t, err)
	assert.Empty(t, byDoc)
}

func TestTagCRUD(t *testing.T) {
	db := openTestDB(t)
	lang := createTestLanguage(t, db, "Японский")
	langID := lang.ID.String()

	tag := Tag{Name: "существительные", Color: "#00ff00", LanguageID: langID}
	assert.NoError(t, CreateTag(db, &tag))

	tag.Name = "имена существительные"
	assert.NoError(t, UpdateTag(db, &tag))

	tags, err := GetTags(db, langID)
	assert.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, "имена существительные", tags[0].Name)
	assert.Equal(t, "#00ff00", tags[0].Color)

	assert.NoError(t, DeleteTag(db, tag.ID.String()))
	tags, err = GetTags(db, langID)
	assert.NoError(t, err)
	assert.Empty(t, tags)
}
