package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/outline"
)

var _ outline.PersistClient = (*Client)(nil)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL)
	assert.NoError(t, err)
	return client, server
}

func TestUpsertSentenceRoundTrip(t *testing.T) {
	var got dto.SentenceUpsertRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sentences/upsert/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(dto.SentenceLight{Id: "s-77", Sentence: got.Sentence})
	}))

	id, err := client.UpsertSentence(context.Background(), outline.SentenceUpsert{
		Sentence:         "私は学生です",
		Translation:      "Я студент",
		ContainingWords:  []string{"w-1", "w-2"},
		SourceDocumentID: "doc-1",
		LanguageID:       "lang-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "s-77", id)

	assert.Nil(t, got.Id)
	assert.Equal(t, "私は学生です", got.Sentence)
	assert.Equal(t, "Я студент", got.Translation)
	assert.Equal(t, []string{"w-1", "w-2"}, got.ContainingWords)
	assert.Equal(t, "doc-1", got.SourceDocumentId)
	assert.Equal(t, "lang-1", got.LanguageId)
}

func TestUpsertGrammarPointSendsExistingID(t *testing.T) {
	var got dto.GrammarPointUpsertRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/grammar-points/upsert/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(dto.GrammarPointLight{Id: *got.Id})
	}))

	existing := "gp-3"
	id, err := client.UpsertGrammarPoint(context.Background(), outline.GrammarPointUpsert{
		ID:               &existing,
		Title:            "て-форма",
		SourceDocumentID: "doc-1",
		LanguageID:       "lang-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "gp-3", id)
	assert.NotNil(t, got.Id)
	assert.Equal(t, "gp-3", *got.Id)
}

func TestDeleteManyRequests(t *testing.T) {
	var calls int
	var got dto.DeleteManyRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/sentences/delete/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteSentences(context.Background(), []string{"s-1", "s-2"}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"s-1", "s-2"}, got.Ids)

	// Пустой список не порождает запрос
	assert.NoError(t, client.DeleteSentences(context.Background(), nil))
	assert.NoError(t, client.DeleteGrammarPoints(context.Background(), nil))
	assert.Equal(t, 1, calls)
}

func TestRetriesTransientServerErrors(t *testing.T) {
	var attempts int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(dto.SentenceLight{Id: "s-1"})
	}))

	id, err := client.UpsertSentence(context.Background(), outline.SentenceUpsert{Sentence: "текст"})
	assert.NoError(t, err)
	assert.Equal(t, "s-1", id)
	assert.Equal(t, 3, attempts)
}

func TestClientErrorNotRetried(t *testing.T) {
	var attempts int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":1002,"error":"bad request body"}`))
	}))

	_, err := client.UpsertSentence(context.Background(), outline.SentenceUpsert{Sentence: "текст"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, 1, attempts)
}
