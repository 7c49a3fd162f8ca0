// Клиент API сервера yilang для сверки аннотаций документа.
// Реализует outline.PersistClient поверх HTTP с автоматическими повторами
// временных ошибок сети.
//
// Основные возможности:
//   - Upsert и пакетное удаление предложений и заметок.
//   - Создание и обновление словарных записей.
//   - Повторы запросов с экспоненциальной задержкой.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/outline"
)

type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
}

// New создает клиента с базовым адресом сервера вида http://host:8080.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = slog.Default()

	return &Client{baseURL: u, http: rc}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) UpsertGrammarPoint(ctx context.Context, payload outline.GrammarPointUpsert) (string, error) {
	req := dto.GrammarPointUpsertRequest{
		Id:               payload.ID,
		Title:            payload.Title,
		SourceDocumentId: payload.SourceDocumentID,
		LanguageId:       payload.LanguageID,
	}
	var resp dto.GrammarPointLight
	if err := c.do(ctx, http.MethodPost, "/api/grammar-points/upsert/", req, &resp); err != nil {
		return "", err
	}
	return resp.Id, nil
}

func (c *Client) DeleteGrammarPoints(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/grammar-points/delete/", dto.DeleteManyRequest{Ids: ids}, nil)
}

func (c *Client) UpsertSentence(ctx context.Context, payload outline.SentenceUpsert) (string, error) {
	req := dto.SentenceUpsertRequest{
		Id:               payload.ID,
		Sentence:         payload.Sentence,
		Translation:      payload.Translation,
		ContainingWords:  payload.ContainingWords,
		SourceDocumentId: payload.SourceDocumentID,
		LanguageId:       payload.LanguageID,
	}
	var resp dto.SentenceLight
	if err := c.do(ctx, http.MethodPost, "/api/sentences/upsert/", req, &resp); err != nil {
		return "", err
	}
	return resp.Id, nil
}

func (c *Client) DeleteSentences(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/sentences/delete/", dto.DeleteManyRequest{Ids: ids}, nil)
}

// CreateWord создает словарную запись и возвращает ее представление с id.
func (c *Client) CreateWord(ctx context.Context, languageID string, word dto.WordLight) (dto.WordLight, error) {
	req := map[string]any{
		"word":         word.Word,
		"translations": word.Translations,
		"spelling":     word.Spelling,
		"comment":      word.Comment,
	}
	var resp dto.WordLight
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/languages/%s/words/", languageID), req, &resp)
	return resp, err
}

// UpdateWord обновляет словарную запись по id.
func (c *Client) UpdateWord(ctx context.Context, word dto.WordLight) (dto.WordLight, error) {
	req := map[string]any{
		"word":         word.Word,
		"translations": word.Translations,
		"spelling":     word.Spelling,
		"comment":      word.Comment,
	}
	var resp dto.WordLight
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/words/%s/", word.Id), req, &resp)
	return resp, err
}
