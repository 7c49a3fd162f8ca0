package limiter

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofrs/uuid"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
)

type ExternalLimiter struct {
	host *url.URL
}

func NewExternalLimiter(host *url.URL) *ExternalLimiter {
	return &ExternalLimiter{host: host}
}

func (c ExternalLimiter) GetLanguageLimitInfo(languageId uuid.UUID) dto.LanguageLimitsInfo {
	return dto.LanguageLimitsInfo{
		TariffName:       "community",
		DocumentsRemains: c.GetRemainingDocuments(languageId),
		WordsRemains:     c.GetRemainingWords(languageId),
	}
}

func (c ExternalLimiter) CanCreateDocument(languageId uuid.UUID) bool {
	return c.doRequest("/can/create/language/" + languageId.String() + "/document")
}

func (c ExternalLimiter) CanCreateWord(languageId uuid.UUID) bool {
	return c.doRequest("/can/create/language/" + languageId.String() + "/word")
}

func (c ExternalLimiter) GetRemainingDocuments(languageId uuid.UUID) int {
	return c.doRemainRequest("/remain/language/" + languageId.String() + "/documents")
}

func (c ExternalLimiter) GetRemainingWords(languageId uuid.UUID) int {
	return c.doRemainRequest("/remain/language/" + languageId.String() + "/words")
}

func (c ExternalLimiter) doRemainRequest(path string) int {
	resp, err := http.Get(c.host.ResolveReference(&url.URL{Path: path}).String())
	if err != nil {
		slog.Error("Request remains", "err", err)
		return -1
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return -1
	}

	remain, err := strconv.Atoi(resp.Header.Get("X-Entity-Remain"))
	if err != nil {
		slog.Error("Parse remain answer", "raw", resp.Header.Get("X-Entity-Remain"), "err", err)
		return -1
	}
	return remain
}

func (c ExternalLimiter) doRequest(path string) bool {
	resp, err := http.Get(c.host.ResolveReference(&url.URL{Path: path}).String())
	if err != nil {
		slog.Error("Request access rule", "err", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
