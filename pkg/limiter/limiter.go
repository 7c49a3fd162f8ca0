// Ограничения на объем пользовательских данных. По умолчанию работает
// community-режим без ограничений; при заданном EXTERNAL_LIMITER_URL решения
// принимает внешний тарифный сервис.
package limiter

import (
	"log/slog"

	"github.com/gofrs/uuid"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/config"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
)

type LimiterInt interface {
	GetLanguageLimitInfo(languageId uuid.UUID) dto.LanguageLimitsInfo

	CanCreateDocument(languageId uuid.UUID) bool
	CanCreateWord(languageId uuid.UUID) bool

	GetRemainingDocuments(languageId uuid.UUID) int
	GetRemainingWords(languageId uuid.UUID) int
}

var Limiter LimiterInt = CommunityLimiter{}

func Init(cfg *config.Config) {
	if cfg.ExternalLimiter == nil {
		slog.Info("Using Community limiter")
		return
	}
	Limiter = NewExternalLimiter(cfg.ExternalLimiter)
}

type CommunityLimiter struct{}

func (c CommunityLimiter) GetLanguageLimitInfo(languageId uuid.UUID) dto.LanguageLimitsInfo {
	return dto.LanguageLimitsInfo{
		TariffName: "community",
	}
}

func (c CommunityLimiter) CanCreateDocument(languageId uuid.UUID) bool {
	return true
}

func (c CommunityLimiter) CanCreateWord(languageId uuid.UUID) bool {
	return true
}

func (c CommunityLimiter) GetRemainingDocuments(languageId uuid.UUID) int {
	return 99999999
}

func (c CommunityLimiter) GetRemainingWords(languageId uuid.UUID) int {
	return 99999999
}
