// Обработка запросов управления языками пользователя.
//
// Основные возможности:
//   - Список языков и создание нового языка.
//   - Удаление языка вместе со всеми связанными сущностями.
package yilang

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/apierrors"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/utils"
	"github.com/Yidaotus/yilang/yilang.go/pkg/limiter"
)

func (s *Services) AddLanguageServices(g *echo.Group) {
	g.GET("/languages/", s.getLanguageList)
	g.POST("/languages/", s.createLanguage)
	g.DELETE("/languages/:languageId/", s.deleteLanguage)
	g.GET("/languages/:languageId/limits/", s.getLanguageLimits)
}

// getLanguageList godoc
// @id getLanguageList
// @Summary languages: список языков
// @Tags Languages
// @Produce json
// @Success 200 {array} dto.LanguageLight "языки"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/ [get]
func (s *Services) getLanguageList(c echo.Context) error {
	langs, err := dao.GetLanguages(s.db)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&langs, func(l *dao.Language) dto.LanguageLight {
		return dto.LanguageLight{Id: l.ID.String(), Name: l.Name}
	}))
}

type createLanguageRequest struct {
	Name string `json:"name" validate:"required,languageName"`
}

// createLanguage godoc
// @id createLanguage
// @Summary languages: создание языка
// @Tags Languages
// @Accept json
// @Produce json
// @Param data body createLanguageRequest true "Новый язык"
// @Success 200 {object} dto.LanguageLight "созданный язык"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/ [post]
func (s *Services) createLanguage(c echo.Context) error {
	var req createLanguageRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	lang := dao.Language{Name: s.sanitizer.Sanitize(req.Name)}
	if err := dao.CreateLanguage(s.db, &lang); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LanguageLight{Id: lang.ID.String(), Name: lang.Name})
}

// deleteLanguage godoc
// @id deleteLanguage
// @Summary languages: удаление языка
// @Description удаляет язык вместе со словарем, предложениями и заметками; язык с документами не удаляется
// @Tags Languages
// @Param languageId path string true "Id языка"
// @Success 204 "удалено"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 409 {object} apierrors.DefinedError "У языка есть документы"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/ [delete]
func (s *Services) deleteLanguage(c echo.Context) error {
	id := c.Param("languageId")
	if _, err := dao.GetLanguage(s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrLanguageNotFound)
		}
		return EError(c, err)
	}

	docs, err := dao.GetDocuments(s.db, id)
	if err != nil {
		return EError(c, err)
	}
	if len(docs) > 0 {
		return EErrorDefined(c, apierrors.ErrLanguageInUse)
	}

	if err := dao.DeleteLanguage(s.db, id); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// getLanguageLimits godoc
// @id getLanguageLimits
// @Summary languages: остатки тарифных квот языка
// @Tags Languages
// @Produce json
// @Param languageId path string true "Id языка"
// @Success 200 {object} dto.LanguageLimitsInfo "квоты"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/limits/ [get]
func (s *Services) getLanguageLimits(c echo.Context) error {
	lang, err := dao.GetLanguage(s.db, c.Param("languageId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrLanguageNotFound)
		}
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, limiter.Limiter.GetLanguageLimitInfo(lang.ID))
}
