// Обработка запросов работы с грамматическими заметками.
//
// Основные возможности:
//   - Upsert заметки при сверке документа.
//   - Список заметок документа и языка.
//   - Пакетное удаление заметок.
package yilang

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/apierrors"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/utils"
)

func (s *Services) AddGrammarPointServices(g *echo.Group) {
	g.POST("/grammar-points/upsert/", s.upsertGrammarPoint)
	g.POST("/grammar-points/delete/", s.deleteGrammarPoints)
	g.GET("/documents/:documentId/grammar-points/", s.getDocumentGrammarPoints)
	g.GET("/languages/:languageId/grammar-points/", s.getLanguageGrammarPoints)
}

func grammarPointToLight(gp *dao.GrammarPoint) dto.GrammarPointLight {
	return dto.GrammarPointLight{
		Id:             gp.ID.String(),
		Title:          gp.Title,
		SourceDocument: gp.SourceDocumentID,
	}
}

// upsertGrammarPoint godoc
// @id upsertGrammarPoint
// @Summary grammarPoints: сохранение заметки
// @Description создает заметку при пустом id, иначе обновляет существующую
// @Tags GrammarPoints
// @Accept json
// @Produce json
// @Param data body dto.GrammarPointUpsertRequest true "Заметка"
// @Success 200 {object} dto.GrammarPointLight "сохраненная заметка"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/grammar-points/upsert/ [post]
func (s *Services) upsertGrammarPoint(c echo.Context) error {
	var req dto.GrammarPointUpsertRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	gp := dao.GrammarPoint{
		Title:            s.sanitizer.Sanitize(req.Title),
		LanguageID:       req.LanguageId,
		SourceDocumentID: req.SourceDocumentId,
	}
	if req.Id != nil {
		id, err := uuid.FromString(*req.Id)
		if err != nil {
			return EErrorDefined(c, apierrors.ErrBadRequestEntity)
		}
		if _, err := dao.GetGrammarPoint(s.db, id.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EErrorDefined(c, apierrors.ErrGrammarPointNotFound)
			}
			return EError(c, err)
		}
		gp.ID = id
	}

	if err := dao.UpsertGrammarPoint(s.db, &gp); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, grammarPointToLight(&gp))
}

// deleteGrammarPoints godoc
// @id deleteGrammarPoints
// @Summary grammarPoints: пакетное удаление заметок
// @Tags GrammarPoints
// @Accept json
// @Param data body dto.DeleteManyRequest true "Id удаляемых заметок"
// @Success 204 "удалено"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/grammar-points/delete/ [post]
func (s *Services) deleteGrammarPoints(c echo.Context) error {
	var req dto.DeleteManyRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	if err := dao.DeleteGrammarPoints(s.db, req.Ids); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// getDocumentGrammarPoints godoc
// @id getDocumentGrammarPoints
// @Summary grammarPoints: заметки документа
// @Tags GrammarPoints
// @Produce json
// @Param documentId path string true "Id документа"
// @Success 200 {array} dto.GrammarPointLight "заметки"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/documents/{documentId}/grammar-points/ [get]
func (s *Services) getDocumentGrammarPoints(c echo.Context) error {
	gps, err := dao.GetGrammarPointsByDocument(s.db, c.Param("documentId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&gps, func(gp *dao.GrammarPoint) dto.GrammarPointLight {
		return grammarPointToLight(gp)
	}))
}

// getLanguageGrammarPoints godoc
// @id getLanguageGrammarPoints
// @Summary grammarPoints: заметки языка
// @Tags GrammarPoints
// @Produce json
// @Param languageId path string true "Id языка"
// @Success 200 {array} dto.GrammarPointLight "заметки"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/grammar-points/ [get]
func (s *Services) getLanguageGrammarPoints(c echo.Context) error {
	gps, err := dao.GetGrammarPointsByLanguage(s.db, c.Param("languageId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&gps, func(gp *dao.GrammarPoint) dto.GrammarPointLight {
		return grammarPointToLight(gp)
	}))
}
