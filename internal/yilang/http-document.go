// Обработка запросов работы с документами редактора.
//
// Основные возможности:
//   - Список документов языка и получение документа с контентом.
//   - Создание и обновление документа с проверкой сериализованного дерева.
//   - Удаление документа вместе с производными предложениями и заметками.
package yilang

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/apierrors"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
	_ "github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/nodes"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/utils"
	"github.com/Yidaotus/yilang/yilang.go/pkg/limiter"
)

func (s *Services) AddDocumentServices(g *echo.Group) {
	g.GET("/languages/:languageId/documents/", s.getDocumentList)
	g.POST("/languages/:languageId/documents/", s.createDocument)
	g.GET("/documents/:documentId/", s.getDocument)
	g.PATCH("/documents/:documentId/", s.updateDocument)
	g.DELETE("/documents/:documentId/", s.deleteDocument)
}

func documentToLight(d *dao.Document) dto.DocumentLight {
	return dto.DocumentLight{
		Id:        d.ID.String(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Title:     d.Title,
		Language:  d.LanguageID,
	}
}

// getDocumentList godoc
// @id getDocumentList
// @Summary documents: список документов языка
// @Tags Documents
// @Produce json
// @Param languageId path string true "Id языка"
// @Success 200 {array} dto.DocumentLight "документы"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/documents/ [get]
func (s *Services) getDocumentList(c echo.Context) error {
	docs, err := dao.GetDocuments(s.db, c.Param("languageId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&docs, func(d *dao.Document) dto.DocumentLight {
		return documentToLight(d)
	}))
}

// getDocument godoc
// @id getDocument
// @Summary documents: получение документа
// @Tags Documents
// @Produce json
// @Param documentId path string true "Id документа"
// @Success 200 {object} dto.DocumentFull "документ"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/documents/{documentId}/ [get]
func (s *Services) getDocument(c echo.Context) error {
	doc, err := dao.GetDocument(s.db, c.Param("documentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrDocumentNotFound)
		}
		return EError(c, err)
	}

	full := dto.DocumentFull{
		DocumentLight:      documentToLight(&doc),
		SerializedDocument: doc.SerializedDocument,
	}
	if doc.Language != nil {
		full.LanguageDetail = &dto.LanguageLight{Id: doc.Language.ID.String(), Name: doc.Language.Name}
	}
	return c.JSON(http.StatusOK, full)
}

type documentRequest struct {
	Title              string `json:"title" validate:"required,documentTitle"`
	SerializedDocument string `json:"serialized_document"`
}

// Пустой контент допустим, непустой обязан парситься деревом редактора.
func validateSerializedDocument(raw string) error {
	if raw == "" {
		return nil
	}
	_, err := editor.ImportDocument([]byte(raw))
	return err
}

// createDocument godoc
// @id createDocument
// @Summary documents: создание документа
// @Tags Documents
// @Accept json
// @Produce json
// @Param languageId path string true "Id языка"
// @Param data body documentRequest true "Новый документ"
// @Success 200 {object} dto.DocumentLight "созданный документ"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/documents/ [post]
func (s *Services) createDocument(c echo.Context) error {
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	if err := validateSerializedDocument(req.SerializedDocument); err != nil {
		return EErrorDefined(c, apierrors.ErrDocumentMalformed)
	}

	lang, err := dao.GetLanguage(s.db, c.Param("languageId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrLanguageNotFound)
		}
		return EError(c, err)
	}

	if !limiter.Limiter.CanCreateDocument(lang.ID) {
		return EErrorDefined(c, apierrors.ErrDocumentLimit)
	}

	doc := dao.Document{
		Title:              s.sanitizer.Sanitize(req.Title),
		SerializedDocument: req.SerializedDocument,
		LanguageID:         lang.ID.String(),
	}
	if err := dao.CreateDocument(s.db, &doc); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, documentToLight(&doc))
}

// updateDocument godoc
// @id updateDocument
// @Summary documents: обновление документа
// @Tags Documents
// @Accept json
// @Produce json
// @Param documentId path string true "Id документа"
// @Param data body documentRequest true "Изменения документа"
// @Success 200 {object} dto.DocumentLight "обновленный документ"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/documents/{documentId}/ [patch]
func (s *Services) updateDocument(c echo.Context) error {
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	if err := validateSerializedDocument(req.SerializedDocument); err != nil {
		return EErrorDefined(c, apierrors.ErrDocumentMalformed)
	}

	doc, err := dao.GetDocument(s.db, c.Param("documentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrDocumentNotFound)
		}
		return EError(c, err)
	}

	doc.Title = s.sanitizer.Sanitize(req.Title)
	doc.SerializedDocument = req.SerializedDocument
	if err := dao.UpdateDocument(s.db, &doc); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, documentToLight(&doc))
}

// deleteDocument godoc
// @id deleteDocument
// @Summary documents: удаление документа
// @Description удаляет документ вместе с выделенными в нем предложениями и заметками
// @Tags Documents
// @Param documentId path string true "Id документа"
// @Success 204 "удалено"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/documents/{documentId}/ [delete]
func (s *Services) deleteDocument(c echo.Context) error {
	if err := dao.DeleteDocument(s.db, c.Param("documentId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrDocumentNotFound)
		}
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
