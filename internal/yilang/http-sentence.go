// Обработка запросов работы с предложениями, выделенными в документах.
//
// Основные возможности:
//   - Upsert предложения при сверке документа.
//   - Список предложений документа и предложений, содержащих слово.
//   - Пакетное удаление предложений.
package yilang

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/apierrors"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dto"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/utils"
)

func (s *Services) AddSentenceServices(g *echo.Group) {
	g.POST("/sentences/upsert/", s.upsertSentence)
	g.POST("/sentences/delete/", s.deleteSentences)
	g.GET("/documents/:documentId/sentences/", s.getDocumentSentences)
	g.GET("/words/:wordId/sentences/", s.getWordSentences)
}

func sentenceToLight(sn *dao.Sentence) dto.SentenceLight {
	return dto.SentenceLight{
		Id:          sn.ID.String(),
		Sentence:    sn.Sentence,
		Translation: sn.Translation,
	}
}

// upsertSentence godoc
// @id upsertSentence
// @Summary sentences: сохранение предложения
// @Description создает предложение при пустом id, иначе обновляет существующее
// @Tags Sentences
// @Accept json
// @Produce json
// @Param data body dto.SentenceUpsertRequest true "Предложение"
// @Success 200 {object} dto.SentenceLight "сохраненное предложение"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/sentences/upsert/ [post]
func (s *Services) upsertSentence(c echo.Context) error {
	var req dto.SentenceUpsertRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	sentence := dao.Sentence{
		Sentence:         req.Sentence,
		Translation:      req.Translation,
		ContainingWords:  pq.StringArray(req.ContainingWords),
		LanguageID:       req.LanguageId,
		SourceDocumentID: req.SourceDocumentId,
	}
	if req.Id != nil {
		id, err := uuid.FromString(*req.Id)
		if err != nil {
			return EErrorDefined(c, apierrors.ErrBadRequestEntity)
		}
		if _, err := dao.GetSentence(s.db, id.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EErrorDefined(c, apierrors.ErrSentenceNotFound)
			}
			return EError(c, err)
		}
		sentence.ID = id
	}

	if err := dao.UpsertSentence(s.db, &sentence); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, sentenceToLight(&sentence))
}

// deleteSentences godoc
// @id deleteSentences
// @Summary sentences: пакетное удаление предложений
// @Tags Sentences
// @Accept json
// @Param data body dto.DeleteManyRequest true "Id удаляемых предложений"
// @Success 204 "удалено"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/sentences/delete/ [post]
func (s *Services) deleteSentences(c echo.Context) error {
	var req dto.DeleteManyRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	if err := dao.DeleteSentences(s.db, req.Ids); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// getDocumentSentences godoc
// @id getDocumentSentences
// @Summary sentences: предложения документа
// @Tags Sentences
// @Produce json
// @Param documentId path string true "Id документа"
// @Success 200 {array} dto.SentenceLight "предложения"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/documents/{documentId}/sentences/ [get]
func (s *Services) getDocumentSentences(c echo.Context) error {
	sentences, err := dao.GetSentencesByDocument(s.db, c.Param("documentId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&sentences, func(sn *dao.Sentence) dto.SentenceLight {
		return sentenceToLight(sn)
	}))
}

// getWordSentences godoc
// @id getWordSentences
// @Summary sentences: предложения, содержащие слово
// @Tags Sentences
// @Produce json
// @Param wordId path string true "Id слова"
// @Success 200 {array} dto.SentenceLight "предложения"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/words/{wordId}/sentences/ [get]
func (s *Services) getWordSentences(c echo.Context) error {
	sentences, err := dao.GetSentencesByWord(s.db, c.Param("wordId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&sentences, func(sn *dao.Sentence) dto.SentenceLight {
		return sentenceToLight(sn)
	}))
}
