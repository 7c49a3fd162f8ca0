// Обработка запросов работы со словарем пользователя.
//
// Основные возможности:
//   - Список слов языка с поиском по поверхностной форме и переводам.
//   - Создание и обновление словарных записей.
//   - Пакетное удаление слов.
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
	"github.com/Yidaotus/yilang/yilang.go/pkg/limiter"
)

func (s *Services) AddWordServices(g *echo.Group) {
	g.GET("/languages/:languageId/words/", s.getWordList)
	g.POST("/languages/:languageId/words/", s.createWord)
	g.GET("/words/:wordId/", s.getWord)
	g.PATCH("/words/:wordId/", s.updateWord)
	g.POST("/words/delete/", s.deleteWords)
}

func wordToLight(w *dao.Word) dto.WordLight {
	return dto.WordLight{
		Id:           w.ID.String(),
		Word:         w.Word,
		Translations: w.Translations,
		Spelling:     w.Spelling,
		Comment:      w.Comment,
		Tags: utils.SliceToSlice(&w.Tags, func(t *dao.Tag) dto.TagLight {
			return dto.TagLight{Id: t.ID.String(), Name: t.Name, Color: t.Color}
		}),
	}
}

// getWordList godoc
// @id getWordList
// @Summary words: список слов языка
// @Tags Words
// @Produce json
// @Param languageId path string true "Id языка"
// @Param search query string false "Поиск по слову или переводу"
// @Success 200 {array} dto.WordLight "слова"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/words/ [get]
func (s *Services) getWordList(c echo.Context) error {
	words, err := dao.GetWords(s.db, c.Param("languageId"), c.QueryParam("search"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&words, func(w *dao.Word) dto.WordLight {
		return wordToLight(w)
	}))
}

// getWord godoc
// @id getWord
// @Summary words: получение слова
// @Tags Words
// @Produce json
// @Param wordId path string true "Id слова"
// @Success 200 {object} dto.WordLight "слово"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/words/{wordId}/ [get]
func (s *Services) getWord(c echo.Context) error {
	word, err := dao.GetWord(s.db, c.Param("wordId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrWordNotFound)
		}
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, wordToLight(&word))
}

type wordRequest struct {
	Word         string   `json:"word" validate:"required,wordSurface"`
	Translations []string `json:"translations"`
	Spelling     string   `json:"spelling"`
	Comment      string   `json:"comment"`
	Tags         []string `json:"tags" validate:"omitempty,dive,uuid"`
}

// createWord godoc
// @id createWord
// @Summary words: создание слова
// @Tags Words
// @Accept json
// @Produce json
// @Param languageId path string true "Id языка"
// @Param data body wordRequest true "Новое слово"
// @Success 200 {object} dto.WordLight "созданное слово"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 409 {object} apierrors.DefinedError "Слово уже существует"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/words/ [post]
func (s *Services) createWord(c echo.Context) error {
	var req wordRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	languageID := c.Param("languageId")
	if !limiter.Limiter.CanCreateWord(uuid.FromStringOrNil(languageID)) {
		return EErrorDefined(c, apierrors.ErrWordLimit)
	}
	if _, err := dao.FindWordBySurface(s.db, languageID, req.Word); err == nil {
		return EErrorDefined(c, apierrors.ErrWordAlreadyExists.WithFormattedMessage(req.Word))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EError(c, err)
	}

	word := dao.Word{
		Word:         req.Word,
		Translations: pq.StringArray(req.Translations),
		Spelling:     req.Spelling,
		Comment:      s.sanitizer.Sanitize(req.Comment),
		LanguageID:   languageID,
		TagIDs:       pq.StringArray(req.Tags),
	}
	if err := dao.CreateWord(s.db, &word); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, wordToLight(&word))
}

// updateWord godoc
// @id updateWord
// @Summary words: обновление слова
// @Tags Words
// @Accept json
// @Produce json
// @Param wordId path string true "Id слова"
// @Param data body wordRequest true "Изменения слова"
// @Success 200 {object} dto.WordLight "обновленное слово"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/words/{wordId}/ [patch]
func (s *Services) updateWord(c echo.Context) error {
	var req wordRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	word, err := dao.GetWord(s.db, c.Param("wordId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrWordNotFound)
		}
		return EError(c, err)
	}

	word.Word = req.Word
	word.Translations = pq.StringArray(req.Translations)
	word.Spelling = req.Spelling
	word.Comment = s.sanitizer.Sanitize(req.Comment)
	word.TagIDs = pq.StringArray(req.Tags)
	if err := dao.UpdateWord(s.db, &word); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, wordToLight(&word))
}

// deleteWords godoc
// @id deleteWords
// @Summary words: пакетное удаление слов
// @Tags Words
// @Accept json
// @Param data body dto.DeleteManyRequest true "Id удаляемых слов"
// @Success 204 "удалено"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/words/delete/ [post]
func (s *Services) deleteWords(c echo.Context) error {
	var req dto.DeleteManyRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	if err := dao.DeleteWords(s.db, req.Ids); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
