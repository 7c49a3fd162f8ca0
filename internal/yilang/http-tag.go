// Обработка запросов работы с тегами словаря.
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
)

func (s *Services) AddTagServices(g *echo.Group) {
	g.GET("/languages/:languageId/tags/", s.getTagList)
	g.POST("/languages/:languageId/tags/", s.createTag)
	g.PATCH("/tags/:tagId/", s.updateTag)
	g.DELETE("/tags/:tagId/", s.deleteTag)
}

type tagRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// getTagList godoc
// @id getTagList
// @Summary tags: список тегов языка
// @Tags Tags
// @Produce json
// @Param languageId path string true "Id языка"
// @Success 200 {array} dto.TagLight "теги"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/tags/ [get]
func (s *Services) getTagList(c echo.Context) error {
	tags, err := dao.GetTags(s.db, c.Param("languageId"))
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SliceToSlice(&tags, func(t *dao.Tag) dto.TagLight {
		return dto.TagLight{Id: t.ID.String(), Name: t.Name, Color: t.Color}
	}))
}

// createTag godoc
// @id createTag
// @Summary tags: создание тега
// @Tags Tags
// @Accept json
// @Produce json
// @Param languageId path string true "Id языка"
// @Param data body tagRequest true "Новый тег"
// @Success 200 {object} dto.TagLight "созданный тег"
// @Failure 400 {object} apierrors.DefinedError "Некорректные параметры запроса"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/languages/{languageId}/tags/ [post]
func (s *Services) createTag(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	tag := dao.Tag{
		Name:       s.sanitizer.Sanitize(req.Name),
		Color:      req.Color,
		LanguageID: c.Param("languageId"),
	}
	if err := dao.CreateTag(s.db, &tag); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TagLight{Id: tag.ID.String(), Name: tag.Name, Color: tag.Color})
}

// updateTag godoc
// @id updateTag
// @Summary tags: обновление тега
// @Tags Tags
// @Accept json
// @Produce json
// @Param tagId path string true "Id тега"
// @Param data body tagRequest true "Изменения тега"
// @Success 200 {object} dto.TagLight "обновленный тег"
// @Failure 404 {object} apierrors.DefinedError "Ошибка: не найдено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/tags/{tagId}/ [patch]
func (s *Services) updateTag(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBadRequestEntity)
	}
	if err := c.Validate(req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	var tag dao.Tag
	if err := s.db.Where("id = ?", c.Param("tagId")).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrTagNotFound)
		}
		return EError(c, err)
	}

	tag.Name = s.sanitizer.Sanitize(req.Name)
	tag.Color = req.Color
	if err := dao.UpdateTag(s.db, &tag); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TagLight{Id: tag.ID.String(), Name: tag.Name, Color: tag.Color})
}

// deleteTag godoc
// @id deleteTag
// @Summary tags: удаление тега
// @Tags Tags
// @Param tagId path string true "Id тега"
// @Success 204 "удалено"
// @Failure 500 {object} apierrors.DefinedError "Ошибка сервера"
// @Router /api/tags/{tagId}/ [delete]
func (s *Services) deleteTag(c echo.Context) error {
	if err := dao.DeleteTag(s.db, c.Param("tagId")); err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
