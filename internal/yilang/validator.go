// Пакет для валидации данных, используемых в YiLang. Содержит валидаторы для различных полей, таких как имя языка, заголовок документа и поверхностная форма слова. Использует библиотеку go-playground/validator для выполнения проверок.
//
// Основные возможности:
//   - Валидация полей данных с использованием предопределенных валидаторов.
//   - Использование регулярных выражений для проверки формата данных.
package yilang

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	err := v.RegisterValidation("languageName", languageNameValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("documentTitle", documentTitleValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("wordSurface", wordSurfaceValidator)
	if err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func languageNameValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	lenStr := utf8.RuneCountInString(value)
	if !isValidName(value) {
		return false
	}
	return lenStr >= 1 && lenStr <= 100
}

func documentTitleValidator(fl validator.FieldLevel) bool {
	lenStr := utf8.RuneCountInString(fl.Field().String())
	return lenStr >= 1 && lenStr <= 150
}

// Поверхностная форма слова: любой непустой текст без переводов строк
func wordSurfaceValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	lenStr := utf8.RuneCountInString(value)
	if lenStr < 1 || lenStr > 250 {
		return false
	}
	return !hasLineBreak(value)
}

func isValidName(str string) bool {
	pt := `^[\p{L}\p{N} ._\-]+$`
	re := regexp.MustCompile(pt)
	return re.MatchString(str)
}

func hasLineBreak(str string) bool {
	re := regexp.MustCompile(`[\r\n]`)
	return re.MatchString(str)
}
