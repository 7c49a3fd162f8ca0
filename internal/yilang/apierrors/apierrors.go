// Пакет содержит определения ошибок, используемых в приложении yilang для обработки различных ситуаций, возникающих при работе с базой данных и пользовательским интерфейсом. Каждая ошибка имеет код, статус HTTP и описание, что позволяет удобно обрабатывать исключения и предоставлять информативные сообщения пользователю.
//
// Основные возможности:
//   - Определение типов ошибок, связанных с языками, документами, словарем, предложениями и заметками.
//   - Предоставление кодов ошибок, соответствующих кодам HTTP статусов.
//   - Функция для форматирования сообщений об ошибках с использованием аргументов.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - generic errors
	ErrGeneric          = DefinedError{Code: 1001, StatusCode: http.StatusInternalServerError, Err: "internal server error", RuErr: "Внутренняя ошибка сервера"}
	ErrBadRequestEntity = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "bad request body", RuErr: "Некорректное тело запроса"}
	ErrValidation       = DefinedError{Code: 1003, StatusCode: http.StatusBadRequest, Err: "validation failed: %s", RuErr: "Ошибка валидации: %s"}

	// 2*** - language errors
	ErrLanguageNotFound = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "language not found", RuErr: "Язык не найден"}
	ErrLanguageInUse    = DefinedError{Code: 2002, StatusCode: http.StatusConflict, Err: "language has documents and cannot be removed", RuErr: "У языка есть документы, удаление невозможно"}

	// 3*** - document errors
	ErrDocumentNotFound   = DefinedError{Code: 3001, StatusCode: http.StatusNotFound, Err: "document not found", RuErr: "Документ не найден"}
	ErrDocumentMalformed  = DefinedError{Code: 3002, StatusCode: http.StatusBadRequest, Err: "serialized document is not valid", RuErr: "Сериализованный документ поврежден"}
	ErrDocumentTitleEmpty = DefinedError{Code: 3003, StatusCode: http.StatusBadRequest, Err: "document title is required", RuErr: "Заголовок документа не может быть пустым"}
	ErrDocumentLimit      = DefinedError{Code: 3004, StatusCode: http.StatusPaymentRequired, Err: "document limit reached", RuErr: "Достигнут лимит документов"}

	// 4*** - word errors
	ErrWordNotFound      = DefinedError{Code: 4001, StatusCode: http.StatusNotFound, Err: "word not found", RuErr: "Слово не найдено"}
	ErrWordAlreadyExists = DefinedError{Code: 4002, StatusCode: http.StatusConflict, Err: "word '%s' already exists in dictionary", RuErr: "Слово '%s' уже есть в словаре"}
	ErrWordSurfaceEmpty  = DefinedError{Code: 4003, StatusCode: http.StatusBadRequest, Err: "word surface text is required", RuErr: "Поверхностная форма слова не может быть пустой"}
	ErrWordLimit         = DefinedError{Code: 4004, StatusCode: http.StatusPaymentRequired, Err: "word limit reached", RuErr: "Достигнут лимит слов в словаре"}

	// 5*** - sentence errors
	ErrSentenceNotFound = DefinedError{Code: 5001, StatusCode: http.StatusNotFound, Err: "sentence not found", RuErr: "Предложение не найдено"}
	ErrSentenceEmpty    = DefinedError{Code: 5002, StatusCode: http.StatusBadRequest, Err: "sentence text is required", RuErr: "Текст предложения не может быть пустым"}

	// 6*** - grammar point errors
	ErrGrammarPointNotFound = DefinedError{Code: 6001, StatusCode: http.StatusNotFound, Err: "grammar point not found", RuErr: "Заметка не найдена"}

	// 7*** - tag errors
	ErrTagNotFound      = DefinedError{Code: 7001, StatusCode: http.StatusNotFound, Err: "tag not found", RuErr: "Тег не найден"}
	ErrTagAlreadyExists = DefinedError{Code: 7002, StatusCode: http.StatusConflict, Err: "tag '%s' already exists", RuErr: "Тег '%s' уже существует"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.Replace(e.Err, "%s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, "%s", "", -1)
	}
	return e
}
