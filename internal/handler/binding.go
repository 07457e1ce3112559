package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"participation-service/internal/response"
)

var (
	translator     ut.Translator
	translatorOnce sync.Once
)

// initValidator switches gin's validator to JSON field names and English messages.
func initValidator() {
	translatorOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")

		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	})
}

// bindJSON binds the request body, writing a 400 with per-field errors on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]response.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, response.FieldError{
				Field: fe.Field(),
				Error: fe.Translate(translator),
			})
		}
		response.SendValidationError(c, http.StatusBadRequest, "Invalid request body", fields)
		return false
	}

	response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
	return false
}
