package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/bazaar-dev/bazaar/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by request bodies and
// makes validation errors name fields by their JSON key.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)

	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return utils.IsSlug(fl.Field().String())
	})
}

// RespondBindError reports a failed ShouldBindJSON as a 400 naming the first
// offending field.
func RespondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": BindErrorMessage(err)})
}

func BindErrorMessage(err error) string {
	var vErrs validator.ValidationErrors

	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		fe := vErrs[0]

		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s: This field is required.", fe.Field())
		case "max":
			return fmt.Sprintf("%s: Ensure this field has no more than %s characters.", fe.Field(), fe.Param())
		case "slug":
			return fmt.Sprintf("%s: Enter a valid slug consisting of letters, numbers, underscores or hyphens.", fe.Field())
		case "email":
			return fmt.Sprintf("%s: Enter a valid email address.", fe.Field())
		default:
			return fmt.Sprintf("%s: failed on the '%s' rule", fe.Field(), fe.Tag())
		}
	}

	if errors.Is(err, io.EOF) {
		return "Request body is required"
	}

	return "Invalid request"
}
