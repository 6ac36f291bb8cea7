package handler

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
)

func init() {
	// Report validation failures with JSON field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// parseID reads the :id path parameter. On failure it writes a 400 response
// and returns false.
func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NewFieldError("id", "Invalid "+resource+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false. An empty body is accepted when optional is set.
func bindJSON(c *gin.Context, obj interface{}, optional bool) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	response.Error(c, bindError(err))
	return false
}

// bindError converts a binding failure into a validation error
func bindError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apperror.FieldError, len(verrs))
		for i, fe := range verrs {
			fieldErrors[i] = apperror.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: validationMessage(fe),
			}
		}
		return apperror.NewValidationError(fieldErrors)
	}
	if errors.Is(err, io.EOF) {
		return apperror.NewFieldError("body", "Request body is required")
	}
	return apperror.NewFieldError("body", "Invalid request body: "+err.Error())
}

// fieldPath drops the struct name from a validator namespace
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	default:
		return "Failed the " + fe.Tag() + " check"
	}
}
