package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Only 3- and 6-digit hex colors are stored; alpha forms are rejected.
var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notecolor", NoteColor)
	}
}

// NoteColor is the binding validation behind the notecolor tag.
func NoteColor(fl validator.FieldLevel) bool {
	return colorPattern.MatchString(fl.Field().String())
}
