package httpapi

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sport-log/sport-log-server/internal/domain"
)

// init registers the domain-specific struct tags createActionRuleRequest and
// updateActionRuleRequest bind against, on top of gin's default validator
// engine (§4.2: action rules fire on a Weekday, Monday=0..Sunday=6 — a value
// outside that range would otherwise only be caught deep in the scheduler's
// weekday arithmetic).
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("weekday", validateWeekday)
}

func validateWeekday(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Int {
		return false
	}
	w := domain.Weekday(field.Int())
	return w >= domain.Monday && w <= domain.Sunday
}
