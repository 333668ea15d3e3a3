package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"museworks_backend/internal/models"
)

// registerCustomRules регистрирует кастомные правила для перечислений домена.
// Пустые значения считаются валидными, для них есть 'required'.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-work-status", validateWorkStatus)
	mustRegister("is-collection-status", validateCollectionStatus)
	mustRegister("is-review-decision", validateReviewDecision)
	mustRegister("is-target-type", validateTargetType)
}

func validateWorkStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.WorkStatus(value).IsValid()
}

func validateCollectionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CollectionStatus(value).IsValid()
}

func validateReviewDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ReviewDecision(value).IsValid()
}

func validateTargetType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.TargetType(value).IsValid()
}
