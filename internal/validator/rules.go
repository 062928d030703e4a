package validator

import (
	"taskhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации
func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("is-task-status", isTaskStatus); err != nil {
		return err
	}
	return v.RegisterValidation("is-project-role", isProjectRole)
}

func isTaskStatus(fl validator.FieldLevel) bool {
	return models.ValidTaskStatus(models.TaskStatus(fl.Field().String()))
}

func isProjectRole(fl validator.FieldLevel) bool {
	return models.ValidProjectRole(models.ProjectRole(fl.Field().String()))
}
