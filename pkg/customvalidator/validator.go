package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations собирает все кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("serial_number", isSerialNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("wc_code", isWorkCenterCode); err != nil {
		return err
	}
	return nil
}

// Серийный номер: буквы/цифры/дефисы, 3-64 символа (SN123456, MTR-9988).
func isSerialNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]{2,63}$`)
	return re.MatchString(fl.Field().String())
}

// Код рабочего центра: заглавные буквы/цифры/дефисы (WC-01).
func isWorkCenterCode(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{1,31}$`)
	return re.MatchString(fl.Field().String())
}
