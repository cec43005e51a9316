package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// NullableTime различает три состояния JSON-поля: не прислано (Set=false),
// прислан null (Set=true, Valid=false) и прислано значение (Set=true, Valid=true).
// Нужен для полей вроде scrap_date, где null - это осознанная команда "очистить".
type NullableTime struct {
	null.Time
	Set bool
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	return n.Time.UnmarshalJSON(data)
}

type NullableUint64 struct {
	null.Uint64
	Set bool
}

func (n *NullableUint64) UnmarshalJSON(data []byte) error {
	n.Set = true
	return n.Uint64.UnmarshalJSON(data)
}

type NullableString struct {
	null.String
	Set bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	return n.String.UnmarshalJSON(data)
}

// RegisterNullTypes учит валидатор "смотреть внутрь" null-обёрток,
// чтобы omitempty/oneof работали по вложенному значению.
func RegisterNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(NullableString); ok {
			if val.Valid {
				return val.String.String
			}
		}
		return nil
	}, NullableString{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(NullableUint64); ok {
			if val.Valid {
				return val.Uint64.Uint64
			}
		}
		return nil
	}, NullableUint64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(NullableTime); ok {
			if val.Valid {
				return val.Time.Time
			}
		}
		return nil
	}, NullableTime{})
}
