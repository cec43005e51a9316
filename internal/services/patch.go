package services

import (
	"time"

	"gearguard/pkg/validation"
)

// Хелперы частичного обновления: поле без значения в JSON не трогает цель,
// явный null обнуляет, значение затирает.

func applyNullableUint64(target **uint64, src validation.NullableUint64) {
	if !src.Set {
		return
	}
	if src.Valid {
		v := src.Uint64.Uint64
		*target = &v
	} else {
		*target = nil
	}
}

func applyNullableString(target **string, src validation.NullableString) {
	if !src.Set {
		return
	}
	if src.Valid {
		v := src.String.String
		*target = &v
	} else {
		*target = nil
	}
}

func applyNullableTime(target **time.Time, src validation.NullableTime) {
	if !src.Set {
		return
	}
	if src.Valid {
		v := src.Time.Time
		*target = &v
	} else {
		*target = nil
	}
}
