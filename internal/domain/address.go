package domain

import (
	"fmt"
	"unicode/utf8"
)

// AddressType вариант указания адреса клиентом
type AddressType string

const (
	// AddressExact точный адрес (улица, дом)
	AddressExact AddressType = "exact"
	// AddressLandmark адрес относительно ориентира
	AddressLandmark AddressType = "landmark"
	// AddressDistrict адрес с точностью до района
	AddressDistrict AddressType = "district"
)

// Address адрес оказания услуги
// Тегированный вариант: обязательное поле варианта зависит от типа
type Address struct {
	Type     AddressType
	Text     string  // свободное описание, минимум MinAddressTextLength символов
	District *string // обязателен для AddressDistrict
	Landmark *string // обязателен для AddressLandmark

	// RequiresPhoneConfirmation мастер должен уточнить адрес по телефону перед выездом
	RequiresPhoneConfirmation bool
}

// Validate проверяет форму адреса на границе системы
func (a *Address) Validate() error {
	switch a.Type {
	case AddressExact:
		// достаточно текста
	case AddressLandmark:
		if a.Landmark == nil || *a.Landmark == "" {
			return fmt.Errorf("landmark is required for landmark address")
		}
	case AddressDistrict:
		if a.District == nil || *a.District == "" {
			return fmt.Errorf("district is required for district address")
		}
	default:
		return fmt.Errorf("unknown address type %q", a.Type)
	}

	if utf8.RuneCountInString(a.Text) < MinAddressTextLength {
		return fmt.Errorf("address text must be at least %d characters", MinAddressTextLength)
	}

	return nil
}
