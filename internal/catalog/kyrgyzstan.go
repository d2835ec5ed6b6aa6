package catalog

import "github.com/aibekm/TezUsta-BookingEngine/internal/domain"

// Template identifiers
const (
	TemplateNewBookingProvider     = "booking_new_provider"
	TemplateBookingConfirmedClient = "booking_confirmed_client"
	TemplateBookingCancelled       = "booking_cancelled"
	TemplateBookingReminder        = "booking_reminder"
)

// Message keys
const (
	MsgNextSteps              = "next_steps"
	MsgPaymentCash            = "payment_instructions_cash"
	MsgPaymentCard            = "payment_instructions_card"
	MsgPaymentMobileWallet    = "payment_instructions_mobile_wallet"
	MsgPaymentCrypto          = "payment_instructions_crypto"
	MsgErrSlotNotAvailable    = "err_slot_not_available"
	MsgErrOutsideWorkingHours = "err_outside_working_hours"
	MsgErrServiceNotFound     = "err_service_not_found"
	MsgErrProviderNotFound    = "err_provider_not_found"
	MsgErrClientNotFound      = "err_client_not_found"
	MsgErrInvalidAddress      = "err_invalid_address"
)

// Kyrgyzstan возвращает конфигурацию справочника для рынка Кыргызстана
func Kyrgyzstan() Config {
	return Config{
		DefaultLanguage: domain.LanguageRussian,

		Regions: map[domain.Region]RegionalSettings{
			domain.RegionBishkek: {
				Multiplier:    1.0,
				WorkStartHour: 8,
				WorkEndHour:   22,
				Currency:      "KGS",
				Timezone:      "Asia/Bishkek",
			},
			domain.RegionOsh: {
				Multiplier:    0.9,
				WorkStartHour: 8,
				WorkEndHour:   21,
				Currency:      "KGS",
				Timezone:      "Asia/Bishkek",
			},
			domain.RegionJalalAbad: {
				Multiplier:    0.85,
				WorkStartHour: 9,
				WorkEndHour:   20,
				Currency:      "KGS",
				Timezone:      "Asia/Bishkek",
			},
			domain.RegionKarakol: {
				Multiplier:    0.9,
				WorkStartHour: 9,
				WorkEndHour:   20,
				Currency:      "KGS",
				Timezone:      "Asia/Bishkek",
			},
			domain.RegionNaryn: {
				Multiplier:    0.8,
				WorkStartHour: 9,
				WorkEndHour:   19,
				Currency:      "KGS",
				Timezone:      "Asia/Bishkek",
			},
		},

		Urgency: map[domain.Urgency]float64{
			domain.UrgencyNormal: 1.0,
			domain.UrgencyUrgent: 1.2,
			domain.UrgencyASAP:   1.5,
		},

		// Наличные со скидкой, мобильный кошелек с наценкой за эквайринг
		Payment: map[domain.PaymentMethod]float64{
			domain.PaymentCash:         0.95,
			domain.PaymentCard:         1.0,
			domain.PaymentMobileWallet: 1.02,
			domain.PaymentCrypto:       0.98,
		},

		Commission: map[domain.PaymentMethod]float64{
			domain.PaymentCash:         0.10,
			domain.PaymentCard:         0.12,
			domain.PaymentMobileWallet: 0.12,
			domain.PaymentCrypto:       0.08,
		},

		Carriers: []CarrierProfile{
			{
				Name:             "Beeline KG",
				Prefixes:         []string{"+996770", "+996771", "+996772", "+996777", "+996220", "+996221"},
				MaxMessageLength: 160,
				Encoding:         "GSM-7",
			},
			{
				Name:             "MegaCom",
				Prefixes:         []string{"+996550", "+996551", "+996552", "+996553", "+996555", "+996755"},
				MaxMessageLength: 160,
				Encoding:         "GSM-7",
			},
			{
				Name:             "O!",
				Prefixes:         []string{"+996700", "+996701", "+996702", "+996703", "+996705", "+996706", "+996707", "+996708", "+996709"},
				MaxMessageLength: 140,
				Encoding:         "UCS-2",
			},
		},

		Templates: map[string]map[domain.Language]string{
			TemplateNewBookingProvider: {
				domain.LanguageRussian: "Новый заказ: {service_name}, {date} в {time}. Адрес: {address}. Клиент: {client_name}, тел. {client_phone}. Оплата: {total_price} {currency}.",
				domain.LanguageKyrgyz:  "Жаңы заказ: {service_name}, {date} саат {time}. Дарек: {address}. Кардар: {client_name}, тел. {client_phone}. Төлөм: {total_price} {currency}.",
			},
			TemplateBookingConfirmedClient: {
				domain.LanguageRussian: "Бронирование подтверждено: {service_name}, {date} в {time}. Мастер: {provider_name}, тел. {provider_phone}. К оплате: {total_price} {currency}.",
				domain.LanguageKyrgyz:  "Брондоо ырасталды: {service_name}, {date} саат {time}. Уста: {provider_name}, тел. {provider_phone}. Төлөмгө: {total_price} {currency}.",
			},
			TemplateBookingCancelled: {
				domain.LanguageRussian: "Бронирование {booking_id} отменено. Причина: {reason}.",
				domain.LanguageKyrgyz:  "Брондоо {booking_id} жокко чыгарылды. Себеби: {reason}.",
			},
			TemplateBookingReminder: {
				domain.LanguageRussian: "Напоминание: {service_name} завтра в {time}. Адрес: {address}.",
				domain.LanguageKyrgyz:  "Эскертүү: {service_name} эртең саат {time}. Дарек: {address}.",
			},
		},

		Messages: map[string]map[domain.Language]string{
			MsgNextSteps: {
				domain.LanguageRussian: "Мастер свяжется с вами перед выездом. Будьте доступны по указанному телефону.",
				domain.LanguageKyrgyz:  "Уста чыгар алдында сиз менен байланышат. Көрсөтүлгөн телефон боюнча жеткиликтүү болуңуз.",
			},
			MsgPaymentCash: {
				domain.LanguageRussian: "Оплата наличными мастеру после выполнения услуги.",
				domain.LanguageKyrgyz:  "Кызмат аткарылгандан кийин устага накталай төлөңүз.",
			},
			MsgPaymentCard: {
				domain.LanguageRussian: "Оплата картой через приложение после выполнения услуги.",
				domain.LanguageKyrgyz:  "Кызмат аткарылгандан кийин тиркеме аркылуу карта менен төлөңүз.",
			},
			MsgPaymentMobileWallet: {
				domain.LanguageRussian: "Оплата через мобильный кошелек (O!Деньги, Элсом) по номеру из приложения.",
				domain.LanguageKyrgyz:  "Тиркемедеги номер боюнча мобилдик капчык (O!Деньги, Элсом) аркылуу төлөңүз.",
			},
			MsgPaymentCrypto: {
				domain.LanguageRussian: "Оплата криптовалютой по адресу кошелька из приложения.",
				domain.LanguageKyrgyz:  "Тиркемедеги капчык дареги боюнча криптовалюта менен төлөңүз.",
			},
			MsgErrSlotNotAvailable: {
				domain.LanguageRussian: "выбранное время занято, предложены альтернативные слоты",
				domain.LanguageKyrgyz:  "тандалган убакыт бош эмес, альтернативалуу убакыттар сунушталды",
			},
			MsgErrOutsideWorkingHours: {
				domain.LanguageRussian: "выбранное время вне рабочих часов региона",
				domain.LanguageKyrgyz:  "тандалган убакыт аймактын жумуш убактысынан тышкары",
			},
			MsgErrServiceNotFound: {
				domain.LanguageRussian: "услуга не найдена или недоступна для мгновенного бронирования",
				domain.LanguageKyrgyz:  "кызмат табылган жок же заматта брондоого жеткиликтүү эмес",
			},
			MsgErrProviderNotFound: {
				domain.LanguageRussian: "мастер не найден",
				domain.LanguageKyrgyz:  "уста табылган жок",
			},
			MsgErrClientNotFound: {
				domain.LanguageRussian: "клиент не найден",
				domain.LanguageKyrgyz:  "кардар табылган жок",
			},
			MsgErrInvalidAddress: {
				domain.LanguageRussian: "некорректный адрес",
				domain.LanguageKyrgyz:  "дарек туура эмес",
			},
		},
	}
}
