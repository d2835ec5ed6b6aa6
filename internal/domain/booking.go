package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// statusRank порядок статусов в жизненном цикле бронирования
// Переходы допустимы только вперед (pending -> confirmed -> in_progress -> completed)
var statusRank = map[BookingStatus]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusInProgress: 2,
	StatusCompleted:  3,
}

// Urgency срочность заказа, влияет на множитель цены
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
	UrgencyASAP   Urgency = "asap"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobileWallet PaymentMethod = "mobile_wallet"
	PaymentCrypto       PaymentMethod = "crypto"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Language язык пользователя
type Language string

const (
	LanguageKyrgyz  Language = "ky"
	LanguageRussian Language = "ru"
)

// Region регион оказания услуги
type Region string

const (
	RegionBishkek   Region = "bishkek"
	RegionOsh       Region = "osh"
	RegionJalalAbad Region = "jalalabad"
	RegionKarakol   Region = "karakol"
	RegionNaryn     Region = "naryn"
)

// Booking represents a single instant-booking reservation
type Booking struct {
	ID              string
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	ServiceName     string    // денормализовано для истории и уведомлений
	ScheduledStart  time.Time // момент начала с учетом таймзоны региона
	DurationMinutes int
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Address         Address
	Region          Region
	Language        Language
	Urgency         Urgency

	// Ценообразование (фиксируется на момент создания)
	BasePrice          float64
	RegionalMultiplier float64
	UrgencyMultiplier  float64
	PaymentMultiplier  float64
	TotalPrice         float64
	Commission         float64

	ClientNotes *string
	Status      BookingStatus

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// ScheduledEnd возвращает момент окончания бронирования
func (b *Booking) ScheduledEnd() time.Time {
	return b.ScheduledStart.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// OccupiesSlot returns true if the booking blocks its time slot
// Слот занимают только подтвержденные и выполняемые бронирования
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanTransitionTo проверяет допустимость перехода статуса
// Статусы монотонны; отмена возможна из любого нетерминального состояния
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if next == StatusCancelled {
		return !b.IsTerminal()
	}

	currentRank, okCurrent := statusRank[b.Status]
	nextRank, okNext := statusRank[next]
	if !okCurrent || !okNext {
		return false
	}
	return nextRank == currentRank+1
}

// Overlaps проверяет пересечение с интервалом [start, start+duration)
// Используется открытый интервал: соприкасающиеся границы пересечением не считаются
func (b *Booking) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return b.ScheduledStart.Before(end) && b.ScheduledEnd().After(start)
}

// ValidUrgency проверяет, что срочность известна
func ValidUrgency(u Urgency) bool {
	return u == UrgencyNormal || u == UrgencyUrgent || u == UrgencyASAP
}

// ValidPaymentMethod проверяет, что способ оплаты известен
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileWallet, PaymentCrypto:
		return true
	}
	return false
}

// ValidLanguage проверяет, что язык поддерживается
func ValidLanguage(l Language) bool {
	return l == LanguageKyrgyz || l == LanguageRussian
}
