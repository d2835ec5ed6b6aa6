package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/dbmetrics"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"service_name",
	"scheduled_start",
	"duration_minutes",
	"payment_method",
	"payment_status",
	"address_type",
	"address_text",
	"address_district",
	"address_landmark",
	"address_phone_confirmation",
	"region",
	"language",
	"urgency",
	"base_price",
	"regional_multiplier",
	"urgency_multiplier",
	"payment_multiplier",
	"total_price",
	"commission",
	"client_notes",
	"status",
	"created_at",
	"updated_at",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"client_id",
			"provider_id",
			"service_id",
			"service_name",
			"scheduled_start",
			"duration_minutes",
			"payment_method",
			"payment_status",
			"address_type",
			"address_text",
			"address_district",
			"address_landmark",
			"address_phone_confirmation",
			"region",
			"language",
			"urgency",
			"base_price",
			"regional_multiplier",
			"urgency_multiplier",
			"payment_multiplier",
			"total_price",
			"commission",
			"client_notes",
			"status",
			"confirmed_at",
		).
		Values(
			booking.ID,
			booking.ClientID,
			booking.ProviderID,
			booking.ServiceID,
			booking.ServiceName,
			booking.ScheduledStart,
			booking.DurationMinutes,
			booking.PaymentMethod,
			booking.PaymentStatus,
			booking.Address.Type,
			booking.Address.Text,
			booking.Address.District,
			booking.Address.Landmark,
			booking.Address.RequiresPhoneConfirmation,
			booking.Region,
			booking.Language,
			booking.Urgency,
			booking.BasePrice,
			booking.RegionalMultiplier,
			booking.UrgencyMultiplier,
			booking.PaymentMultiplier,
			booking.TotalPrice,
			booking.Commission,
			booking.ClientNotes,
			booking.Status,
			booking.ConfirmedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByProviderWithFilter получает бронирования мастера в окне [WindowStart, WindowEnd)
// с опциональным фильтром по статусам
//
// Внутри транзакции добавляет FOR UPDATE: проверка доступности слота и вставка
// нового бронирования выполняются под блокировкой строк дня, что закрывает
// гонку двух одновременных бронирований на пересекающиеся слоты
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		Where(squirrel.GtOrEq{"scheduled_start": filter.WindowStart}).
		Where(squirrel.Lt{"scheduled_start": filter.WindowEnd}).
		OrderBy("scheduled_start ASC")

	if len(filter.Statuses) > 0 {
		statusStrings := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByClientWithFilter получает историю бронирований клиента
// Опционально фильтрует по статусу, сортирует от новых к старым
func (r *Repository) GetByClientWithFilter(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("scheduled_start DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Отметка времени терминального статуса проставляется соответствующей колонкой
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	switch status {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.Set("confirmed_at", squirrel.Expr("NOW()"))
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", squirrel.Expr("NOW()"))
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ClientID,
			&booking.ProviderID,
			&booking.ServiceID,
			&booking.ServiceName,
			&booking.ScheduledStart,
			&booking.DurationMinutes,
			&booking.PaymentMethod,
			&booking.PaymentStatus,
			&booking.Address.Type,
			&booking.Address.Text,
			&booking.Address.District,
			&booking.Address.Landmark,
			&booking.Address.RequiresPhoneConfirmation,
			&booking.Region,
			&booking.Language,
			&booking.Urgency,
			&booking.BasePrice,
			&booking.RegionalMultiplier,
			&booking.UrgencyMultiplier,
			&booking.PaymentMultiplier,
			&booking.TotalPrice,
			&booking.Commission,
			&booking.ClientNotes,
			&booking.Status,
			&createdAt,
			&updatedAt,
			&booking.ConfirmedAt,
			&booking.CompletedAt,
			&booking.CancelledAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
