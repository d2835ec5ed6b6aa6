package deliverylog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/dbmetrics"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/psqlbuilder"
)

var logColumns = []string{
	"id",
	"sent_at",
	"masked_phone",
	"carrier",
	"template_id",
	"language",
	"success",
	"error",
	"message_length",
}

// Repository репозиторий журнала доставки SMS
// Хранит только маскированные номера, полный номер в журнал не попадает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала доставки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал доставки
func (r *Repository) Append(ctx context.Context, entry *domain.DeliveryLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sms_delivery_log").
		Columns(
			"sent_at",
			"masked_phone",
			"carrier",
			"template_id",
			"language",
			"success",
			"error",
			"message_length",
		).
		Values(
			entry.SentAt,
			entry.MaskedPhone,
			entry.Carrier,
			entry.TemplateID,
			entry.Language,
			entry.Success,
			entry.Error,
			entry.MessageLength,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByDay получает записи журнала за один календарный день [day, day+24h)
// День интерпретируется в часовом поясе переданного времени
func (r *Repository) GetByDay(ctx context.Context, day time.Time) ([]*domain.DeliveryLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(logColumns...).
		From("sms_delivery_log").
		Where(squirrel.GtOrEq{"sent_at": dayStart}).
		Where(squirrel.Lt{"sent_at": dayEnd}).
		OrderBy("sent_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// PurgeOlderThan удаляет записи журнала старше переданной отметки времени
// Возвращает количество удаленных записей
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sms_delivery_log").
		Where(squirrel.Lt{"sent_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeOlderThan - get rows affected: %v", ErrExecQuery, err)
	}

	return purged, nil
}

func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.DeliveryLogEntry, error) {
	entries := make([]*domain.DeliveryLogEntry, 0)

	for rows.Next() {
		var entry domain.DeliveryLogEntry

		err := rows.Scan(
			&entry.ID,
			&entry.SentAt,
			&entry.MaskedPhone,
			&entry.Carrier,
			&entry.TemplateID,
			&entry.Language,
			&entry.Success,
			&entry.Error,
			&entry.MessageLength,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
