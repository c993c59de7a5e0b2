package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dinner-scheduler/internal/consent"
)

type recordRow struct {
	ID             string `db:"id"`
	PhoneNumber    string `db:"phone_number"`
	MissionaryType string `db:"missionary_type"`
	ConsentedAt    int64  `db:"consented_at"`
	ConsentText    string `db:"consent_text"`
	IPAddress      string `db:"ip_address"`
	Method         string `db:"method"`
	Status         string `db:"status"`
}

func (row recordRow) toRecord() consent.Record {
	return consent.Record{
		ID:             row.ID,
		PhoneNumber:    row.PhoneNumber,
		MissionaryType: row.MissionaryType,
		Timestamp:      time.Unix(0, row.ConsentedAt).UTC(),
		ConsentText:    row.ConsentText,
		IPAddress:      row.IPAddress,
		Method:         consent.Method(row.Method),
		Status:         consent.Status(row.Status),
	}
}

func (r *implRepository) Append(ctx context.Context, input consent.AppendInput) (consent.Record, error) {
	if input.PhoneNumber == "" {
		return consent.Record{}, consent.ErrInvalidRecord
	}

	row := recordRow{
		ID:             uuid.NewString(),
		PhoneNumber:    input.PhoneNumber,
		MissionaryType: orDefault(input.MissionaryType, consent.UnknownType),
		ConsentedAt:    r.now().UTC().UnixNano(),
		ConsentText:    consent.Text,
		IPAddress:      orDefault(input.IPAddress, "unknown"),
		Method:         string(orDefault(input.Method, consent.MethodWebForm)),
		Status:         string(orDefault(input.Status, consent.StatusOptedIn)),
	}

	const query = `
		INSERT INTO consent_records (
			id, phone_number, missionary_type, consented_at,
			consent_text, ip_address, method, status
		) VALUES (
			:id, :phone_number, :missionary_type, :consented_at,
			:consent_text, :ip_address, :method, :status
		)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return consent.Record{}, fmt.Errorf("inserting consent record for %s: %w", input.PhoneNumber, err)
	}
	return row.toRecord(), nil
}

func (r *implRepository) History(ctx context.Context, phone string) ([]consent.Record, error) {
	const query = `
		SELECT id, phone_number, missionary_type, consented_at,
		       consent_text, ip_address, method, status
		FROM consent_records
		WHERE phone_number = ?
		ORDER BY consented_at DESC, rowid DESC`

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, phone); err != nil {
		return nil, fmt.Errorf("querying consent history for %s: %w", phone, err)
	}

	records := make([]consent.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}
