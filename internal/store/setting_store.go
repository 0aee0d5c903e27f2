package store

import "context"

type SettingStore struct {
	db DB
}

// Setting codes used by the engines.
const (
	SettingSavingPercent = "SAVING_PERCENT"
	SettingPurchaseFee   = "PURCHASE_FEE"
	SettingSaleFee       = "SALE_FEE"
)

func NewSettingStore(db DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get returns the raw value for a code. Values may be numeric or
// string-encoded numeric; parsing is up to the caller.
func (s *SettingStore) Get(ctx context.Context, code string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `
		SELECT value
		FROM settings
		WHERE code = $1
	`, code)
	return value, err
}

func (s *SettingStore) Set(ctx context.Context, tx Execer, code, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (code, value)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, code, value)
	return err
}

func (s *SettingStore) All(ctx context.Context) (map[string]string, error) {
	type row struct {
		Code  string `db:"code"`
		Value string `db:"value"`
	}
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
		SELECT code, value
		FROM settings
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(rows))
	for _, item := range rows {
		settings[item.Code] = item.Value
	}
	return settings, nil
}
