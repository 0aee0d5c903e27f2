package store

import "context"

type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Log(ctx context.Context, tx Execer, actorID, action, entityType, entityID, data string) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, actorID, action, entityType, entityID, data)
	return err
}

func (s *AuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	rows := []map[string]any{}
	query := `
		SELECT actor_id, action, entity_type, entity_id, data, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var items []struct {
		ActorID    string `db:"actor_id"`
		Action     string `db:"action"`
		EntityType string `db:"entity_type"`
		EntityID   string `db:"entity_id"`
		Data       string `db:"data"`
		CreatedAt  any    `db:"created_at"`
	}
	if err := s.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, err
	}
	for _, item := range items {
		rows = append(rows, map[string]any{
			"actor_id":    item.ActorID,
			"action":      item.Action,
			"entity_type": item.EntityType,
			"entity_id":   item.EntityID,
			"data":        item.Data,
			"created_at":  item.CreatedAt,
		})
	}
	return rows, nil
}
