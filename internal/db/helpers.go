package db

import (
	"context"
	"database/sql"

	"transport-backend/internal/utils"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func NullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func NullMoney(p *utils.Money) any {
	if p == nil {
		return nil
	}
	return p.String()
}

func NullQuantity(p *utils.Quantity) any {
	if p == nil {
		return nil
	}
	return p.Decimal()
}

func StringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func IntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// MoneyPtr parses a nullable DECIMAL(10,2) column.
func MoneyPtr(v sql.NullString) (*utils.Money, error) {
	if !v.Valid {
		return nil, nil
	}
	m, err := utils.ParseMoney(v.String)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func QuantityPtr(v sql.NullString) (*utils.Quantity, error) {
	if !v.Valid {
		return nil, nil
	}
	q, err := utils.ParseQuantity(v.String)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
