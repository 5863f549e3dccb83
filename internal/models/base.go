package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func init() {
	// Prices travel as JSON numbers, the way the storefront client sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base carries the id and timestamps shared by every record.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StringArray is stored as text[] on postgres and as the same literal in a
// text column elsewhere.
type StringArray []string

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

// ContainsAny reports whether any of vals is present, case-insensitively.
func (a StringArray) ContainsAny(vals ...string) bool {
	for _, s := range a {
		for _, v := range vals {
			if strings.EqualFold(s, v) {
				return true
			}
		}
	}
	return false
}

// UniqueStrings trims values and drops blanks and duplicates, keeping order.
func UniqueStrings(vals []string) StringArray {
	out := make(StringArray, 0, len(vals))
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&Cart{}, &CartItem{},
		&Checkout{}, &CheckoutItem{},
		&Order{}, &OrderItem{},
		&Portfolio{},
		&Review{},
		&Contact{},
		&Subscriber{},
		&BlogPost{},
	}
}
