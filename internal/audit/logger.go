package audit

import (
	"context"
	"encoding/json"
	"time"

	cr "github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Logger writes audit rows synchronously. Use cases go through Dispatcher.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		ShopID:   ev.ShopID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return cr.Wrap(l.db.WithContext(ctx).Create(&row).Error, "write audit log")
}

// Filter narrows an audit listing. Dates are business calendar days.
type Filter struct {
	ShopID   *uint
	Action   string
	Entity   string
	EntityID *uint
	From     string
	To       string
	Page     int
	Limit    int
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (l *Logger) List(ctx context.Context, f Filter) (Page, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.ShopID != nil {
		q = q.Where("shop_id = ?", *f.ShopID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.From != "" {
		if from, err := time.ParseInLocation(time.DateOnly, f.From, timezone.Business); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if f.To != "" {
		if to, err := time.ParseInLocation(time.DateOnly, f.To, timezone.Business); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	out := Page{Page: f.Page, Limit: f.Limit}
	if err := q.Count(&out.Total).Error; err != nil {
		return Page{}, cr.Wrap(err, "count audit logs")
	}
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&out.Logs).Error; err != nil {
		return Page{}, cr.Wrap(err, "list audit logs")
	}
	return out, nil
}
