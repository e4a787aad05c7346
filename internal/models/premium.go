// Package models содержит доменные структуры сервиса парковки: пользователя
// с его premium-подпиской, транспортные средства и парковочные билеты.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/parking-service/internal/lib/period"
)

var (
	// ErrInvalidPremiumType: тип premium не равен month или year.
	ErrInvalidPremiumType = errors.New("invalid premium type")
	// ErrNoActiveSubscription: у пользователя нет активного premium.
	ErrNoActiveSubscription = errors.New("user has no active premium subscription")
)

// PremiumType: расчётный период подписки.
type PremiumType string

const (
	PremiumMonth PremiumType = "month"
	PremiumYear  PremiumType = "year"
	PremiumNone  PremiumType = "none"
)

// ParsePremiumType принимает только month и year.
func ParsePremiumType(s string) (PremiumType, error) {
	switch t := PremiumType(s); t {
	case PremiumMonth, PremiumYear:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPremiumType, s)
	}
}

// PremiumStatus: состояние подписки.
type PremiumStatus string

const (
	PremiumStatusNone          PremiumStatus = "none"
	PremiumStatusActive        PremiumStatus = "active"
	PremiumStatusCancelPending PremiumStatus = "cancel_pending"
)

// Premium: состояние premium-подписки пользователя:
// нет подписки, активна, активна с запрошенной отменой.
//
// Поля закрыты, значения создаются только через NoPremium, NewPremium,
// Premium.Cancel и RestorePremium, поэтому частично заполненных состояний не бывает.
type Premium struct {
	status PremiumStatus
	plan   PremiumType
	start  time.Time
	end    time.Time
}

// NoPremium возвращает пустое состояние без подписки.
func NoPremium() Premium {
	return Premium{status: PremiumStatusNone, plan: PremiumNone}
}

// NewPremium активирует подписку с момента now. Конец периода считается
// календарно: +1 месяц или +1 год с прижатием к последнему дню месяца.
// Отложенная отмена при этом сбрасывается. Даты считаются в UTC.
func NewPremium(plan PremiumType, now time.Time) (Premium, error) {
	now = now.UTC()
	var end time.Time
	switch plan {
	case PremiumMonth:
		end = period.AddMonths(now, 1)
	case PremiumYear:
		end = period.AddYears(now, 1)
	default:
		return Premium{}, fmt.Errorf("%w: %q", ErrInvalidPremiumType, plan)
	}
	return Premium{
		status: PremiumStatusActive,
		plan:   plan,
		start:  now,
		end:    end,
	}, nil
}

// Cancel помечает подписку к отмене, доступ сохраняется до конца периода.
func (p Premium) Cancel() (Premium, error) {
	if !p.IsActive() {
		return p, ErrNoActiveSubscription
	}
	p.status = PremiumStatusCancelPending
	return p, nil
}

// Status возвращает состояние подписки.
func (p Premium) Status() PremiumStatus {
	if p.status == "" {
		return PremiumStatusNone
	}
	return p.status
}

// Type возвращает расчётный период, для пустого состояния: PremiumNone.
func (p Premium) Type() PremiumType {
	if !p.IsActive() {
		return PremiumNone
	}
	return p.plan
}

// StartDate возвращает дату начала, нулевое время: если её нет.
func (p Premium) StartDate() time.Time { return p.start }

// EndDate возвращает дату окончания, нулевое время: если её нет.
func (p Premium) EndDate() time.Time { return p.end }

// IsActive сообщает, действует ли подписка (включая ожидающую отмены).
func (p Premium) IsActive() bool {
	return p.Status() != PremiumStatusNone
}

// IsCancelPending сообщает, запрошена ли отмена.
func (p Premium) IsCancelPending() bool {
	return p.Status() == PremiumStatusCancelPending
}

// ExpiredAt сообщает, что активная подписка устарела к моменту now:
// дата окончания отсутствует или уже наступила.
func (p Premium) ExpiredAt(now time.Time) bool {
	if !p.IsActive() {
		return false
	}
	return p.end.IsZero() || !p.end.After(now)
}

// PremiumColumns: плоское представление подписки в том виде,
// в каком оно хранится в таблице users.
type PremiumColumns struct {
	Premium       bool
	Type          PremiumType
	StartDate     *time.Time
	EndDate       *time.Time
	CancelPending bool
}

// Columns раскладывает подписку по полям хранилища.
func (p Premium) Columns() PremiumColumns {
	if !p.IsActive() {
		return PremiumColumns{Type: PremiumNone}
	}
	c := PremiumColumns{
		Premium:       true,
		Type:          p.plan,
		CancelPending: p.IsCancelPending(),
	}
	if !p.start.IsZero() {
		start := p.start
		c.StartDate = &start
	}
	if !p.end.IsZero() {
		end := p.end
		c.EndDate = &end
	}
	return c
}

// RestorePremium восстанавливает подписку из сохранённых полей.
// Строка с premium = false всегда даёт NoPremium, даже если остальные поля заполнены.
// Активная строка без даты окончания сохраняется как есть, её сбросит сверка.
func RestorePremium(c PremiumColumns) Premium {
	if !c.Premium {
		return NoPremium()
	}
	p := Premium{status: PremiumStatusActive, plan: c.Type}
	if c.CancelPending {
		p.status = PremiumStatusCancelPending
	}
	if c.StartDate != nil {
		p.start = *c.StartDate
	}
	if c.EndDate != nil {
		p.end = *c.EndDate
	}
	return p
}

type premiumJSON struct {
	Premium       bool          `json:"premium"`
	Status        PremiumStatus `json:"premium_status"`
	Type          PremiumType   `json:"premium_type"`
	StartDate     *time.Time    `json:"premium_start_date"`
	EndDate       *time.Time    `json:"premium_end_date"`
	CancelPending bool          `json:"premium_cancel_pending"`
}

// MarshalJSON отдаёт подписку плоскими полями premium_*.
func (p Premium) MarshalJSON() ([]byte, error) {
	c := p.Columns()
	return json.Marshal(premiumJSON{
		Premium:       c.Premium,
		Status:        p.Status(),
		Type:          c.Type,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		CancelPending: c.CancelPending,
	})
}

// UnmarshalJSON восстанавливает подписку через RestorePremium.
func (p *Premium) UnmarshalJSON(data []byte) error {
	var raw premiumJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = RestorePremium(PremiumColumns{
		Premium:       raw.Premium,
		Type:          raw.Type,
		StartDate:     raw.StartDate,
		EndDate:       raw.EndDate,
		CancelPending: raw.CancelPending,
	})
	return nil
}
