package domain

import "time"

// FlashOffer is a store-wide percentage discount applied at display and
// checkout time only. Cart lines keep their snapshot prices; an offer never
// rewrites them.
type FlashOffer struct {
	ID              string     `json:"id"`
	DiscountPercent int        `json:"discount_percent"`
	ShowPopup       bool       `json:"show_popup"`
	PopupTitle      string     `json:"popup_title,omitempty"`
	PopupText       string     `json:"popup_text,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	Enabled         bool       `json:"is_enabled"`
}

// ActiveAt reports whether the offer window covers now. A missing bound is
// open-ended on that side.
func (o FlashOffer) ActiveAt(now time.Time) bool {
	if !o.Enabled {
		return false
	}
	if o.StartsAt != nil && o.StartsAt.After(now) {
		return false
	}
	if o.EndsAt != nil && o.EndsAt.Before(now) {
		return false
	}
	return true
}
