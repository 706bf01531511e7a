// Package portfolio keeps a time-indexed ledger of one asset and one currency.
//
// The ledger is a date-ordered list of snapshots. Each snapshot is valid from
// its date until the next one. Inserting an event at a past date shifts every
// later snapshot by the same delta, which costs O(n) in the number of later
// snapshots. A Portfolio is not safe for concurrent use.
package portfolio

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ActionKind is the kind of event recorded in the action log.
type ActionKind string

const (
	ActionEnter ActionKind = "ENTER"
	ActionExit  ActionKind = "EXIT"
)

// WealthItem is the portfolio state effective from Date.
type WealthItem struct {
	Date     time.Time       `json:"date"`
	Asset    decimal.Decimal `json:"asset"`
	Currency decimal.Decimal `json:"currency"`
}

// TimedAction records a portfolio-affecting event.
type TimedAction struct {
	Date time.Time  `json:"date"`
	Kind ActionKind `json:"kind"`
}

// Portfolio is the wealth ledger.
type Portfolio struct {
	items   []WealthItem
	actions []TimedAction
}

// New starts a ledger at start with the given holdings.
func New(start time.Time, asset, currency decimal.Decimal) (*Portfolio, error) {
	if asset.IsNegative() || currency.IsNegative() {
		return nil, fmt.Errorf("%w: starting asset %s, currency %s", ErrNegativeBalance, asset, currency)
	}
	return &Portfolio{items: []WealthItem{{Date: start, Asset: asset, Currency: currency}}}, nil
}

// Restore rebuilds a ledger from stored snapshots and actions, both sorted by date.
func Restore(items []WealthItem, actions []TimedAction) (*Portfolio, error) {
	if len(items) == 0 {
		return nil, errors.New("portfolio needs at least one wealth item")
	}
	for i, it := range items {
		if it.Asset.IsNegative() || it.Currency.IsNegative() {
			return nil, fmt.Errorf("%w: item at %s", ErrNegativeBalance, it.Date)
		}
		if i > 0 && !it.Date.After(items[i-1].Date) {
			return nil, fmt.Errorf("wealth items must have strictly increasing dates, got %s after %s", it.Date, items[i-1].Date)
		}
	}
	p := &Portfolio{
		items:   append([]WealthItem(nil), items...),
		actions: append([]TimedAction(nil), actions...),
	}
	return p, nil
}

// Clone returns an independent copy.
func (p *Portfolio) Clone() *Portfolio {
	return &Portfolio{
		items:   append([]WealthItem(nil), p.items...),
		actions: append([]TimedAction(nil), p.actions...),
	}
}

// StartDate returns the date of the first snapshot.
func (p *Portfolio) StartDate() time.Time {
	return p.items[0].Date
}

// Items returns a copy of the snapshots.
func (p *Portfolio) Items() []WealthItem {
	return append([]WealthItem(nil), p.items...)
}

// Actions returns a copy of the action log.
func (p *Portfolio) Actions() []TimedAction {
	return append([]TimedAction(nil), p.actions...)
}

// Last returns the latest snapshot.
func (p *Portfolio) Last() WealthItem {
	return p.items[len(p.items)-1]
}

// AvailableCapitalAt returns the currency held at date.
func (p *Portfolio) AvailableCapitalAt(date time.Time) (decimal.Decimal, error) {
	it, err := p.itemAt(date)
	if err != nil {
		return decimal.Zero, err
	}
	return it.Currency, nil
}

// AssetVolumeAt returns the asset volume held at date.
func (p *Portfolio) AssetVolumeAt(date time.Time) (decimal.Decimal, error) {
	it, err := p.itemAt(date)
	if err != nil {
		return decimal.Zero, err
	}
	return it.Asset, nil
}

// Enter spends currency to buy volume at date.
//
// It fails when the currency held at date is insufficient, or when a later
// entry is still open at date.
func (p *Portfolio) Enter(date time.Time, currency, volume decimal.Decimal) error {
	if err := p.checkEntry(date); err != nil {
		return err
	}
	return p.apply(date, volume, currency.Neg(), func(next WealthItem) error {
		if next.Currency.IsNegative() {
			return fmt.Errorf("%w: need %s at %s", ErrInsufficientCapital, currency, date)
		}
		return nil
	}, ActionEnter)
}

// Exit sells volume at date and credits currency.
func (p *Portfolio) Exit(date time.Time, currency, volume decimal.Decimal) error {
	return p.apply(date, volume.Neg(), currency, func(next WealthItem) error {
		if next.Asset.IsNegative() {
			return fmt.Errorf("%w: need %s at %s", ErrInsufficientAsset, volume, date)
		}
		return nil
	}, ActionExit)
}

// checkEntry walks the actions newer than date from the most recent one:
// an exit means the later entries are closed, an entry means one is still open.
func (p *Portfolio) checkEntry(date time.Time) error {
	for i := len(p.actions) - 1; i >= 0 && p.actions[i].Date.After(date); i-- {
		switch p.actions[i].Kind {
		case ActionExit:
			return nil
		case ActionEnter:
			return fmt.Errorf("%w: entry at %s, open entry at %s", ErrEntryBeforeOpenEntry, date, p.actions[i].Date)
		}
	}
	return nil
}

// apply validates then inserts the snapshot at date and shifts every later one.
func (p *Portfolio) apply(date time.Time, dAsset, dCurrency decimal.Decimal, check func(WealthItem) error, kind ActionKind) error {
	idx, err := p.indexAt(date)
	if err != nil {
		return err
	}

	base := p.items[idx]
	next := WealthItem{Date: date, Asset: base.Asset.Add(dAsset), Currency: base.Currency.Add(dCurrency)}
	if err := check(next); err != nil {
		return err
	}
	if next.Asset.IsNegative() || next.Currency.IsNegative() {
		return fmt.Errorf("%w: at %s", ErrNegativeBalance, date)
	}
	for _, later := range p.items[idx+1:] {
		if later.Asset.Add(dAsset).IsNegative() || later.Currency.Add(dCurrency).IsNegative() {
			return fmt.Errorf("%w: update at %s breaks balance at %s", ErrNegativeBalance, date, later.Date)
		}
	}

	if base.Date.Equal(date) {
		p.items[idx] = next
	} else {
		idx++
		p.items = append(p.items, WealthItem{})
		copy(p.items[idx+1:], p.items[idx:])
		p.items[idx] = next
	}
	for i := idx + 1; i < len(p.items); i++ {
		p.items[i].Asset = p.items[i].Asset.Add(dAsset)
		p.items[i].Currency = p.items[i].Currency.Add(dCurrency)
	}

	pos := sort.Search(len(p.actions), func(i int) bool { return p.actions[i].Date.After(date) })
	p.actions = append(p.actions, TimedAction{})
	copy(p.actions[pos+1:], p.actions[pos:])
	p.actions[pos] = TimedAction{Date: date, Kind: kind}
	return nil
}

func (p *Portfolio) itemAt(date time.Time) (WealthItem, error) {
	idx, err := p.indexAt(date)
	if err != nil {
		return WealthItem{}, err
	}
	return p.items[idx], nil
}

// indexAt returns the index of the latest snapshot dated at or before date.
func (p *Portfolio) indexAt(date time.Time) (int, error) {
	if date.Before(p.items[0].Date) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrBeforeStart, date, p.items[0].Date)
	}
	return sort.Search(len(p.items), func(i int) bool { return p.items[i].Date.After(date) }) - 1, nil
}
