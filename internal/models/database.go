package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when an entry does not exist
	ErrNotFound = errors.New("entry not found")
	// ErrDuplicate is returned when adding a title already in the watchlist
	ErrDuplicate = errors.New("already in your watchlist")
	// ErrInvalid is returned when an entry fails validation
	ErrInvalid = errors.New("invalid entry")
)

// Database wraps the gorm store holding the user's collections
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the sqlite database and migrates the schema
func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&WatchlistEntry{}, &SubscriptionEntry{}, &ContinueWatchingEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Watchlist operations

// AddWatchlistEntry inserts an entry at the front of the watchlist.
// Titles already present by key or by case-insensitive title are rejected with ErrDuplicate.
func (d *Database) AddWatchlistEntry(entry *WatchlistEntry) error {
	if entry.Key == "" || strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: key and title are required", ErrInvalid)
	}
	if !entry.MediaType.Valid() || strings.TrimSpace(entry.MediaID) == "" {
		return fmt.Errorf("%w: a movie or tv id is required, got %q", ErrInvalid, entry.Key)
	}
	if entry.Status == "" {
		entry.Status = WatchStatusPlanned
	}
	if !entry.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, entry.Status)
	}

	var count int64
	err := d.db.Model(&WatchlistEntry{}).
		Where("record_key = ? OR lower(title) = ?", entry.Key, strings.ToLower(entry.Title)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	return d.db.Create(entry).Error
}

// GetWatchlist returns the watchlist, newest first
func (d *Database) GetWatchlist() ([]*WatchlistEntry, error) {
	var entries []*WatchlistEntry
	err := d.db.Order("added_at desc").Order("id desc").Find(&entries).Error
	return entries, err
}

// GetWatchlistEntry retrieves a watchlist entry by key
func (d *Database) GetWatchlistEntry(key string) (*WatchlistEntry, error) {
	var entry WatchlistEntry
	if err := d.db.Where("record_key = ?", key).First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// UpdateWatchlistStatus changes the status of a watchlist entry
func (d *Database) UpdateWatchlistStatus(key string, status WatchStatus) (*WatchlistEntry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	entry, err := d.GetWatchlistEntry(key)
	if err != nil {
		return nil, err
	}

	entry.Status = status
	if err := d.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteWatchlistEntry removes a watchlist entry by key
func (d *Database) DeleteWatchlistEntry(key string) error {
	result := d.db.Where("record_key = ?", key).Delete(&WatchlistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscription operations

// SaveSubscription validates and upserts a subscription.
// Entries without an ID get a new one; prices are rounded to cents.
func (d *Database) SaveSubscription(sub *SubscriptionEntry) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Plan = strings.TrimSpace(sub.Plan)
	if sub.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if math.IsNaN(sub.Price) || math.IsInf(sub.Price, 0) || sub.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalid)
	}
	sub.Price = RoundPrice(sub.Price)

	if sub.Cycle == "" {
		sub.Cycle = CycleMonthly
	}
	if sub.Cycle != CycleMonthly && sub.Cycle != CycleYearly {
		return fmt.Errorf("%w: unknown billing cycle %q", ErrInvalid, sub.Cycle)
	}
	if sub.Status == "" {
		sub.Status = SubscriptionActive
	}
	if !sub.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, sub.Status)
	}
	if sub.NextDate != "" {
		if _, err := time.Parse(time.DateOnly, sub.NextDate); err != nil {
			return fmt.Errorf("%w: next date must be yyyy-mm-dd", ErrInvalid)
		}
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
		return d.db.Create(sub).Error
	}

	existing, err := d.GetSubscription(sub.ID)
	if errors.Is(err, ErrNotFound) {
		return d.db.Create(sub).Error
	}
	if err != nil {
		return err
	}
	sub.CreatedAt = existing.CreatedAt
	return d.db.Save(sub).Error
}

// GetSubscription retrieves a subscription by ID
func (d *Database) GetSubscription(id string) (*SubscriptionEntry, error) {
	var sub SubscriptionEntry
	if err := d.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// GetSubscriptions returns all subscriptions, newest first
func (d *Database) GetSubscriptions() ([]*SubscriptionEntry, error) {
	var subs []*SubscriptionEntry
	err := d.db.Order("created_at desc").Find(&subs).Error
	return subs, err
}

// ToggleSubscription pauses an active subscription and resumes a paused or canceled one
func (d *Database) ToggleSubscription(id string) (*SubscriptionEntry, error) {
	sub, err := d.GetSubscription(id)
	if err != nil {
		return nil, err
	}

	if sub.Status == SubscriptionActive {
		sub.Status = SubscriptionPaused
	} else {
		sub.Status = SubscriptionActive
	}

	if err := d.db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubscription removes a subscription by ID
func (d *Database) DeleteSubscription(id string) error {
	result := d.db.Delete(&SubscriptionEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Continue-watching operations

// UpsertContinueWatching records progress for a title. A nil watch time is stored as is.
func (d *Database) UpsertContinueWatching(entry *ContinueWatchingEntry) error {
	if entry.ID == "" || strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: id and title are required", ErrInvalid)
	}
	if entry.Kind == "" {
		entry.Kind = KindMovie
	}
	if entry.Kind != KindMovie && entry.Kind != KindShow {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, entry.Kind)
	}
	entry.Progress = ClampProgress(entry.Progress)
	return d.db.Save(entry).Error
}

// GetContinueWatching returns entries by most recent watch; entries without a time come last
func (d *Database) GetContinueWatching() ([]*ContinueWatchingEntry, error) {
	var entries []*ContinueWatchingEntry
	err := d.db.Order("last_watched_at IS NULL").Order("last_watched_at desc").Find(&entries).Error
	return entries, err
}

// DeleteContinueWatching removes a continue-watching entry
func (d *Database) DeleteContinueWatching(id string) error {
	result := d.db.Delete(&ContinueWatchingEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Counts summarizes the stored collections
type Counts struct {
	Watchlist         int            `json:"watchlist"`
	WatchlistByStatus map[string]int `json:"watchlist_by_status"`
	Subscriptions     int            `json:"subscriptions"`
	ActiveMonthly     float64        `json:"active_monthly_total"`
	ContinueWatching  int            `json:"continue_watching"`
}

// GetCounts returns collection totals for the status endpoint
func (d *Database) GetCounts() (*Counts, error) {
	watchlist, err := d.GetWatchlist()
	if err != nil {
		return nil, err
	}
	subs, err := d.GetSubscriptions()
	if err != nil {
		return nil, err
	}
	var cw int64
	if err := d.db.Model(&ContinueWatchingEntry{}).Count(&cw).Error; err != nil {
		return nil, err
	}

	counts := &Counts{
		Watchlist:         len(watchlist),
		WatchlistByStatus: make(map[string]int),
		Subscriptions:     len(subs),
		ContinueWatching:  int(cw),
	}
	for _, e := range watchlist {
		counts.WatchlistByStatus[string(e.Status)]++
	}
	counts.ActiveMonthly = MonthlyTotal(FilterSubscriptions(subs, SubscriptionActive))

	return counts, nil
}
