package storage

import (
	"database/sql"
	"fmt"
	"time"

	"finance-dashboard/src/helpers"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteCache stores raw fetched price series keyed by (ticker, range).
// Rows carry a nullable close so missing provider quotes survive a cache
// round-trip, and a fetch timestamp for TTL expiry.
type SQLiteCache struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteCache(cfg *models.MConfig, log *logger.Logger) (*SQLiteCache, error) {
	return &SQLiteCache{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return &helpers.DatabaseError{DashboardError: helpers.DashboardError{
			Message: "failed to open sqlite database", Cause: err,
		}}
	}

	if err := db.Ping(); err != nil {
		return &helpers.DatabaseError{DashboardError: helpers.DashboardError{
			Message: "sqlite database unusable", Cause: err,
		}}
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) createTables() error {
	// SQLite types: TEXT for dates (YYYY-MM-DD sorts correctly), REAL for
	// float64, INTEGER for unix seconds
	query := `
		CREATE TABLE IF NOT EXISTS price_cache (
			ticker TEXT,
			range_from TEXT,
			range_to TEXT,
			date TEXT,
			close REAL,
			fetched_at INTEGER,
			PRIMARY KEY (ticker, range_from, range_to, date)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_cache: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) GetSeries(ticker string, from, to time.Time) (models.MPriceSeries, bool, error) {
	cutoff := d.expiryCutoff()

	rows, err := d.DB.Query(`
		SELECT date, close, fetched_at FROM price_cache
		WHERE ticker = ? AND range_from = ? AND range_to = ?
		ORDER BY date
	`, ticker, from.Format(models.DateFormat), to.Format(models.DateFormat))
	if err != nil {
		return models.MPriceSeries{}, false, err
	}
	defer rows.Close()

	var points []models.MPricePoint
	for rows.Next() {
		var dateStr string
		var close sql.NullFloat64
		var fetchedAt int64
		if err := rows.Scan(&dateStr, &close, &fetchedAt); err != nil {
			return models.MPriceSeries{}, false, err
		}
		if fetchedAt < cutoff {
			// Stale entry, treat the whole key as a miss
			return models.MPriceSeries{}, false, nil
		}

		date, err := time.Parse(models.DateFormat, dateStr)
		if err != nil {
			return models.MPriceSeries{}, false, fmt.Errorf("corrupt date %q in cache: %w", dateStr, err)
		}
		cell := models.Absent()
		if close.Valid {
			cell = models.Present(close.Float64)
		}
		points = append(points, models.MPricePoint{Date: date.UTC(), Close: cell})
	}
	if err := rows.Err(); err != nil {
		return models.MPriceSeries{}, false, err
	}

	if len(points) == 0 {
		return models.MPriceSeries{}, false, nil
	}

	series, err := models.NewPriceSeries(ticker, points)
	if err != nil {
		return models.MPriceSeries{}, false, err
	}
	return series, true, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) SaveSeries(series models.MPriceSeries, from, to time.Time) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fromStr := from.Format(models.DateFormat)
	toStr := to.Format(models.DateFormat)

	// Replace any previous entry for the same key
	if _, err := tx.Exec(`
		DELETE FROM price_cache WHERE ticker = ? AND range_from = ? AND range_to = ?
	`, series.Ticker, fromStr, toStr); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO price_cache (ticker, range_from, range_to, date, close, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Unix()
	for _, p := range series.Points {
		var close sql.NullFloat64
		if p.Close.Valid() {
			close = sql.NullFloat64{Float64: p.Close.Float(), Valid: true}
		}
		if _, err := stmt.Exec(series.Ticker, fromStr, toStr, p.Date.Format(models.DateFormat), close, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) CleanupExpired() error {
	cutoff := d.expiryCutoff()

	res, err := d.DB.Exec("DELETE FROM price_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		d.Logger.Error("Cleanup price_cache error: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		d.Logger.Info("Cleanup removed %d expired rows", n)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) expiryCutoff() int64 {
	ttlDays := d.Config.Storage.CacheTTLDays
	if ttlDays <= 0 {
		ttlDays = 1
	}
	return time.Now().UTC().AddDate(0, 0, -ttlDays).Unix()
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
