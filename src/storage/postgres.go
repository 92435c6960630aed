package storage

import (
	"database/sql"
	"fmt"
	"time"

	"finance-dashboard/src/helpers"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresCache is the Postgres implementation of the price cache, for
// deployments where the dashboard shares a database with other services.
type PostgresCache struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresCache(cfg *models.MConfig, log *logger.Logger) (*PostgresCache, error) {
	return &PostgresCache{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return &helpers.DatabaseError{DashboardError: helpers.DashboardError{
			Message: "failed to open postgres connection", Cause: err,
		}}
	}

	// The database may still be coming up when the dashboard starts
	if err := helpers.RetryWithBackoff(d.Logger, "postgres ping", 3, time.Second, db.Ping); err != nil {
		return &helpers.DatabaseError{DashboardError: helpers.DashboardError{
			Message: "postgres unreachable", Cause: err,
		}}
	}

	d.DB = db

	query := `
		CREATE TABLE IF NOT EXISTS price_cache (
			ticker TEXT,
			range_from DATE,
			range_to DATE,
			date DATE,
			close DOUBLE PRECISION,
			fetched_at BIGINT,
			PRIMARY KEY (ticker, range_from, range_to, date)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_cache: %w", err)
	}

	d.Logger.Info("PostgresCache initialized successfully")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) GetSeries(ticker string, from, to time.Time) (models.MPriceSeries, bool, error) {
	cutoff := d.expiryCutoff()

	rows, err := d.DB.Query(`
		SELECT date, close, fetched_at FROM price_cache
		WHERE ticker = $1 AND range_from = $2 AND range_to = $3
		ORDER BY date
	`, ticker, from.Format(models.DateFormat), to.Format(models.DateFormat))
	if err != nil {
		return models.MPriceSeries{}, false, err
	}
	defer rows.Close()

	var points []models.MPricePoint
	for rows.Next() {
		var date time.Time
		var close sql.NullFloat64
		var fetchedAt int64
		if err := rows.Scan(&date, &close, &fetchedAt); err != nil {
			return models.MPriceSeries{}, false, err
		}
		if fetchedAt < cutoff {
			return models.MPriceSeries{}, false, nil
		}

		cell := models.Absent()
		if close.Valid {
			cell = models.Present(close.Float64)
		}
		points = append(points, models.MPricePoint{Date: models.Day(date), Close: cell})
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

func (d *PostgresCache) SaveSeries(series models.MPriceSeries, from, to time.Time) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fromStr := from.Format(models.DateFormat)
	toStr := to.Format(models.DateFormat)

	if _, err := tx.Exec(`
		DELETE FROM price_cache WHERE ticker = $1 AND range_from = $2 AND range_to = $3
	`, series.Ticker, fromStr, toStr); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO price_cache (ticker, range_from, range_to, date, close, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
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

func (d *PostgresCache) CleanupExpired() error {
	cutoff := d.expiryCutoff()

	res, err := d.DB.Exec("DELETE FROM price_cache WHERE fetched_at < $1", cutoff)
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

func (d *PostgresCache) expiryCutoff() int64 {
	ttlDays := d.Config.Storage.CacheTTLDays
	if ttlDays <= 0 {
		ttlDays = 1
	}
	return time.Now().UTC().AddDate(0, 0, -ttlDays).Unix()
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
