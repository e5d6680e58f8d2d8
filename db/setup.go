package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Connect opens the store handle described by cfg.URL. The handle is meant to
// be created once at startup and passed to whatever needs it.
func Connect(cfg config.DatabaseConfig, log *zap.SugaredLogger) (*gorm.DB, error) {
	dialector, driver, err := dialectorFor(cfg.URL)

	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.LogSQL {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})

	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()

	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time; an in-memory database also lives and dies
		// with its single connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if log != nil {
		log.Infow("database connected", "driver", driver)
	}

	return db, nil
}

// Migrate creates any missing tables. Existing tables are left as they are.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Task{},
		&models.Notification{},
	}

	migrator := db.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := db.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func dialectorFor(url string) (gorm.Dialector, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), "postgres", nil

	case strings.HasPrefix(url, "mysql://"):
		dialector, err := mysqlDialector(strings.TrimPrefix(url, "mysql://"))
		return dialector, "mysql", err

	case strings.HasPrefix(url, "sqlite://"):
		path, err := sqlitePath(strings.TrimPrefix(url, "sqlite://"))

		if err != nil {
			return nil, "", err
		}

		return sqlite.Open(sqliteDSN(path)), "sqlite", nil

	case url == ":memory:", strings.HasPrefix(url, "file:"):
		return sqlite.Open(sqliteDSN(url)), "sqlite", nil
	}

	return nil, "", fmt.Errorf("unsupported database url %q", url)
}

// mysqlDialector takes a go-sql-driver DSN (user:pass@tcp(host:port)/name).
func mysqlDialector(dsn string) (gorm.Dialector, error) {
	cfg, err := gomysql.ParseDSN(dsn)

	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := gomysql.NewConnector(cfg)

	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}

	return mysql.New(mysql.Config{Conn: sql.OpenDB(connector)}), nil
}

// sqlitePath follows the SQLAlchemy URL form: sqlite:///app.db is the
// relative path app.db and sqlite:////var/app.db is absolute. The two-slash
// form sqlite://app.db is accepted as relative too.
func sqlitePath(rest string) (string, error) {
	path := strings.TrimPrefix(rest, "/")

	if path == "" || strings.HasPrefix(path, "?") {
		return "", fmt.Errorf("sqlite url has no database path")
	}

	return path, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&" + sqliteForeignKeys
	}

	return path + "?" + sqliteForeignKeys
}
