package db

import (
	"fmt"
	"net"
	"strconv"

	"github.com/bazaar-dev/bazaar/internal/config"
	"github.com/go-sql-driver/mysql"
)

// BuildDSN returns the connection string for cfg. An explicit database URL
// wins over the individual host settings.
func BuildDSN(cfg *config.Config) string {
	if cfg.DBURL != "" {
		return cfg.DBURL
	}

	switch cfg.DBDriver {
	case config.DriverMySQL:
		myCfg := mysql.NewConfig()
		myCfg.User = cfg.DBUser
		myCfg.Passwd = cfg.DBPassword
		myCfg.Net = "tcp"
		myCfg.Addr = net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort))
		myCfg.DBName = cfg.DBName
		myCfg.ParseTime = true
		myCfg.Params = map[string]string{"charset": "utf8mb4"}
		return myCfg.FormatDSN()
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	}
}
