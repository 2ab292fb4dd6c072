// Package config resolves CLI settings from the environment and an optional
// .env file. Variables already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvConfig    = "WGMESH_CONFIG"
	EnvIPv4Base  = "WGMESH_IPV4_BASE"
	EnvIPv6Base  = "WGMESH_IPV6_BASE"
	EnvEndpoint  = "WGMESH_ENDPOINT"
	EnvHistoryDB = "WGMESH_HISTORY_DB"
	EnvLogLevel  = "WGMESH_LOG_LEVEL"
)

// Settings are the resolved defaults for the wgmesh command.
type Settings struct {
	ConfigPath string
	IPv4Base   netip.Addr
	IPv6Base   netip.Addr
	Endpoint   string
	HistoryDB  string // empty disables history
	LogLevel   string
}

// Load reads ./.env when it exists.
func Load() (Settings, error) {
	return LoadFrom(".env")
}

// LoadFrom resolves settings using dotenv as the fallback file. A missing file
// is not an error.
func LoadFrom(dotenv string) (Settings, error) {
	file, err := godotenv.Read(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("read %s: %w", dotenv, err)
	}
	getenv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := file[key]; v != "" {
			return v
		}
		return def
	}

	s := Settings{
		ConfigPath: getenv(EnvConfig, ""),
		Endpoint:   getenv(EnvEndpoint, "place.holder.local.arpa:51820"),
		HistoryDB:  getenv(EnvHistoryDB, ""),
		LogLevel:   getenv(EnvLogLevel, "info"),
	}
	if s.IPv4Base, err = netip.ParseAddr(getenv(EnvIPv4Base, "10.0.0.0")); err != nil || !s.IPv4Base.Is4() {
		return Settings{}, fmt.Errorf("%s: invalid IPv4 base %q", EnvIPv4Base, getenv(EnvIPv4Base, ""))
	}
	if s.IPv6Base, err = netip.ParseAddr(getenv(EnvIPv6Base, "fd00::")); err != nil || !s.IPv6Base.Is6() || s.IPv6Base.Is4In6() {
		return Settings{}, fmt.Errorf("%s: invalid IPv6 base %q", EnvIPv6Base, getenv(EnvIPv6Base, ""))
	}
	return s, nil
}
