// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                              – dotenv values,
//   • `conf/institute.yaml`                        – primary static file,
//   • `INSTITUTE_`-prefixed environment overrides  – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is left as-is by
// the loader and resolved through `internal/vault` by the caller that needs
// the secret, so the model may hold Vault references.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr     string        `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS     bool          `koanf:"force_https"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

//
// Store section
//

// Backend names accepted by Store.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
)

// Store selects and tunes the persistence backend.
//
// DSN is used by the SQL backends.  For MySQL a non-empty Password (plain
// or `vault:` reference) is set on the parsed DSN at open time, keeping
// credentials out of flat files.
type Store struct {
	Backend    string `koanf:"backend"     validate:"required,oneof=memory file mysql sqlite"`
	DataDir    string `koanf:"data_dir"    validate:"required_if=Backend file"`
	DSN        string `koanf:"dsn"         validate:"required_if=Backend mysql,required_if=Backend sqlite"`
	Password   string `koanf:"password"`
	QuotaBytes int    `koanf:"quota_bytes" validate:"gte=0"`
}

//
// Auth section
//

// User declares one console account.  PasswordHash is a bcrypt digest (see
// `institutectl hash-password`).
type User struct {
	ID           string `koanf:"id"            validate:"required"`
	Username     string `koanf:"username"      validate:"required"`
	Role         string `koanf:"role"          validate:"required,oneof=SUPER_ADMIN CONTENT_MANAGER"`
	PasswordHash string `koanf:"password_hash" validate:"required"`
}

// Auth holds token and throttle settings.  An empty Users list falls back to
// the development seed accounts.
type Auth struct {
	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	LoginRate   float64       `koanf:"login_rate"  validate:"gte=0"`
	LoginBurst  int           `koanf:"login_burst" validate:"gte=0"`
	Users       []User        `koanf:"users"       validate:"dive"`
}

//
// Service section
//

// Service tunes the data service.  EnquiryLatency simulates a network round
// trip on enquiry submission; zero disables it.
type Service struct {
	EnquiryLatency time.Duration `koanf:"enquiry_latency" validate:"gte=0"`
}

//
// Remote section
//

// Remote points the fetch client at a backend API.
type Remote struct {
	APIBaseURL string        `koanf:"api_base_url" validate:"omitempty,url"`
	Timeout    time.Duration `koanf:"timeout"`
}

//
// Log and GeoIP sections
//

// Log configures the zap level ("debug", "info", "warn", "error").
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// GeoIP points at an optional GeoLite2-City database.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // INSTITUTE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Store   Store   `koanf:"store"`
	Auth    Auth    `koanf:"auth"`
	Service Service `koanf:"service"`
	Remote  Remote  `koanf:"remote"`
	Log     Log     `koanf:"log"`
	GeoIP   GeoIP   `koanf:"geoip"`
	Paths   Paths   `koanf:"-"`
}
