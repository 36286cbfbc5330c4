package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends de hoja soportados (SHEETS_BACKEND).
const (
	BackendGoogle   = "google"
	BackendExcel    = "excel"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Auth   AuthConfig
	JWT    JWTConfig
	Sheets SheetsConfig
	DB     DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsPath string // ruta al swagger.json
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig credencial compartida del equipo. Si PasswordHash (bcrypt) está definido tiene prioridad.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SheetsConfig origen de la hoja "Customers".
type SheetsConfig struct {
	Backend         string // google | excel | postgres | memory
	Worksheet       string
	SpreadsheetID   string // google
	CredentialsFile string // google: JSON de la cuenta de servicio
	WorkbookPath    string // excel
}

// DBConfig configuración de PostgreSQL (solo backend "postgres").
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, AUTH_USERNAME, SHEETS_BACKEND, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; no pisa variables ya definidas.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host:     v.GetString("HTTP_HOST"),
			Port:     getInt(v, "HTTP_PORT"),
			DocsPath: v.GetString("HTTP_DOCS_PATH"),
		},
		Auth: AuthConfig{
			Username:     v.GetString("AUTH_USERNAME"),
			Password:     v.GetString("AUTH_PASSWORD"),
			PasswordHash: v.GetString("AUTH_PASSWORD_HASH"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		Sheets: SheetsConfig{
			Backend:         strings.ToLower(v.GetString("SHEETS_BACKEND")),
			Worksheet:       v.GetString("SHEETS_WORKSHEET"),
			SpreadsheetID:   v.GetString("SHEETS_SPREADSHEET_ID"),
			CredentialsFile: v.GetString("SHEETS_CREDENTIALS_FILE"),
			WorkbookPath:    v.GetString("SHEETS_WORKBOOK_PATH"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        getInt(v, "DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa lo mínimo para arrancar.
func (c *Config) Validate() error {
	if c.Auth.Username == "" || (c.Auth.Password == "" && c.Auth.PasswordHash == "") {
		return fmt.Errorf("config: AUTH_USERNAME y AUTH_PASSWORD (o AUTH_PASSWORD_HASH) son requeridos")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es requerido")
	}
	switch c.Sheets.Backend {
	case BackendGoogle:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("config: SHEETS_SPREADSHEET_ID es requerido con backend google")
		}
	case BackendExcel:
		if c.Sheets.WorkbookPath == "" {
			return fmt.Errorf("config: SHEETS_WORKBOOK_PATH es requerido con backend excel")
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("config: SHEETS_BACKEND desconocido %q", c.Sheets.Backend)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "cs-portfolio")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_DOCS_PATH", "./docs/swagger.json")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 480)
	v.SetDefault("JWT_ISSUER", "cs-portfolio")
	v.SetDefault("SHEETS_BACKEND", BackendGoogle)
	v.SetDefault("SHEETS_WORKSHEET", "Customers")
	v.SetDefault("SHEETS_WORKBOOK_PATH", "./data/customers.xlsx")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "cs_portfolio")
	v.SetDefault("DB_SSLMODE", "disable")
}

// getInt tolera espacios alrededor de valores numéricos leídos del entorno.
func getInt(v *viper.Viper, key string) int {
	switch x := v.Get(key).(type) {
	case int:
		return x
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return v.GetInt(key)
}
