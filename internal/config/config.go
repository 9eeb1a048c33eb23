package config

import (
	"time"
)

// Settings is the resolved configuration bundle. It is built once by Resolve
// and must be treated as read-only afterwards.
type Settings struct {
	Debug     bool
	SecretKey Secret
	BaseDir   string

	Superuser  SuperuserConfig
	Security   SecurityPolicy
	Apps       []string `validate:"required,unique,dive,required"`
	Middleware []string `validate:"required,unique,dive,required"`
	Templates  TemplateConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	REST       RESTConfig
	Mail       MailConfig
	Locale     LocaleConfig
	Storage    StorageConfig
	Media      MediaConfig
	Logging    LoggingConfig
	Admin      AdminTheme
}

// SuperuserConfig holds the credentials used to bootstrap the first admin account.
type SuperuserConfig struct {
	Username string
	Password Secret
}

// CORSMode selects how cross-origin requests are admitted.
type CORSMode int

const (
	// CORSAllowAll admits any origin. Only used in development.
	CORSAllowAll CORSMode = iota
	// CORSAllowlist admits only the origins in CORSPolicy.AllowedOrigins.
	CORSAllowlist
)

func (m CORSMode) String() string {
	switch m {
	case CORSAllowAll:
		return "allow-all"
	case CORSAllowlist:
		return "allowlist"
	default:
		return "unknown"
	}
}

// CORSPolicy is the cross-origin policy. AllowedOrigins is empty in allow-all mode.
type CORSPolicy struct {
	Mode           CORSMode
	AllowedOrigins []string
}

// ProxyHeader names the request header a reverse proxy uses to report the
// original scheme, and the value that means the client spoke TLS.
type ProxyHeader struct {
	Name  string
	Value string
}

// SecurityPolicy is the network and cookie policy derived from the debug flag.
type SecurityPolicy struct {
	AllowedHosts     []string
	CORS             CORSPolicy
	ForceTLSRedirect bool
	SecureCookies    bool
	// TrustedOrigins may issue state-changing requests. In production it is
	// the CORS allowlist.
	TrustedOrigins []string
	// ProxySSLHeader is nil in development.
	ProxySSLHeader *ProxyHeader
}

// TemplateConfig locates HTML templates.
type TemplateConfig struct {
	Dirs              []string
	AppDirs           bool
	ContextProcessors []string `validate:"unique"`
}

// Supported database engines.
const (
	EngineMySQL      = "mysql"
	EnginePostgreSQL = "postgresql"
	EngineSQLite     = "sqlite"
)

// DatabaseConfig describes the single active database connection.
type DatabaseConfig struct {
	// Engine is chosen by the DEFAULT_DB selector.
	Engine     string `validate:"oneof=mysql postgresql sqlite"`
	Name       string
	User       string
	Password   Secret
	Host       string
	Port       int
	Autocommit bool
}

// TokenPolicy configures bearer-token issuance and parsing.
type TokenPolicy struct {
	AccessTTL    time.Duration `validate:"gt=0"`
	RefreshTTL   time.Duration `validate:"gtfield=AccessTTL"`
	HeaderScheme string        `validate:"required"`
}

// AuthConfig configures the authentication subsystem.
type AuthConfig struct {
	// SigningKey signs bearer tokens. It is the application SECRET_KEY.
	SigningKey         Secret
	UserModel          string
	PasswordValidators []string `validate:"unique"`
	Token              TokenPolicy
}

// RESTConfig lists the API layer defaults.
type RESTConfig struct {
	Renderers      []string `validate:"required,unique"`
	Permissions    []string `validate:"required,unique"`
	Authenticators []string `validate:"required,unique"`
}

// MailConfig describes the outbound SMTP transport.
type MailConfig struct {
	Backend  string
	Host     string
	Port     int
	UseTLS   bool
	Username string
	Password Secret
}

// LocaleConfig holds localisation defaults.
type LocaleConfig struct {
	LanguageCode string
	TimeZone     string
	UseI18N      bool
	UseTZ        bool
}

// StorageConfig locates static assets and uploaded media on disk and on the URL space.
type StorageConfig struct {
	StaticURL  string `validate:"startswith=/,endswith=/"`
	StaticRoot string
	StaticDirs []string
	MediaURL   string `validate:"startswith=/,endswith=/"`
	MediaRoot  string
}

// MediaConfig holds the CDN credentials used for media uploads.
type MediaConfig struct {
	CloudName string
	APIKey    Secret
	APISecret Secret
}

// LoggingConfig configures the console logger and the error file sink.
type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	// ErrorFile receives ERROR records only. Empty disables the sink.
	ErrorFile string
}

// AdminTheme is the admin console's branding and navigation layout.
type AdminTheme struct {
	SiteTitle   string
	SiteHeader  string
	SiteBrand   string
	WelcomeSign string

	CustomCSS   string
	CustomJS    string
	BrandLogo   string
	BrandLogoXL string
	SiteLogo    string
	SiteIcon    string

	CollapseApps          bool
	RelatedModalActive    bool
	OrderWithRespectTo    []string `validate:"unique"`
	CollapseAppsInitially []string `validate:"unique"`
	Icons                 map[string]string
	Sidebar               SidebarColors
}

// SidebarColors are hex colours for the admin sidebar.
type SidebarColors struct {
	Background              string `validate:"hexcolor"`
	Text                    string `validate:"hexcolor"`
	BrandBackground         string `validate:"hexcolor"`
	BrandText               string `validate:"hexcolor"`
	NavItemHoverBackground  string `validate:"hexcolor"`
	NavItemHoverText        string `validate:"hexcolor"`
	NavItemActiveBackground string `validate:"hexcolor"`
	NavItemActiveText       string `validate:"hexcolor"`
}
