package config

import "path/filepath"

// installedApps is the ordered list of subsystems started by the application. Order
// is significant: later entries may depend on earlier ones.
var installedApps = []string{
	"admin.theme",
	"admin.colorfield",
	"admin",
	"auth",
	"contenttypes",
	"sessions",
	"messages",
	"staticfiles",
	"cors",
	"richtext",
	"media",
	"extensions",
	"users",
	"contacts",
	"dummys",
}

// middlewareChain is the request chain, outermost first.
var middlewareChain = []string{
	"security",
	"sessions",
	"locale",
	"cors",
	"common",
	"csrf",
	"authentication",
	"messages",
	"clickjacking",
}

var templateContextProcessors = []string{"debug", "request", "auth", "messages"}

var passwordValidators = []string{
	"user_attribute_similarity",
	"minimum_length",
	"common_password",
	"numeric_password",
}

const (
	userModel     = "users.Users"
	errorLogFile  = "errors.log"
	adminSiteName = "Core"
)

func templateConfig(baseDir string) TemplateConfig {
	return TemplateConfig{
		Dirs:              []string{filepath.Join(baseDir, "templates")},
		AppDirs:           true,
		ContextProcessors: clone(templateContextProcessors),
	}
}

func storageConfig(baseDir string) StorageConfig {
	return StorageConfig{
		StaticURL:  "/static/",
		StaticRoot: filepath.Join(baseDir, "staticfiles"),
		StaticDirs: []string{filepath.Join(baseDir, "static")},
		MediaURL:   "/media/",
		MediaRoot:  filepath.Join(baseDir, "media"),
	}
}

func localeConfig() LocaleConfig {
	return LocaleConfig{
		LanguageCode: "en-us",
		TimeZone:     "UTC",
		UseI18N:      true,
		UseTZ:        true,
	}
}

func restConfig() RESTConfig {
	return RESTConfig{
		Renderers:      []string{"json"},
		Permissions:    []string{"allow_any"},
		Authenticators: []string{"jwt"},
	}
}

func loggingConfig(debug bool, baseDir string) LoggingConfig {
	level := "info"
	if debug {
		level = "debug"
	}
	return LoggingConfig{
		Level:     level,
		ErrorFile: filepath.Join(baseDir, errorLogFile),
	}
}

func adminTheme() AdminTheme {
	return AdminTheme{
		SiteTitle:   adminSiteName,
		SiteHeader:  adminSiteName,
		SiteBrand:   adminSiteName,
		WelcomeSign: "Welcome to " + adminSiteName + " Admin Panel",

		CustomCSS:   "css/custom_admin.css",
		CustomJS:    "js/custom_admin.js",
		BrandLogo:   "images/image.webp",
		BrandLogoXL: "images/image.webp",
		SiteLogo:    "images/image.webp",
		SiteIcon:    "images/image.webp",

		CollapseApps:          true,
		RelatedModalActive:    true,
		OrderWithRespectTo:    []string{"dummys", "contacts", "users", "groups"},
		CollapseAppsInitially: []string{"users", "dummys", "contacts"},
		Icons: map[string]string{
			"auth":             "fas fa-users-cog",
			"users.Users":      "fas fa-user",
			"auth.Group":       "fas fa-user-shield",
			"contacts.Contact": "fas fa-address-book",
			"dummys.Dummy":     "fas fa-hands-helping",
		},
		Sidebar: SidebarColors{
			Background:              "#0000ff",
			Text:                    "#ecf0f1",
			BrandBackground:         "#1abc9c",
			BrandText:               "#ffffff",
			NavItemHoverBackground:  "#16a085",
			NavItemHoverText:        "#ffffff",
			NavItemActiveBackground: "#2980b9",
			NavItemActiveText:       "#ffffff",
		},
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
