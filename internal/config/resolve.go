package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/core-api/internal/constants"
)

// environment is the set of keys bound from a Snapshot. Only DEBUG and
// DEFAULT_DB carry defaults; everything else must be present.
type environment struct {
	Debug     debugFlag `env:"DEBUG"      envDefault:"false"`
	DefaultDB string    `env:"DEFAULT_DB" envDefault:"sqlite" validate:"oneof=mysql postgresql sqlite"`

	SecretKey         Secret `env:"SECRET_KEY,required"`
	SuperuserUsername string `env:"DEFAULT_SUPERUSER_USERNAME,required"`
	SuperuserPassword Secret `env:"DEFAULT_SUPERUSER_PASSWORD,required"`

	DBName     string `env:"DB_NAME,required"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword Secret `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"`
	DBPort     int    `env:"DB_PORT,required"     validate:"min=1,max=65535"`

	EmailHost         string `env:"EMAIL_HOST,required"`
	EmailPort         int    `env:"EMAIL_PORT,required"     validate:"min=1,max=65535"`
	EmailHostUser     string `env:"EMAIL_HOST_USER,required"`
	EmailHostPassword Secret `env:"EMAIL_HOST_PASSWORD,required"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME,required"`
	CloudinaryAPIKey    Secret `env:"CLOUDINARY_API_NAME,required"`
	CloudinaryAPISecret Secret `env:"CLOUDINARY_API_SECRET,required"`
}

// debugFlag accepts the usual truthy spellings. Anything else, including a
// typo, is false, which selects the production policy.
type debugFlag bool

var truthy = map[string]bool{"true": true, "on": true, "ok": true, "y": true, "yes": true, "1": true}

func (f *debugFlag) UnmarshalText(text []byte) error {
	*f = debugFlag(truthy[strings.ToLower(strings.TrimSpace(string(text)))])
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report environment fields by their key rather than their Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if key := envKey(fld); key != "" {
			return key
		}
		return fld.Name
	})
	return v
}

func envKey(fld reflect.StructField) string {
	key, _, _ := strings.Cut(fld.Tag.Get("env"), ",")
	return key
}

// Load captures a snapshot from envFile and the process environment and
// resolves it. Paths in the bundle are rooted at envFile's directory.
func Load(envFile string) (*Settings, error) {
	snap, err := LoadSnapshot(envFile, os.Environ())
	if err != nil {
		return nil, err
	}

	baseDir := "."
	if envFile != "" {
		baseDir = filepath.Dir(envFile)
	}
	baseDir, err = filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}

	return Resolve(snap, baseDir)
}

// Resolve turns a snapshot into a complete Settings bundle. Every missing or
// invalid key is reported in the returned error as a *MissingKeyError or
// *InvalidKeyError; on error no bundle is returned.
func Resolve(snap Snapshot, baseDir string) (*Settings, error) {
	raw, errs := bindEnvironment(snap)

	debug := bool(raw.Debug)
	security, secErrs := resolveSecurity(debug, snap)
	errs = append(errs, secErrs...)

	if len(errs) > 0 {
		return nil, fmt.Errorf("resolve settings: %w", errors.Join(errs...))
	}

	s := &Settings{
		Debug:     debug,
		SecretKey: raw.SecretKey,
		BaseDir:   baseDir,
		Superuser: SuperuserConfig{
			Username: raw.SuperuserUsername,
			Password: raw.SuperuserPassword,
		},
		Security:   security,
		Apps:       clone(installedApps),
		Middleware: clone(middlewareChain),
		Templates:  templateConfig(baseDir),
		Database: DatabaseConfig{
			Engine:     raw.DefaultDB,
			Name:       raw.DBName,
			User:       raw.DBUser,
			Password:   raw.DBPassword,
			Host:       raw.DBHost,
			Port:       raw.DBPort,
			Autocommit: true,
		},
		Auth: AuthConfig{
			SigningKey:         raw.SecretKey,
			UserModel:          userModel,
			PasswordValidators: clone(passwordValidators),
			Token: TokenPolicy{
				AccessTTL:    constants.AccessTokenLifetime,
				RefreshTTL:   constants.RefreshTokenLifetime,
				HeaderScheme: constants.AuthHeaderScheme,
			},
		},
		REST: restConfig(),
		Mail: MailConfig{
			Backend:  "smtp",
			Host:     raw.EmailHost,
			Port:     raw.EmailPort,
			UseTLS:   true,
			Username: raw.EmailHostUser,
			Password: raw.EmailHostPassword,
		},
		Locale:  localeConfig(),
		Storage: storageConfig(baseDir),
		Media: MediaConfig{
			CloudName: raw.CloudinaryCloudName,
			APIKey:    raw.CloudinaryAPIKey,
			APISecret: raw.CloudinaryAPISecret,
		},
		Logging: loggingConfig(debug, baseDir),
		Admin:   adminTheme(),
	}

	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("resolve settings: inconsistent bundle: %w", err)
	}

	return s, nil
}

// bindEnvironment maps the snapshot onto environment and translates binding
// and validation failures into key-named errors. Validation runs even when
// binding fails so one pass reports every bad key; keys that failed to bind
// are not reported twice.
func bindEnvironment(snap Snapshot) (environment, []error) {
	var raw environment
	var errs []error

	if err := env.ParseWithOptions(&raw, env.Options{Environment: snap.Map()}); err != nil {
		errs = translateEnvError(err)
	}

	reported := make(map[string]bool, len(errs))
	for _, err := range errs {
		var missing *MissingKeyError
		var invalid *InvalidKeyError
		switch {
		case errors.As(err, &missing):
			reported[missing.Key] = true
		case errors.As(err, &invalid):
			reported[invalid.Key] = true
		}
	}

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return raw, append(errs, err)
		}
		for _, fe := range verrs {
			if reported[fe.Field()] {
				continue
			}
			errs = append(errs, &InvalidKeyError{
				Key: fe.Field(),
				Err: fmt.Errorf("value %v fails %s", fe.Value(), constraint(fe)),
			})
		}
	}

	return raw, errs
}

func translateEnvError(err error) []error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return []error{err}
	}

	envType := reflect.TypeOf(environment{})
	errs := make([]error, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var notSet env.VarIsNotSetError
		var parseErr env.ParseError
		switch {
		case errors.As(e, &notSet):
			errs = append(errs, &MissingKeyError{Key: notSet.Key})
		case errors.As(e, &parseErr):
			key := parseErr.Name
			if fld, ok := envType.FieldByName(parseErr.Name); ok {
				key = envKey(fld)
			}
			errs = append(errs, &InvalidKeyError{Key: key, Err: parseErr.Err})
		default:
			errs = append(errs, e)
		}
	}
	return errs
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
