package config

import (
	"github.com/JaimeStill/app-host/pkg/csrf"
	"github.com/JaimeStill/app-host/pkg/database"
	"github.com/JaimeStill/app-host/pkg/logging"
	"github.com/JaimeStill/app-host/pkg/middleware"
	"github.com/JaimeStill/app-host/pkg/openapi"
)

var loggingEnv = &logging.Env{
	Level:     "LOGGING_LEVEL",
	Format:    "LOGGING_FORMAT",
	AddSource: "LOGGING_ADD_SOURCE",
}

var databaseEnv = &database.Env{
	Enabled:         "DATABASE_ENABLED",
	Migrate:         "DATABASE_MIGRATE",
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CORS_ENABLED",
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}

var csrfEnv = &csrf.Env{
	Enforce:      "CSRF_ENFORCE",
	CookieName:   "CSRF_COOKIE_NAME",
	HeaderName:   "CSRF_HEADER_NAME",
	FormField:    "CSRF_FORM_FIELD",
	CookieMaxAge: "CSRF_COOKIE_MAX_AGE",
	Secure:       "CSRF_COOKIE_SECURE",
	SameSite:     "CSRF_COOKIE_SAMESITE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "OPENAPI_TITLE",
	Description: "OPENAPI_DESCRIPTION",
	Servers:     "OPENAPI_SERVERS",
}
