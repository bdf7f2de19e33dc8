package config

// EnvPrefix is passed to envconfig; explicit envconfig tags take precedence.
const EnvPrefix = "verdantloop"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "VERDANTLOOP_APP_ENV"
	EnvDBDSN  = "VERDANTLOOP_DB_DSN"
	EnvDBHost = "VERDANTLOOP_DB_HOST"
	EnvDBUser = "VERDANTLOOP_DB_USER"
	EnvDBName = "VERDANTLOOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
