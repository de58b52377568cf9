package config

const (
	EnvPrefix = "foodler"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvAppEnv = "FOODLER_APP_ENV"
	EnvDBDSN  = "FOODLER_DB_DSN"
	EnvDBHost = "FOODLER_DB_HOST"
	EnvDBUser = "FOODLER_DB_USER"
	EnvDBName = "FOODLER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
