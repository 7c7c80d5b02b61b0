package config

const (
	// EnvPrefix is the envconfig prefix shared by every binary.
	EnvPrefix = "ECOFEIRA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ECOFEIRA_DB_DSN"
	EnvDBHost = "ECOFEIRA_DB_HOST"
	EnvDBUser = "ECOFEIRA_DB_USER"
	EnvDBName = "ECOFEIRA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
