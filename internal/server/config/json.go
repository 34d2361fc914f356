package config

import (
	"encoding/json"
	"os"

	"github.com/kunalsinghdadhwal/solcast/internal/flagx"
	"github.com/kunalsinghdadhwal/solcast/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted. Pointer
// fields distinguish "absent" from an explicit zero.
type JsonConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	ChallengeValidityDuration    *timex.Duration `json:"challenge_validity_duration"`
	OwnerAddress                 string          `json:"owner_address"`
	PlatformFeePercent           *uint64         `json:"platform_fee_percent"`
	PaymentUnit                  string          `json:"payment_unit"`
	LogLevel                     string          `json:"log_level"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config onto
// config. Fields missing from the file keep their current value. An unreadable
// or malformed file panics, since the server cannot start with a config the
// operator did not intend.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.ChallengeValidityDuration != nil {
		config.ChallengeValidityDuration = c.ChallengeValidityDuration.Duration
	}
	setString(&config.OwnerAddress, c.OwnerAddress)
	if c.PlatformFeePercent != nil {
		config.PlatformFeePercent = *c.PlatformFeePercent
	}
	setString(&config.PaymentUnit, c.PaymentUnit)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
