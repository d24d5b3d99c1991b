package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Backend selects the SDK used to talk to the service (minio, s3).
	Backend string `mapstructure:"backend" default:"minio"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the bucket every operation runs against.
	Bucket string `mapstructure:"bucket" default:"oss"`
	// Region is the location of the bucket (e.g., us-east-1). Empty means DefaultRegion.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	BackendMinio = "minio"
	BackendS3    = "s3"
)
