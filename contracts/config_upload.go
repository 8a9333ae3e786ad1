package contracts

import "time"

const (
	DefaultRemoteAddress = "localhost:8080"
	DefaultSourceDir     = "."

	RequiredConfigFile = "./config.yml"
	ConfigEndpoint     = "admin/config"
	UploadFieldName    = "file"
)

type UploadConfig struct {
	JSONPath      string
	ShowVersion   bool
	DryRun        bool
	OutputPath    string
	Timeout       time.Duration
	PackageConfig PackageConfig
}

type PackageConfig struct {
	RemoteAddress    string `json:"url"`
	SourceDirectory  string `json:"source_directory"`
	CompressionLevel int    `json:"compression_level"`
}
