package core

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type UploadConfigLoader struct {
	storage contracts.FileReader
	stderr  io.Writer
}

func NewUploadConfigLoader(storage contracts.FileReader, stderr io.Writer) *UploadConfigLoader {
	return &UploadConfigLoader{storage: storage, stderr: stderr}
}

func (this *UploadConfigLoader) LoadConfig(name string, args []string) (config contracts.UploadConfig, err error) {
	config, explicit, err := this.parseCLI(name, args)
	if err != nil {
		return contracts.UploadConfig{}, err
	}
	if config.ShowVersion {
		return config, nil
	}

	if config.JSONPath != "" {
		config.PackageConfig, err = this.parseConfigFile(config.JSONPath, config.PackageConfig, explicit)
		if err != nil {
			return contracts.UploadConfig{}, err
		}
	}

	err = this.validateConfig(config)
	if err != nil {
		return contracts.UploadConfig{}, err
	}

	return config, nil
}

func (this *UploadConfigLoader) parseCLI(name string, args []string) (config contracts.UploadConfig, explicit map[string]bool, err error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(this.stderr)
	flags.StringVar(&config.PackageConfig.RemoteAddress,
		"url",
		contracts.DefaultRemoteAddress,
		"Address of the server receiving the config (scheme defaults to http://).",
	)
	flags.IntVar(&config.PackageConfig.CompressionLevel,
		"compression-level",
		-1,
		"Deflate level for archive entries (0 stores them uncompressed, -1 is the deflate default).",
	)
	flags.DurationVar(&config.Timeout,
		"timeout",
		0,
		"HTTP request timeout (0 waits indefinitely).",
	)
	flags.BoolVar(&config.DryRun,
		"dry-run",
		false,
		"When set, build the archive and list its contents without uploading it.",
	)
	flags.StringVar(&config.OutputPath,
		"output",
		"",
		"If provided, also write the built archive to this file.",
	)
	flags.BoolVar(&config.ShowVersion,
		"version",
		false,
		"When set, print the version and exit without uploading.",
	)
	flags.StringVar(&config.JSONPath,
		"json",
		"",
		"If provided, the JSON file with config values (url, source_directory, compression_level). "+
			"Flags given on the command line take precedence.",
	)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(this.stderr, "Usage of %s: %s [flags] [path]\n", name, name)
		flags.PrintDefaults()
		_, _ = fmt.Fprintln(this.stderr, `
  path defaults to the current directory and must contain config.yml.

exit code 0: success
exit code 1: general failure (see stderr for details)
exit code 2: invalid command line`)
	}

	config.PackageConfig.SourceDirectory = contracts.DefaultSourceDir
	var paths []string
	for {
		err = flags.Parse(args)
		if err != nil {
			return contracts.UploadConfig{}, nil, err
		}
		if flags.NArg() == 0 {
			break
		}
		paths = append(paths, flags.Arg(0))
		args = flags.Args()[1:]
	}

	explicit = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if len(paths) > 1 {
		return contracts.UploadConfig{}, nil, fmt.Errorf("%w: %q", tooManyPathsErr, paths)
	}
	if len(paths) == 1 {
		config.PackageConfig.SourceDirectory = paths[0]
		explicit[sourceDirectoryArgument] = true
	}
	return config, explicit, nil
}

func (this *UploadConfigLoader) parseConfigFile(path string, cli contracts.PackageConfig, explicit map[string]bool) (config contracts.PackageConfig, err error) {
	raw, err := this.storage.ReadFile(path)
	if err != nil {
		return contracts.PackageConfig{}, err
	}
	config = cli
	err = json.Unmarshal(raw, &config)
	if err != nil {
		return contracts.PackageConfig{}, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if explicit["url"] {
		config.RemoteAddress = cli.RemoteAddress
	}
	if explicit["compression-level"] {
		config.CompressionLevel = cli.CompressionLevel
	}
	if explicit[sourceDirectoryArgument] {
		config.SourceDirectory = cli.SourceDirectory
	}
	return config, nil
}

func (this *UploadConfigLoader) validateConfig(config contracts.UploadConfig) error {
	if config.PackageConfig.RemoteAddress == "" {
		return blankRemoteAddressErr
	}
	if config.PackageConfig.SourceDirectory == "" {
		return blankSourceDirectoryErr
	}
	if config.PackageConfig.CompressionLevel < -1 || config.PackageConfig.CompressionLevel > 9 {
		return compressionLevelErr
	}
	if config.Timeout < 0 {
		return negativeTimeoutErr
	}
	return nil
}

const sourceDirectoryArgument = "path"

var (
	tooManyPathsErr         = errors.New("at most one path may be given")
	blankRemoteAddressErr   = errors.New("url should not be blank")
	blankSourceDirectoryErr = errors.New("source directory should not be blank")
	compressionLevelErr     = errors.New("compression level must be between -1 and 9")
	negativeTimeoutErr      = errors.New("timeout must not be negative")
)
