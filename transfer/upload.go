package transfer

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"net/url"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"bitbucket.org/smartystreets/setconfig/contracts"
	"bitbucket.org/smartystreets/setconfig/core"
	"bitbucket.org/smartystreets/setconfig/shell"
)

type UploadApp struct {
	logger *logging.Logger
	clock  *clock.Clock

	config    contracts.UploadConfig
	storage   core.DirectoryListing
	builder   *core.ArchiveBuilder
	inspector contracts.ArchiveInspector
	output    contracts.FileWriter
	uploader  contracts.Uploader
	stdout    io.Writer
}

func NewUploadApp(config contracts.UploadConfig, stdout io.Writer) *UploadApp {
	disk := shell.NewDiskFileSystem(config.PackageConfig.SourceDirectory)
	level := config.PackageConfig.CompressionLevel
	return &UploadApp{
		config:  config,
		storage: disk,
		builder: core.NewArchiveBuilder(disk, func(writer io.Writer) contracts.ArchiveWriter {
			return shell.NewZipArchiveWriter(writer, level)
		}),
		inspector: shell.NewZipArchiveInspector(),
		output:    disk,
		uploader:  shell.NewConfigClient(shell.NewHTTPClient(config.Timeout)),
		stdout:    stdout,
	}
}

// Run finds the whitelisted files, packs them and uploads the archive.
// Nothing is sent when config.yml is missing from the source directory.
func (this *UploadApp) Run() error {
	directory := this.config.PackageConfig.SourceDirectory

	files, err := core.FindFiles(this.storage)
	if err != nil {
		return fmt.Errorf("could not list %s: %w", directory, err)
	}
	this.logger.Printf("Found %d whitelisted files in %s.", len(files), directory)

	address := core.JoinURL(core.NormalizeURL(this.config.PackageConfig.RemoteAddress), contracts.ConfigEndpoint)

	if !core.Contains(files, contracts.RequiredConfigFile) {
		return fmt.Errorf("%w in %s", contracts.ErrMissingConfig, directory)
	}

	this.logger.Println("Building the archive...")
	archive, err := this.builder.Build(files)
	if err != nil {
		return fmt.Errorf("could not build archive: %w", err)
	}
	if archive == nil {
		return fmt.Errorf("%w in %s", contracts.ErrNothingToArchive, directory)
	}
	this.logger.Printf("Archived %d files (%s).", len(this.builder.Contents()), core.HumanFileSize(int64(len(archive))))

	if this.config.OutputPath != "" {
		err = this.output.WriteFile(this.config.OutputPath, archive)
		if err != nil {
			return fmt.Errorf("could not write archive: %w", err)
		}
		this.logger.Println("Archive written to", this.config.OutputPath)
	}

	if this.config.DryRun {
		return this.list(archive, address)
	}
	return this.upload(archive, address)
}

func (this *UploadApp) upload(archive []byte, address string) error {
	remote, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", address, err)
	}

	this.logger.Println("Uploading the archive to", address)
	body := core.NewHashReader(bytes.NewReader(archive), md5.New())
	started := this.clock.UTCNow()
	err = this.uploader.Upload(contracts.UploadRequest{
		RemoteAddress: *remote,
		FieldName:     contracts.UploadFieldName,
		Filename:      contracts.UploadFieldName,
		Body:          body,
		Size:          int64(len(archive)),
	})
	if err != nil {
		return err
	}
	this.logger.Printf("Upload completed in %s (md5 %s).", this.clock.UTCNow().Sub(started), body.Checksum())

	_, _ = fmt.Fprintln(this.stdout, "Config successfully uploaded!")
	return nil
}

func (this *UploadApp) list(archive []byte, address string) error {
	items, err := this.inspector.Inspect(archive)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(this.stdout, "Dry run, not uploading to %s. Archive contents:\n", address)
	for _, item := range items {
		_, _ = fmt.Fprintf(this.stdout, "  %s (%s)\n", item.Path, core.HumanFileSize(item.Size))
	}
	return nil
}
