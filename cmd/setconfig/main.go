package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"bitbucket.org/smartystreets/setconfig/contracts"
	"bitbucket.org/smartystreets/setconfig/core"
	"bitbucket.org/smartystreets/setconfig/shell"
	"bitbucket.org/smartystreets/setconfig/transfer"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	loader := core.NewUploadConfigLoader(shell.NewDiskFileSystem(""), stderr)
	config, err := loader.LoadConfig("setconfig", args)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "setconfig:", err)
		return 2
	}
	if config.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "setconfig [%s]\n", ldflagsSoftwareVersion)
		return 0
	}

	err = transfer.NewUploadApp(config, stdout).Run()
	return report(err, config, stderr)
}

func report(err error, config contracts.UploadConfig, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var rejection *contracts.RejectedUploadError
	switch {
	case errors.As(err, &rejection):
		for _, line := range rejection.Details() {
			_, _ = fmt.Fprintln(stderr, line)
		}
	case errors.Is(err, contracts.ErrMissingConfig):
		_, _ = fmt.Fprintf(stderr, "Expected config.yml in %s\n", config.PackageConfig.SourceDirectory)
	default:
		_, _ = fmt.Fprintln(stderr, err)
	}
	return 1
}

var ldflagsSoftwareVersion = "debug"
