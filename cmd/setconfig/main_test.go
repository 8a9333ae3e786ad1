package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestMainFixture(t *testing.T) {
	gunit.Run(new(MainFixture), t)
}

type MainFixture struct {
	*gunit.Fixture

	root     string
	server   *httptest.Server
	requests int32
	status   int
	reply    string
	archive  []byte
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func (this *MainFixture) Setup() {
	var err error
	this.root, err = os.MkdirTemp("", "setconfig-main-")
	this.So(err, should.BeNil)
	this.status = http.StatusOK
	this.server = httptest.NewServer(http.HandlerFunc(this.serveHTTP))
	this.stdout = new(bytes.Buffer)
	this.stderr = new(bytes.Buffer)
}

func (this *MainFixture) Teardown() {
	this.server.Close()
	_ = os.RemoveAll(this.root)
}

func (this *MainFixture) serveHTTP(response http.ResponseWriter, request *http.Request) {
	atomic.AddInt32(&this.requests, 1)
	if request.Method == http.MethodPut && request.URL.Path == "/admin/config" {
		if file, _, err := request.FormFile("file"); err == nil {
			this.archive, _ = io.ReadAll(file)
		}
	}
	response.WriteHeader(this.status)
	_, _ = io.WriteString(response, this.reply)
}

func (this *MainFixture) TestSuccessfulUpload() {
	this.write("config.yml", "types: {}\n")
	this.write("notes.txt", "skip")

	code := run([]string{"--url", this.server.URL, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 0)
	this.So(this.stdout.String(), should.Equal, "Config successfully uploaded!\n")
	this.So(atomic.LoadInt32(&this.requests), should.Equal, int32(1))
	reader, err := zip.NewReader(bytes.NewReader(this.archive), int64(len(this.archive)))
	this.So(err, should.BeNil)
	this.So(reader.File, should.HaveLength, 1)
	this.So(reader.File[0].Name, should.Equal, "config.yml")
}

func (this *MainFixture) TestMissingConfigExitsWithoutRequest() {
	this.write("init.lua", "return {}\n")

	code := run([]string{"--url", this.server.URL, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 1)
	this.So(this.stderr.String(), should.ContainSubstring, "Expected config.yml in "+this.root+"\n")
	this.So(atomic.LoadInt32(&this.requests), should.Equal, int32(0))
}

func (this *MainFixture) TestRejectionMessageFromJSONBody() {
	this.write("config.yml", "types: {}\n")
	this.status = http.StatusInternalServerError
	this.reply = `{"str":"bad config"}`

	code := run([]string{"--url", this.server.URL, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 1)
	this.So(this.stderr.String(), should.ContainSubstring, "Error status code: 500\nbad config\n")
	this.So(this.stdout.String(), should.BeEmpty)
}

func (this *MainFixture) TestRejectionWithMalformedBodyPrintsRawBody() {
	this.write("config.yml", "types: {}\n")
	this.status = http.StatusInternalServerError
	this.reply = "<h1>Internal Server Error</h1>"

	code := run([]string{"--url", this.server.URL, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 1)
	this.So(this.stderr.String(), should.ContainSubstring, "Error status code: 500\n<h1>Internal Server Error</h1>\n")
}

func (this *MainFixture) TestConnectionFailureExitsNonZero() {
	this.write("config.yml", "types: {}\n")
	address := this.server.URL
	this.server.Close()

	code := run([]string{"--url", address, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 1)
	this.So(this.stderr.String(), should.ContainSubstring, "could not upload to "+address+"/admin/config")
}

func (this *MainFixture) TestDryRunDoesNotUpload() {
	this.write("config.yml", "types: {}\n")

	code := run([]string{"-dry-run", "--url", this.server.URL, this.root}, this.stdout, this.stderr)

	this.So(code, should.Equal, 0)
	this.So(this.stdout.String(), should.ContainSubstring, "  config.yml (10 B)\n")
	this.So(atomic.LoadInt32(&this.requests), should.Equal, int32(0))
}

func (this *MainFixture) TestInvalidFlagsExitWithUsageCode() {
	code := run([]string{"-no-such-flag"}, this.stdout, this.stderr)

	this.So(code, should.Equal, 2)
	this.So(this.stderr.String(), should.ContainSubstring, "Usage of setconfig")
}

func (this *MainFixture) TestHelp() {
	code := run([]string{"-h"}, this.stdout, this.stderr)

	this.So(code, should.Equal, 0)
}

func (this *MainFixture) TestVersion() {
	code := run([]string{"-version"}, this.stdout, this.stderr)

	this.So(code, should.Equal, 0)
	this.So(this.stdout.String(), should.Equal, "setconfig [debug]\n")
	this.So(atomic.LoadInt32(&this.requests), should.Equal, int32(0))
}

func (this *MainFixture) TestDirectoryNamedVersionIsUploaded() {
	this.write("version/config.yml", "types: {}\n")
	working, err := os.Getwd()
	this.So(err, should.BeNil)
	this.So(os.Chdir(this.root), should.BeNil)
	defer func() { _ = os.Chdir(working) }()

	code := run([]string{"version", "--url", this.server.URL}, this.stdout, this.stderr)

	this.So(code, should.Equal, 0)
	this.So(this.stdout.String(), should.Equal, "Config successfully uploaded!\n")
	this.So(atomic.LoadInt32(&this.requests), should.Equal, int32(1))
}

func (this *MainFixture) write(path, content string) {
	full := filepath.Join(this.root, path)
	this.So(os.MkdirAll(filepath.Dir(full), 0755), should.BeNil)
	this.So(os.WriteFile(full, []byte(content), 0644), should.BeNil)
}
