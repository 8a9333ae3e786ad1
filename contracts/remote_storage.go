package contracts

import (
	"io"
	"net/url"
)

type Uploader interface {
	Upload(UploadRequest) error
}

type UploadRequest struct {
	RemoteAddress url.URL
	FieldName     string
	Filename      string
	Body          io.Reader
	Size          int64
}
