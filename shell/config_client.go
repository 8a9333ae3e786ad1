package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/smartystreets/logging"

	"bitbucket.org/smartystreets/setconfig/contracts"
)

type ConfigClient struct {
	logger *logging.Logger
	client *http.Client
}

func NewConfigClient(client *http.Client) *ConfigClient {
	return &ConfigClient{client: client}
}

// Upload PUTs the request body as a single multipart file field. Any reply
// other than 200 OK becomes a *contracts.RejectedUploadError.
func (this *ConfigClient) Upload(request contracts.UploadRequest) error {
	body, contentType, err := encodeMultipart(request)
	if err != nil {
		return err
	}
	address := request.RemoteAddress.String()
	httpRequest, err := http.NewRequest(http.MethodPut, address, body)
	if err != nil {
		return err
	}
	httpRequest.Header.Set("Content-Type", contentType)

	response, err := this.client.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("could not upload to %s: %w", address, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("could not read reply from %s (%s): %w", address, response.Status, err)
	}
	this.logger.Printf("unexpected status code from %s: %s", address, response.Status)
	return parseRejection(response.StatusCode, raw)
}

func encodeMultipart(request contracts.UploadRequest) (*bytes.Buffer, string, error) {
	buffer := new(bytes.Buffer)
	buffer.Grow(int(request.Size) + multipartOverhead)
	writer := multipart.NewWriter(buffer)
	part, err := writer.CreateFormFile(request.FieldName, request.Filename)
	if err != nil {
		return nil, "", err
	}
	if request.Body != nil {
		_, err = io.Copy(part, request.Body)
		if err != nil {
			return nil, "", err
		}
	}
	err = writer.Close()
	if err != nil {
		return nil, "", err
	}
	return buffer, writer.FormDataContentType(), nil
}

const multipartOverhead = 512

func parseRejection(statusCode int, raw []byte) *contracts.RejectedUploadError {
	rejection := &contracts.RejectedUploadError{StatusCode: statusCode}

	var parsed map[string]interface{}
	err := json.Unmarshal(raw, &parsed)
	if err != nil || parsed == nil {
		rejection.Body = string(raw)
		return rejection
	}

	message, found := parsed["str"]
	if !found {
		return rejection
	}
	if text, ok := message.(string); ok {
		rejection.Message = text
	} else {
		encoded, _ := json.Marshal(message)
		rejection.Message = string(encoded)
	}
	return rejection
}
