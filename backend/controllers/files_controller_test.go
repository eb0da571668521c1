package controllers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func uploadFile(t *testing.T, filename, contentType string, content []byte) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	if resp.StatusCode != fiber.StatusOK {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, decodeMap(t, resp)
}

func TestUploadAndFetchImage(t *testing.T) {
	content := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	status, result := uploadFile(t, "avatar.png", "image/png", content)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["uuid"])
	assert.Equal(t, "avatar.png", result["filename"])

	fileUUID := result["uuid"].(string)

	resp := doRequest(t, "GET", "/files/"+fileUUID, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, content, body)

	resp = doRequest(t, "GET", "/files/preview/"+fileUUID, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, content, body)
}

func TestUploadRejectsNonImage(t *testing.T) {
	status, _ := uploadFile(t, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFetchMissingFile(t *testing.T) {
	resp := doRequest(t, "GET", "/files/no-such-uuid", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, "GET", "/files/preview/no-such-uuid", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
