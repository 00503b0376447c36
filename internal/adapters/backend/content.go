package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

// ContentAPI posts generation requests to the content backend.
type ContentAPI struct {
	client *Client
}

var _ ports.Generator = (*ContentAPI)(nil)

func NewContentAPI(client *Client) *ContentAPI {
	return &ContentAPI{client: client}
}

func (a *ContentAPI) Generate(ctx context.Context, accountID domain.AccountID, request domain.GenerationRequest, shape domain.Shape) (ports.RawResponse, error) {
	var (
		body        io.Reader
		contentType string
		err         error
	)
	if request.Multipart() {
		body, contentType, err = multipartBody(request)
	} else {
		body, contentType, err = jsonBody(request.Payload)
	}
	if err != nil {
		return ports.RawResponse{}, err
	}

	accept := "application/json"
	if shape == domain.ShapeBlob {
		accept = "*/*"
	}

	path := "/response/" + url.PathEscape(request.ToolEndpoint)
	resp, err := a.client.do(ctx, http.MethodPost, path, accountQuery(accountID), body, contentType, accept)
	if err != nil {
		return ports.RawResponse{}, err
	}

	return ports.RawResponse{Body: resp.Body, ContentType: resp.ContentType}, nil
}

func jsonBody(payload map[string]any) (io.Reader, string, error) {
	if payload == nil {
		payload = map[string]any{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode request payload: %w", err)
	}

	return bytes.NewReader(data), "application/json", nil
}

func multipartBody(request domain.GenerationRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(request.Payload))
	for name := range request.Payload {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, fmt.Sprint(request.Payload[name])); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	for _, upload := range request.Uploads {
		part, err := writer.CreateFormFile(upload.Field, upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", upload.Field, err)
		}
		if _, err := part.Write(upload.Data); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", upload.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
