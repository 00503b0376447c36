// Package codec turns generation responses into typed results and typed results into
// export-ready representations. Every function here is pure.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/gabriel-vasile/mimetype"
)

const fallbackBinaryMIME = "application/octet-stream"

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Decode converts a successful response into the result declared by shape.
// declaredMIME is used for blobs when the response does not carry a specific Content-Type.
func Decode(raw ports.RawResponse, shape domain.Shape, declaredMIME string) (domain.GenerationResult, error) {
	switch shape {
	case domain.ShapePlainText:
		return decodeText(raw)
	case domain.ShapeTextArray:
		return decodeTextList(raw)
	case domain.ShapeBlob:
		return decodeBinary(raw, declaredMIME)
	default:
		return nil, &domain.DecodeError{Shape: shape, Err: errors.New("unknown shape")}
	}
}

func decodeText(raw ports.RawResponse) (domain.GenerationResult, error) {
	if mediaType(raw.ContentType) == "text/plain" {
		return domain.TextResult{Text: string(raw.Body)}, nil
	}

	data, err := unwrapEnvelope(raw.Body, domain.ShapePlainText)
	if err != nil {
		return nil, err
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil, &domain.DecodeError{Shape: domain.ShapePlainText, Err: err}
	}

	return domain.TextResult{Text: text}, nil
}

func decodeTextList(raw ports.RawResponse) (domain.GenerationResult, error) {
	data, err := unwrapEnvelope(raw.Body, domain.ShapeTextArray)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &domain.DecodeError{Shape: domain.ShapeTextArray, Err: err}
	}
	if items == nil {
		items = []string{}
	}

	return domain.TextListResult{Items: items}, nil
}

func decodeBinary(raw ports.RawResponse, declaredMIME string) (domain.GenerationResult, error) {
	responseType := mediaType(raw.ContentType)
	if responseType == "application/json" {
		return nil, &domain.DecodeError{Shape: domain.ShapeBlob, Err: errors.New("received JSON instead of binary content")}
	}

	data := bytes.Clone(raw.Body)
	if data == nil {
		data = []byte{}
	}

	return domain.BinaryResult{Data: data, MIMEType: resolveMIME(responseType, declaredMIME, data)}, nil
}

func resolveMIME(responseType, declaredMIME string, data []byte) string {
	if responseType != "" && responseType != fallbackBinaryMIME {
		return responseType
	}
	if declared := mediaType(declaredMIME); declared != "" {
		return declared
	}
	if len(data) == 0 {
		return fallbackBinaryMIME
	}

	return mediaType(mimetype.Detect(data).String())
}

// unwrapEnvelope returns the "data" member; a missing member is a decode error, null is kept.
func unwrapEnvelope(body []byte, shape domain.Shape) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &domain.DecodeError{Shape: shape, Err: err}
	}
	if env.Data == nil {
		return nil, &domain.DecodeError{Shape: shape, Err: errors.New(`missing "data" field`)}
	}

	return env.Data, nil
}

// ErrorMessage extracts the backend's error text from a failed response body.
func ErrorMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, key := range []string{"error", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var message string
		if err := json.Unmarshal(raw, &message); err == nil && strings.TrimSpace(message) != "" {
			return strings.TrimSpace(message)
		}
	}

	return ""
}

// ToClipboardText renders textual results; list entries are separated by a blank line.
func ToClipboardText(result domain.GenerationResult) (string, error) {
	switch r := result.(type) {
	case domain.TextResult:
		return r.Text, nil
	case domain.TextListResult:
		return strings.Join(r.Items, "\n\n"), nil
	case domain.BinaryResult:
		return "", fmt.Errorf("%w: %s", domain.ErrNotTextual, r.MIMEType)
	default:
		return "", fmt.Errorf("%w: %T", domain.ErrNotTextual, result)
	}
}

func ToDownloadableFile(result domain.GenerationResult, filename string) (ports.File, error) {
	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "result"
	}

	switch r := result.(type) {
	case domain.TextResult, domain.TextListResult:
		text, err := ToClipboardText(r)
		if err != nil {
			return ports.File{}, err
		}
		return ports.File{
			Name:     withExtension(name, ".txt"),
			MIMEType: "text/plain; charset=utf-8",
			Data:     []byte(text),
		}, nil
	case domain.BinaryResult:
		return ports.File{
			Name:     withExtension(name, ExtensionFor(r.MIMEType)),
			MIMEType: r.MIMEType,
			Data:     r.Data,
		}, nil
	default:
		return ports.File{}, fmt.Errorf("unsupported result type %T", result)
	}
}

func ToSharePayload(result domain.GenerationResult, title string) (ports.SharePayload, error) {
	payload := ports.SharePayload{Title: title}

	switch r := result.(type) {
	case domain.TextResult, domain.TextListResult:
		text, err := ToClipboardText(r)
		if err != nil {
			return ports.SharePayload{}, err
		}
		payload.Text = text
	case domain.BinaryResult:
		file, err := ToDownloadableFile(r, shareFilename(title))
		if err != nil {
			return ports.SharePayload{}, err
		}
		payload.Files = []ports.File{file}
	default:
		return ports.SharePayload{}, fmt.Errorf("unsupported result type %T", result)
	}

	return payload, nil
}

// ExtensionFor maps a MIME type to a file extension including the dot.
func ExtensionFor(mimeType string) string {
	if node := mimetype.Lookup(mediaType(mimeType)); node != nil && node.Extension() != "" {
		return node.Extension()
	}

	if extensions, err := mime.ExtensionsByType(mediaType(mimeType)); err == nil && len(extensions) > 0 {
		return extensions[0]
	}

	return ".bin"
}

func withExtension(name, ext string) string {
	if filepath.Ext(name) != "" {
		return name
	}

	return name + ext
}

func shareFilename(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "result"
	}

	return strings.Join(fields, "-")
}

func mediaType(contentType string) string {
	trimmed := strings.TrimSpace(contentType)
	if trimmed == "" {
		return ""
	}

	parsed, _, err := mime.ParseMediaType(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}

	return parsed
}
