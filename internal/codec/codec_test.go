package codec

import (
	"testing"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlainText(t *testing.T) {
	result, err := Decode(ports.RawResponse{Body: []byte(`{"data":"Hello there"}`), ContentType: "application/json"}, domain.ShapePlainText, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TextResult{Text: "Hello there"}, result)

	result, err = Decode(ports.RawResponse{Body: []byte("raw words"), ContentType: "text/plain; charset=utf-8"}, domain.ShapePlainText, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TextResult{Text: "raw words"}, result)
}

func TestDecodeTextArray(t *testing.T) {
	result, err := Decode(ports.RawResponse{Body: []byte(`{"data":["a","b"]}`)}, domain.ShapeTextArray, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TextListResult{Items: []string{"a", "b"}}, result)

	result, err = Decode(ports.RawResponse{Body: []byte(`{"data":null}`)}, domain.ShapeTextArray, "")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestDecodeRejectsMismatchedShapes(t *testing.T) {
	tests := []struct {
		name  string
		raw   ports.RawResponse
		shape domain.Shape
	}{
		{name: "not json", raw: ports.RawResponse{Body: []byte("<html>")}, shape: domain.ShapePlainText},
		{name: "missing data", raw: ports.RawResponse{Body: []byte(`{"result":"x"}`)}, shape: domain.ShapePlainText},
		{name: "array for text", raw: ports.RawResponse{Body: []byte(`{"data":["x"]}`)}, shape: domain.ShapePlainText},
		{name: "object list", raw: ports.RawResponse{Body: []byte(`{"data":[{"text":"x"}]}`)}, shape: domain.ShapeTextArray},
		{name: "json for blob", raw: ports.RawResponse{Body: []byte(`{"data":"x"}`), ContentType: "application/json"}, shape: domain.ShapeBlob},
		{name: "unknown shape", raw: ports.RawResponse{Body: []byte(`{}`)}, shape: "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw, tt.shape, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestDecodeBinaryMIMEResolution(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n")

	tests := []struct {
		name     string
		raw      ports.RawResponse
		declared string
		want     string
	}{
		{name: "response content type wins", raw: ports.RawResponse{Body: []byte{0xff, 0xfb}, ContentType: "audio/mpeg"}, declared: "application/zip", want: "audio/mpeg"},
		{name: "declared when generic", raw: ports.RawResponse{Body: []byte{1, 2}, ContentType: "application/octet-stream"}, declared: "application/zip", want: "application/zip"},
		{name: "sniffed when nothing declared", raw: ports.RawResponse{Body: pdf}, want: "application/pdf"},
		{name: "empty body", raw: ports.RawResponse{}, want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.raw, domain.ShapeBlob, tt.declared)
			require.NoError(t, err)
			binary, ok := result.(domain.BinaryResult)
			require.True(t, ok)
			assert.Equal(t, tt.want, binary.MIMEType)
		})
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	cases := []struct {
		raw   ports.RawResponse
		shape domain.Shape
	}{
		{raw: ports.RawResponse{Body: []byte(`{"data":"same"}`)}, shape: domain.ShapePlainText},
		{raw: ports.RawResponse{Body: []byte(`{"data":["x","y"]}`)}, shape: domain.ShapeTextArray},
		{raw: ports.RawResponse{Body: []byte("PK\x03\x04zipdata"), ContentType: "application/zip"}, shape: domain.ShapeBlob},
	}

	for _, c := range cases {
		first, err := Decode(c.raw, c.shape, "")
		require.NoError(t, err)
		second, err := Decode(c.raw, c.shape, "")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDecodeBinaryDoesNotAliasBody(t *testing.T) {
	body := []byte{1, 2, 3}
	result, err := Decode(ports.RawResponse{Body: body, ContentType: "image/png"}, domain.ShapeBlob, "")
	require.NoError(t, err)

	body[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, result.(domain.BinaryResult).Data)
}

func TestToClipboardText(t *testing.T) {
	text, err := ToClipboardText(domain.TextListResult{Items: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", text)

	text, err = ToClipboardText(domain.TextResult{Text: "single"})
	require.NoError(t, err)
	assert.Equal(t, "single", text)

	_, err = ToClipboardText(domain.BinaryResult{MIMEType: "audio/mpeg"})
	assert.ErrorIs(t, err, domain.ErrNotTextual)
}

func TestToDownloadableFile(t *testing.T) {
	file, err := ToDownloadableFile(domain.TextListResult{Items: []string{"one", "two"}}, "captions")
	require.NoError(t, err)
	assert.Equal(t, "captions.txt", file.Name)
	assert.Equal(t, "one\n\ntwo", string(file.Data))

	file, err = ToDownloadableFile(domain.BinaryResult{Data: []byte{1}, MIMEType: "audio/mpeg"}, "voice")
	require.NoError(t, err)
	assert.Equal(t, "voice.mp3", file.Name)
	assert.Equal(t, "audio/mpeg", file.MIMEType)

	file, err = ToDownloadableFile(domain.BinaryResult{Data: []byte{1}, MIMEType: "application/pdf"}, "../../etc/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", file.Name)

	file, err = ToDownloadableFile(domain.BinaryResult{Data: []byte{1}, MIMEType: "application/x-unknown-thing"}, "")
	require.NoError(t, err)
	assert.Equal(t, "result.bin", file.Name)
}

func TestToSharePayload(t *testing.T) {
	payload, err := ToSharePayload(domain.TextResult{Text: "caption"}, "Instagram Caption")
	require.NoError(t, err)
	assert.Equal(t, ports.SharePayload{Title: "Instagram Caption", Text: "caption"}, payload)

	payload, err = ToSharePayload(domain.BinaryResult{Data: []byte{1}, MIMEType: "image/png"}, "Resized Image!")
	require.NoError(t, err)
	require.Len(t, payload.Files, 1)
	assert.Equal(t, "resized-image.png", payload.Files[0].Name)
	assert.Empty(t, payload.Text)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Daily limit reached", ErrorMessage([]byte(`{"error":" Daily limit reached "}`)))
	assert.Equal(t, "bad input", ErrorMessage([]byte(`{"message":"bad input"}`)))
	assert.Empty(t, ErrorMessage([]byte(`{"error":{"code":1}}`)))
	assert.Empty(t, ErrorMessage([]byte(`not json`)))
}
