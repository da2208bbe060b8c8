package ufdr

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufdrinsight/ufdrinsight/internal/errors"
)

func makeZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const messagesDoc = `<messages>
	<message><timestamp>2024-01-15T10:30:00</timestamp><contact_name>John</contact_name><body>hi</body></message>
	<message><timestamp>2024-01-16T11:00:00</timestamp><contact_name>Sarah</contact_name><body>yo</body></message>
</messages>`

func TestParse_RoutesByFilename(t *testing.T) {
	data := makeZip(t, map[string]string{
		"sms_backup.xml": messagesDoc,
		"call_log.xml": `<calls>
			<call><timestamp>2024-01-15T12:00:00</timestamp><caller>John</caller><duration>60</duration></call>
		</calls>`,
		"addressbook.xml": `<contacts><contact><name>John</name><phone>+1-555-0001</phone></contact></contacts>`,
		"device_info.xml": `<metadata><device><model>Pixel 8</model></device></metadata>`,
		"readme.txt":      "not xml, ignored",
	})

	result, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, result.Messages, 2)
	assert.Len(t, result.Calls, 1)
	assert.Len(t, result.Contacts, 1)
	assert.Equal(t, "Pixel 8", result.Metadata["model"])
	assert.Empty(t, result.Errors)
}

func TestParse_UnclassifiedFallback(t *testing.T) {
	data := makeZip(t, map[string]string{
		"export_0001.xml": messagesDoc,
	})

	result, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, result.Messages, 2)
}

func TestParse_MalformedMemberIsIsolated(t *testing.T) {
	data := makeZip(t, map[string]string{
		"messages_broken.xml": "<messages><message></messages",
		"messages_good.xml":   messagesDoc,
	})

	result, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, result.Messages, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "messages_broken.xml")
}

func TestParse_NotAZip(t *testing.T) {
	result, err := Parse([]byte("definitely not a zip archive"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 400, errors.HTTPStatus(err))
}

func TestParse_EmptyResult(t *testing.T) {
	data := makeZip(t, map[string]string{"notes.txt": "nothing to see"})

	result, err := Parse(data)
	require.ErrorIs(t, err, errors.ErrNoMessages)
	require.NotNil(t, result)
	assert.Empty(t, result.Messages)
	assert.Contains(t, result.Errors, "No messages found in ZIP")
}

func TestParse_DroppedRecordsSurfaced(t *testing.T) {
	data := makeZip(t, map[string]string{
		"messages.xml": `<messages>
			<message><timestamp>2024-01-15T10:30:00</timestamp><body>ok</body></message>
			<message><timestamp>garbage</timestamp><body>gone</body></message>
		</messages>`,
	})

	result, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, result.Messages, 1)
	assert.Equal(t, 1, result.DroppedRecords)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "dropped")
}
