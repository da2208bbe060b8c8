// Package ufdr extracts canonical communication records from UFDR archives:
// zip containers of arbitrarily named XML members with unconstrained,
// vendor-specific schemas. Member classification is by filename keyword,
// field discovery by ordered heuristic name chains.
package ufdr

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog/log"

	"github.com/ufdrinsight/ufdrinsight/internal/errors"
	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

// Filename keyword sets routing each .xml member to a record parser.
var (
	messageKeywords  = []string{"message", "sms", "chat", "whatsapp"}
	callKeywords     = []string{"call", "phone"}
	contactKeywords  = []string{"contact", "address"}
	metadataKeywords = []string{"meta", "device"}
)

// Parse opens archive bytes and extracts all recoverable records.
//
// A container that does not open as zip fails the whole request with an
// InvalidArchive error and no result. Per-member failures are isolated: a
// malformed XML member lands in the result's Errors list and processing
// continues. When the whole archive yields zero message records the result
// is still returned together with errors.ErrNoMessages, so callers can
// distinguish "nothing parseable" from a quiet but valid report.
func Parse(data []byte) (*model.ParseResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.InvalidArchive(err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	result := &model.ParseResult{Metadata: model.DeviceMetadata{}}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			continue
		}
		content, err := readMember(f)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		doc, err := decodeXML(content)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: invalid XML: %v", f.Name, err))
			continue
		}
		routeMember(f.Name, doc, result)
	}

	if result.DroppedRecords > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d records dropped due to unparseable timestamps", result.DroppedRecords))
	}
	if len(result.Messages) == 0 {
		result.Errors = append(result.Errors, errors.ErrNoMessages.Msg)
		return result, errors.ErrNoMessages
	}
	return result, nil
}

func routeMember(name string, doc *Node, result *model.ParseResult) {
	lower := strings.ToLower(name)
	switch {
	case matchesAny(lower, messageKeywords):
		msgs, dropped := parseMessages(doc)
		result.Messages = append(result.Messages, msgs...)
		result.DroppedRecords += dropped
		log.Debug().Str("member", name).Int("messages", len(msgs)).Int("dropped", dropped).Msg("parsed message member")
	case matchesAny(lower, callKeywords):
		calls, dropped := parseCalls(doc)
		result.Calls = append(result.Calls, calls...)
		result.DroppedRecords += dropped
		log.Debug().Str("member", name).Int("calls", len(calls)).Msg("parsed call member")
	case matchesAny(lower, contactKeywords):
		result.Contacts = append(result.Contacts, parseContacts(doc)...)
	case matchesAny(lower, metadataKeywords):
		for k, v := range parseMetadata(doc) {
			result.Metadata[k] = v
		}
	default:
		// Unclassified member: try the message parser and keep the result
		// only when it actually yields records.
		msgs, dropped := parseMessages(doc)
		if len(msgs) > 0 {
			result.Messages = append(result.Messages, msgs...)
			result.DroppedRecords += dropped
			log.Debug().Str("member", name).Int("messages", len(msgs)).Msg("auto-detected message member")
		}
	}
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func matchesAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}
