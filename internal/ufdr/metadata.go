package ufdr

import (
	"strings"

	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

// parseMetadata flattens a device-info document into a string mapping.
// Children of any <device> element are taken first, then direct top-level
// children with non-empty text; later values overwrite earlier ones.
func parseMetadata(doc *Node) model.DeviceMetadata {
	meta := model.DeviceMetadata{}
	for _, dev := range doc.Iter("device") {
		for i := range dev.Children {
			ch := &dev.Children[i]
			meta[ch.Tag()] = strings.TrimSpace(ch.Text)
		}
	}
	for i := range doc.Children {
		ch := &doc.Children[i]
		if text := strings.TrimSpace(ch.Text); text != "" {
			meta[ch.Tag()] = text
		}
	}
	return meta
}
