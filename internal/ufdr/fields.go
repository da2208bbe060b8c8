package ufdr

// fieldSource is one step of an ordered field-discovery chain. By default a
// source checks the node's direct child element first and falls back to the
// same-named attribute; attrOnly restricts it to the attribute.
type fieldSource struct {
	name     string
	attrOnly bool
}

func attrSource(name string) fieldSource {
	return fieldSource{name: name, attrOnly: true}
}

// Discovery chains per logical field. These are data, not control flow, so
// vendor quirks are handled by editing a list rather than parser code.
var (
	msgTimestampSources = []fieldSource{
		{name: "timestamp"}, {name: "time"}, {name: "date"}, {name: "TimeStamp"},
		attrSource("date"), attrSource("time"),
	}
	msgContactSources = []fieldSource{
		{name: "contact_name"}, {name: "contact"}, {name: "name"}, {name: "from"},
		{name: "sender"}, {name: "party"}, {name: "address"}, attrSource("address"),
	}
	msgBodySources = []fieldSource{
		{name: "body"}, {name: "text"}, {name: "content"},
	}
	msgDirectionSources = []fieldSource{
		{name: "direction"}, {name: "type"}, attrSource("type"),
	}

	callTimestampSources = []fieldSource{
		{name: "timestamp"}, {name: "time"}, {name: "date"},
	}
	callContactSources = []fieldSource{
		{name: "contact_name"}, {name: "contact"}, {name: "caller"}, {name: "number"},
	}
)

// extract walks the chain and returns the first non-empty value, preferring
// child-element text over a same-named attribute, or def when nothing hits.
func extract(n *Node, sources []fieldSource, def string) string {
	for _, src := range sources {
		if !src.attrOnly {
			if v := n.ChildText(src.name); v != "" {
				return v
			}
		}
		if v := n.Attr(src.name); v != "" {
			return v
		}
	}
	return def
}
