package ufdr

import "github.com/ufdrinsight/ufdrinsight/internal/model"

var (
	contactNameSources  = []fieldSource{{name: "n"}, {name: "name"}}
	contactPhoneSources = []fieldSource{{name: "phone"}, {name: "number"}}
)

func parseContacts(doc *Node) []model.Contact {
	var contacts []model.Contact
	for _, el := range doc.Iter("contact") {
		contacts = append(contacts, model.Contact{
			Name:  extract(el, contactNameSources, "?"),
			Phone: extract(el, contactPhoneSources, ""),
		})
	}
	return contacts
}
