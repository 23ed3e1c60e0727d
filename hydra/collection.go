package hydra

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
)

// CollectionSuffix is appended to a member class's IRI and title to name
// its collection wrapper.
const CollectionSuffix = "Collection"

// CollectionIRI returns the IRI of the collection wrapping memberIRI.
func CollectionIRI(memberIRI string) string {
	return memberIRI + CollectionSuffix
}

// DeriveCollection returns the collection class wrapping member. The result
// depends only on member's IRI and title.
func DeriveCollection(member *Class) *Class {
	name := member.title + CollectionSuffix
	lower := cases.Lower(language.Und).String(member.title)
	iri := CollectionIRI(member.iri)

	return &Class{
		iri:         iri,
		title:       name,
		description: fmt.Sprintf("A collection of %s", lower),
		subClassOf:  vocab.ClassCollection,
		properties: []Property{{
			IRI:      vocab.PropMember,
			Title:    "members",
			Readable: true,
		}},
		operations: []Operation{
			{
				ID:      fmt.Sprintf("_:%s_collection_retrieve", lower),
				Type:    vocab.ActionFind,
				Title:   fmt.Sprintf("Retrieves all %s entities", member.title),
				Method:  "GET",
				Returns: iri,
				Statuses: []Status{
					{Code: 200, Description: fmt.Sprintf("%s returned", name)},
				},
			},
			{
				ID:      fmt.Sprintf("_:%s_create", lower),
				Type:    vocab.ActionAdd,
				Title:   fmt.Sprintf("Create new %s entity", member.title),
				Method:  "POST",
				Expects: member.iri,
				Returns: member.iri,
				Statuses: []Status{
					{Code: 201, Description: fmt.Sprintf("If the %s entity was created successfully.", member.title)},
				},
			},
		},
	}
}

// BaseResource returns the generic Resource class every addressable
// resource extends.
func BaseResource() *Class {
	return &Class{
		iri:         vocab.ClassResource,
		title:       "Resource",
		description: "The class of dereferenceable resources.",
		properties:  make([]Property, 0),
		operations:  make([]Operation, 0),
	}
}

// BaseCollection returns the generic Collection class every collection
// wrapper extends. It exposes the member property and an add member
// operation.
func BaseCollection() *Class {
	return &Class{
		iri:         vocab.ClassCollection,
		title:       "Collection",
		description: "A collection holding references to a number of related resources.",
		subClassOf:  vocab.ClassResource,
		properties: []Property{{
			IRI:      vocab.PropMember,
			Title:    "members",
			Readable: true,
		}},
		operations: []Operation{{
			ID:      "_:collection_add_member",
			Type:    vocab.ActionAdd,
			Title:   "Add a member to the collection",
			Method:  "POST",
			Expects: vocab.ClassResource,
			Returns: vocab.ClassResource,
			Statuses: []Status{
				{Code: 201, Description: "Member added"},
			},
		}},
	}
}
