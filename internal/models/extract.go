package models

import "strings"

const (
	RoleBuyer           = "buyer"
	RoleProcuringEntity = "procuringEntity"
)

// orderedSet хранит строки без повторов в порядке первого появления.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) list() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}

// BuyerNames возвращает имена покупателей: прямой buyer, procuringEntity
// тендера и участники с ролью buyer или procuringEntity.
func (c CompiledRelease) BuyerNames() []string {
	var set orderedSet
	set.add(string(c.Buyer.Name))
	set.add(string(c.Tender.ProcuringEntity.Name))
	for _, party := range c.Parties {
		if party.HasRole(RoleBuyer) || party.HasRole(RoleProcuringEntity) {
			set.add(string(party.Name))
		}
	}
	return set.list()
}

// Departments возвращает департаменты (или регионы) из адресов участников.
func (c CompiledRelease) Departments() []string {
	var set orderedSet
	for _, party := range c.Parties {
		set.add(party.Address.Area())
	}
	return set.list()
}

// IsUNSPSC проверяет схему классификатора без учёта регистра.
func IsUNSPSC(scheme string) bool {
	s := strings.ToLower(scheme)
	return s == "unspsc" || s == "unpsc"
}

// Label возвращает "id – description" или только id, если описания нет.
func (c Classification) Label() string {
	id := strings.TrimSpace(string(c.ID))
	description := strings.TrimSpace(string(c.Description))
	if description != "" {
		return id + " – " + description
	}
	return id
}

// Classifications возвращает основной и дополнительные коды позиции.
func (i Item) Classifications() []Classification {
	out := make([]Classification, 0, 1+len(i.AdditionalClassifications))
	out = append(out, i.Classification)
	out = append(out, i.AdditionalClassifications...)
	return out
}

// ClassificationLabels собирает метки UNSPSC для набора позиций.
func ClassificationLabels(items []Item) []string {
	var set orderedSet
	for _, item := range items {
		for _, code := range item.Classifications() {
			if !IsUNSPSC(string(code.Scheme)) {
				continue
			}
			set.add(code.Label())
		}
	}
	return set.list()
}

// ClassificationLabels возвращает метки UNSPSC всех позиций тендера.
func (c CompiledRelease) ClassificationLabels() []string {
	return ClassificationLabels(c.Tender.Items)
}
