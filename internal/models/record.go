package models

import "strings"

// Record представляет запись OCDS, полученную из API контрактов.
type Record struct {
	OCID            Text            `json:"ocid"`
	Releases        List[Link]      `json:"releases"`
	CompiledRelease CompiledRelease `json:"compiledRelease"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	*r = Record{}
	return decodeObject(data, (*plain)(r))
}

// CompiledRelease - сводное (текущее) состояние процедуры закупки.
type CompiledRelease struct {
	OCID    Text         `json:"ocid"`
	Date    Text         `json:"date"`
	Buyer   Organization `json:"buyer"`
	Tender  Tender       `json:"tender"`
	Parties List[Party]  `json:"parties"`
	Sources List[Link]   `json:"sources"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (c *CompiledRelease) UnmarshalJSON(data []byte) error {
	type plain CompiledRelease
	*c = CompiledRelease{}
	return decodeObject(data, (*plain)(c))
}

// Tender описывает тендер внутри compiled release.
type Tender struct {
	Title           Text         `json:"title"`
	Description     Text         `json:"description"`
	DatePublished   Text         `json:"datePublished"`
	Value           Value        `json:"value"`
	ProcuringEntity Organization `json:"procuringEntity"`
	Items           List[Item]   `json:"items"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (t *Tender) UnmarshalJSON(data []byte) error {
	type plain Tender
	*t = Tender{}
	return decodeObject(data, (*plain)(t))
}

// Value - сумма и валюта.
type Value struct {
	Amount   Number `json:"amount"`
	Currency Text   `json:"currency"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	type plain Value
	*v = Value{}
	return decodeObject(data, (*plain)(v))
}

// Item - позиция тендера.
type Item struct {
	Description               Text                 `json:"description"`
	Classification            Classification       `json:"classification"`
	AdditionalClassifications List[Classification] `json:"additionalClassifications"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	*i = Item{}
	return decodeObject(data, (*plain)(i))
}

// Classification - код классификатора товаров и услуг.
type Classification struct {
	Scheme      Text `json:"scheme"`
	ID          Text `json:"id"`
	Description Text `json:"description"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (c *Classification) UnmarshalJSON(data []byte) error {
	type plain Classification
	*c = Classification{}
	return decodeObject(data, (*plain)(c))
}

// Party - участник процедуры.
type Party struct {
	Name    Text       `json:"name"`
	Roles   List[Text] `json:"roles"`
	Address Address    `json:"address"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (p *Party) UnmarshalJSON(data []byte) error {
	type plain Party
	*p = Party{}
	return decodeObject(data, (*plain)(p))
}

// HasRole проверяет, что у участника есть роль role.
func (p Party) HasRole(role string) bool {
	for _, r := range p.Roles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// Address - адрес участника.
type Address struct {
	Department Text `json:"department"`
	Region     Text `json:"region"`
	Locality   Text `json:"locality"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (a *Address) UnmarshalJSON(data []byte) error {
	type plain Address
	*a = Address{}
	return decodeObject(data, (*plain)(a))
}

// Area возвращает department, а если его нет - region.
func (a Address) Area() string {
	if a.Department != "" {
		return string(a.Department)
	}
	return string(a.Region)
}

// Combined склеивает department, region и locality через пробел, пропуская пустые.
func (a Address) Combined() string {
	parts := make([]string, 0, 3)
	for _, p := range []Text{a.Department, a.Region, a.Locality} {
		if p != "" {
			parts = append(parts, string(p))
		}
	}
	return strings.Join(parts, " ")
}

// Organization - ссылка на организацию (buyer, procuringEntity).
type Organization struct {
	Name Text `json:"name"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (o *Organization) UnmarshalJSON(data []byte) error {
	type plain Organization
	*o = Organization{}
	return decodeObject(data, (*plain)(o))
}

// Link - объект с url (releases, sources).
type Link struct {
	URL Text `json:"url"`
}

// UnmarshalJSON реализует json.Unmarshaler.
func (l *Link) UnmarshalJSON(data []byte) error {
	type plain Link
	*l = Link{}
	return decodeObject(data, (*plain)(l))
}

// Identifier возвращает ocid compiled release, а если его нет - ocid записи.
func (r Record) Identifier() string {
	if r.CompiledRelease.OCID != "" {
		return string(r.CompiledRelease.OCID)
	}
	return string(r.OCID)
}

// DetailURL возвращает ссылку на первый release или первый source.
func (r Record) DetailURL() string {
	if len(r.Releases) > 0 && r.Releases[0].URL != "" {
		return string(r.Releases[0].URL)
	}
	if len(r.CompiledRelease.Sources) > 0 {
		return string(r.CompiledRelease.Sources[0].URL)
	}
	return ""
}
