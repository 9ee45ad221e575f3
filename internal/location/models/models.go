package models

import (
	"admingeo/internal/domain"
)

// The division tree is a strict hierarchy: province → district →
// constituency → ward. Reads return each node with its full ancestor
// chain and its immediate children hydrated; ancestors are returned
// without their own sibling collections.

// Province is the root of the division tree.
type Province struct {
	domain.Metadata
	ProvinceName string     `json:"provinceName"`
	Districts    []District `json:"districts"`
}

// District belongs to exactly one province.
type District struct {
	domain.Metadata
	DistrictName   string         `json:"districtName"`
	Province       *Province      `json:"province,omitempty"`
	Constituencies []Constituency `json:"constituencies"`
}

// Constituency belongs to exactly one district.
type Constituency struct {
	domain.Metadata
	ConstituencyName string    `json:"constituencyName"`
	District         *District `json:"district,omitempty"`
	Wards            []Ward    `json:"wards"`
}

// Ward is the leaf of the tree.
type Ward struct {
	domain.Metadata
	WardName     string        `json:"wardName"`
	Constituency *Constituency `json:"constituency,omitempty"`
}
