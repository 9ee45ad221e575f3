package models

import (
	"strings"

	dErrors "admingeo/pkg/domain-errors"
)

// RelationRef identifies a parent row in a create payload.
type RelationRef struct {
	ID int64 `json:"id"`
}

// ProvinceDto is the create payload for a province.
type ProvinceDto struct {
	ProvinceName string `json:"provinceName"`
}

func (d ProvinceDto) Validate() error {
	if strings.TrimSpace(d.ProvinceName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "provinceName is required")
	}
	return nil
}

// DistrictDto is the create payload for a district.
type DistrictDto struct {
	DistrictName string      `json:"districtName"`
	Province     RelationRef `json:"province"`
}

func (d DistrictDto) Validate() error {
	if strings.TrimSpace(d.DistrictName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "districtName is required")
	}
	if d.Province.ID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "province.id is required")
	}
	return nil
}

// ConstituencyDto is the create payload for a constituency.
type ConstituencyDto struct {
	ConstituencyName string      `json:"constituencyName"`
	District         RelationRef `json:"district"`
}

func (d ConstituencyDto) Validate() error {
	if strings.TrimSpace(d.ConstituencyName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "constituencyName is required")
	}
	if d.District.ID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "district.id is required")
	}
	return nil
}

// WardDto is the create payload for a ward.
type WardDto struct {
	WardName     string      `json:"wardName"`
	Constituency RelationRef `json:"constituency"`
}

func (d WardDto) Validate() error {
	if strings.TrimSpace(d.WardName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "wardName is required")
	}
	if d.Constituency.ID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "constituency.id is required")
	}
	return nil
}

// Update payloads carry only the fields the client wants to change;
// nil means "keep the current value". The persisted record is always
// the current row overlaid with these fields, written in full.

type ProvinceUpdate struct {
	ProvinceName *string `json:"provinceName"`
	IsActive     *bool   `json:"isActive"`
}

type DistrictUpdate struct {
	DistrictName *string `json:"districtName"`
	IsActive     *bool   `json:"isActive"`
}

type ConstituencyUpdate struct {
	ConstituencyName *string `json:"constituencyName"`
	IsActive         *bool   `json:"isActive"`
}

type WardUpdate struct {
	WardName *string `json:"wardName"`
	IsActive *bool   `json:"isActive"`
}
