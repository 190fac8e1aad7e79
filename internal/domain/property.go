package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// 房源类型枚举
const (
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeVilla     = "villa"
	TypeStudio    = "studio"
)

func ValidPropertyType(t string) bool {
	switch t {
	case TypeApartment, TypeHouse, TypeVilla, TypeStudio:
		return true
	}
	return false
}

// StringList 以 JSON 文本存进单列（amenities / images）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported column type for StringList")
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

type Property struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:191;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       int        `gorm:"not null" json:"price"`
	Location    string     `gorm:"size:191;not null" json:"location"`
	Bedrooms    int        `gorm:"not null" json:"bedrooms"`
	Bathrooms   int        `gorm:"not null" json:"bathrooms"`
	Area        int        `gorm:"not null" json:"area"`
	Type        string     `gorm:"size:16;not null" json:"type"`
	Amenities   StringList `gorm:"type:text" json:"amenities"`
	Images      StringList `gorm:"type:text" json:"images"`
	Available   bool       `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Property) TableName() string { return "properties" }

// PropertyFilter 搜索条件；nil 字段表示不限制
type PropertyFilter struct {
	Type     string // "" 或 "all" 不限制
	MinPrice *int
	MaxPrice *int
	Bedrooms *int
	Location string
	Search   string
}

// Matches reports whether p satisfies every supplied clause. The SQL
// translation in repo must agree with this predicate.
func (f PropertyFilter) Matches(p Property) bool {
	if !p.Available {
		return false
	}
	if f.Type != "" && f.Type != "all" && p.Type != f.Type {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.Search != "" &&
		!containsFold(p.Title, f.Search) &&
		!containsFold(p.Description, f.Search) &&
		!containsFold(p.Location, f.Search) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// PropertyUpdate 白名单式部分更新；nil 字段保持原值。
// id / createdAt 不可改，未知 JSON 字段解码时直接丢弃。
type PropertyUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *int      `json:"price"`
	Location    *string   `json:"location"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Area        *int      `json:"area"`
	Type        *string   `json:"type"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
	Available   *bool     `json:"available"`
}

// Apply merges the supplied fields into p.
func (u PropertyUpdate) Apply(p *Property) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.Area != nil {
		p.Area = *u.Area
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Amenities != nil {
		p.Amenities = StringList(*u.Amenities)
	}
	if u.Images != nil {
		p.Images = StringList(*u.Images)
	}
	if u.Available != nil {
		p.Available = *u.Available
	}
}

type PropertyRepository interface {
	Create(p *Property) error
	FindByID(id string) (*Property, error)
	Search(f PropertyFilter) ([]Property, error)
	ListAll() ([]Property, error)
	Update(p *Property) error
	Delete(id string) (bool, error)
}
