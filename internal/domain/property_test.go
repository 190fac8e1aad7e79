package domain

import (
	"testing"
	"time"
)

func intp(n int) *int { return &n }

func sample() Property {
	return Property{
		ID:          "p1",
		Title:       "Sunny Apartment",
		Description: "Bright two bedroom close to the park",
		Price:       15000,
		Location:    "Berlin Mitte",
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        70,
		Type:        TypeApartment,
		Amenities:   StringList{"wifi", "balcony"},
		Images:      StringList{"a.jpg"},
		Available:   true,
		CreatedAt:   time.Now(),
	}
}

func TestFilterMatches_OpenFilter(t *testing.T) {
	p := sample()
	if !(PropertyFilter{}).Matches(p) {
		t.Error("open filter must match an available property")
	}

	p.Available = false
	if (PropertyFilter{}).Matches(p) {
		t.Error("unavailable property must never match the public filter")
	}
}

func TestFilterMatches_Type(t *testing.T) {
	p := sample()
	if !(PropertyFilter{Type: "all"}).Matches(p) {
		t.Error("type=all must not constrain")
	}
	if !(PropertyFilter{Type: TypeApartment}).Matches(p) {
		t.Error("matching type rejected")
	}
	if (PropertyFilter{Type: TypeVilla}).Matches(p) {
		t.Error("non-matching type accepted")
	}
}

func TestFilterMatches_PriceRange(t *testing.T) {
	p := sample() // price 15000
	cases := []struct {
		name string
		f    PropertyFilter
		want bool
	}{
		{"inside", PropertyFilter{MinPrice: intp(10000), MaxPrice: intp(20000)}, true},
		{"min boundary", PropertyFilter{MinPrice: intp(15000)}, true},
		{"max boundary", PropertyFilter{MaxPrice: intp(15000)}, true},
		{"below min", PropertyFilter{MinPrice: intp(15001)}, false},
		{"above max", PropertyFilter{MaxPrice: intp(14999)}, false},
	}
	for _, tc := range cases {
		if got := tc.f.Matches(p); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterMatches_BedroomsExact(t *testing.T) {
	p := sample() // 2 bedrooms
	if !(PropertyFilter{Bedrooms: intp(2)}).Matches(p) {
		t.Error("exact bedroom count rejected")
	}
	// 精确匹配，不是“至少 N 间”
	if (PropertyFilter{Bedrooms: intp(1)}).Matches(p) {
		t.Error("bedrooms filter must be exact, not a minimum")
	}
}

func TestFilterMatches_LocationAndSearch(t *testing.T) {
	p := sample()
	if !(PropertyFilter{Location: "mitte"}).Matches(p) {
		t.Error("location substring must be case-insensitive")
	}
	if (PropertyFilter{Location: "Hamburg"}).Matches(p) {
		t.Error("non-matching location accepted")
	}

	if !(PropertyFilter{Search: "PARK"}).Matches(p) {
		t.Error("search must hit the description case-insensitively")
	}
	if !(PropertyFilter{Search: "berlin"}).Matches(p) {
		t.Error("search must also cover location")
	}

	// location 与 search 同时给出时都生效（进一步收窄）
	if !(PropertyFilter{Location: "berlin", Search: "sunny"}).Matches(p) {
		t.Error("both clauses satisfied but record rejected")
	}
	if (PropertyFilter{Location: "berlin", Search: "castle"}).Matches(p) {
		t.Error("search clause failed but record accepted")
	}
}

// 对应组合示例：{minPrice:10000, maxPrice:20000, bedrooms:2} 对价格
// {9000, 15000, 25000} / 卧室 {2, 2, 3} 只留 15000/2。
func TestFilterMatches_CombinedExample(t *testing.T) {
	f := PropertyFilter{MinPrice: intp(10000), MaxPrice: intp(20000), Bedrooms: intp(2)}

	mk := func(id string, price, bedrooms int) Property {
		p := sample()
		p.ID = id
		p.Price = price
		p.Bedrooms = bedrooms
		return p
	}
	props := []Property{mk("a", 9000, 2), mk("b", 15000, 2), mk("c", 25000, 3)}

	var got []string
	for _, p := range props {
		if f.Matches(p) {
			got = append(got, p.ID)
		}
	}
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected exactly [b], got %v", got)
	}
}

func TestPropertyUpdate_ApplyPartial(t *testing.T) {
	p := sample()
	before := p

	avail := false
	(PropertyUpdate{Available: &avail}).Apply(&p)

	if p.Available {
		t.Error("available not updated")
	}
	// 其余字段必须原封不动
	p.Available = before.Available
	if p.Title != before.Title || p.Price != before.Price ||
		p.Bedrooms != before.Bedrooms || p.Type != before.Type ||
		len(p.Amenities) != len(before.Amenities) || len(p.Images) != len(before.Images) ||
		!p.CreatedAt.Equal(before.CreatedAt) || p.ID != before.ID {
		t.Error("partial update touched fields that were not supplied")
	}
}

func TestPropertyUpdate_ApplyLists(t *testing.T) {
	p := sample()
	amen := []string{"pool"}
	(PropertyUpdate{Amenities: &amen}).Apply(&p)
	if len(p.Amenities) != 1 || p.Amenities[0] != "pool" {
		t.Errorf("amenities not replaced: %v", p.Amenities)
	}
	if len(p.Images) != 1 || p.Images[0] != "a.jpg" {
		t.Errorf("images must be untouched: %v", p.Images)
	}
}

func TestStringList_ScanValue(t *testing.T) {
	v, err := StringList{"wifi", "balcony"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var got StringList
	if err := got.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 || got[0] != "wifi" || got[1] != "balcony" {
		t.Errorf("roundtrip lost order or data: %v", got)
	}

	var empty StringList
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("nil column must scan to empty list, got %v", empty)
	}
}
