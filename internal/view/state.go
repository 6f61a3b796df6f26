// Package view holds the list/form state behind the laptop screen.
//
// State is plain data: the bubbletea program in internal/tui owns one and calls
// these methods from its Update loop. Nothing here touches the network.
package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/idilsaglam/laptopstore/internal/apperror"
	"github.com/idilsaglam/laptopstore/internal/model"
)

// Form is the create/edit form. Every field stays text until submit.
type Form struct {
	Name      string
	Price     string
	Brand     string
	Storage   string
	RAM       string
	Processor string
}

// Search is the filter form. Price is an upper bound when it parses as a number.
type Search struct {
	Name  string
	Price string
	Brand string
}

type State struct {
	Laptops   []model.Laptop
	Filtered  []model.Laptop
	Form      Form
	Search    Search
	Submitted bool  // show required-field messages
	EditingID int64 // 0 when the form creates a new record
}

// Filter returns the laptops matching s, in their original order.
func Filter(laptops []model.Laptop, s Search) []model.Laptop {
	name := strings.ToLower(s.Name)
	brand := strings.ToLower(s.Brand)
	maxPrice, hasMax := parsePrice(s.Price)

	out := make([]model.Laptop, 0, len(laptops))
	for _, l := range laptops {
		if !strings.Contains(strings.ToLower(l.Name), name) {
			continue
		}
		if hasMax && l.Price > maxPrice {
			continue
		}
		if !strings.Contains(strings.ToLower(l.Brand), brand) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SetLaptops replaces the cached list with a fresh server response and
// recomputes the filtered view against the current search.
func (s *State) SetLaptops(laptops []model.Laptop) {
	s.Laptops = laptops
	s.ApplySearch()
}

func (s *State) ApplySearch() {
	s.Filtered = Filter(s.Laptops, s.Search)
}

// Reset clears both forms and shows the whole list again.
func (s *State) Reset() {
	s.Form = Form{}
	s.Search = Search{}
	s.Submitted = false
	s.EditingID = 0
	s.Filtered = s.Laptops
}

// Edit pre-fills the form from the cached record with the given id.
func (s *State) Edit(id int64) bool {
	for _, l := range s.Laptops {
		if l.ID != id {
			continue
		}
		s.Form = Form{
			Name:      l.Name,
			Price:     strconv.FormatFloat(l.Price, 'f', -1, 64),
			Brand:     l.Brand,
			Storage:   l.Storage,
			RAM:       l.RAM,
			Processor: l.Processor,
		}
		s.EditingID = id
		s.Submitted = false
		return true
	}
	return false
}

// CancelEdit drops back to create mode with an empty form.
func (s *State) CancelEdit() {
	s.Form = Form{}
	s.Submitted = false
	s.EditingID = 0
}

// BeginSubmit marks the form as submitted and returns the record to send.
// ok is false when any field is missing or the price is not a number.
func (s *State) BeginSubmit() (l model.Laptop, ok bool) {
	s.Submitted = true
	l, err := s.Form.Laptop()
	if err != nil {
		return model.Laptop{}, false
	}
	l.ID = s.EditingID
	return l, true
}

// SubmitSucceeded clears the form after the server accepted it.
func (s *State) SubmitSucceeded() {
	s.CancelEdit()
}

// Field describes one form input for rendering and validation.
type Field struct {
	Key   string
	Label string
}

var Fields = []Field{
	{"name", "Name"},
	{"price", "Price"},
	{"brand", "Brand"},
	{"storage", "Storage"},
	{"ram", "RAM"},
	{"processor", "Processor"},
}

// Value returns the raw text of the field with the given key.
func (f Form) Value(key string) string {
	switch key {
	case "name":
		return f.Name
	case "price":
		return f.Price
	case "brand":
		return f.Brand
	case "storage":
		return f.Storage
	case "ram":
		return f.RAM
	case "processor":
		return f.Processor
	}
	return ""
}

// Set assigns the field with the given key.
func (f *Form) Set(key, v string) {
	switch key {
	case "name":
		f.Name = v
	case "price":
		f.Price = v
	case "brand":
		f.Brand = v
	case "storage":
		f.Storage = v
	case "ram":
		f.RAM = v
	case "processor":
		f.Processor = v
	}
}

// CanSubmit gates the submit control: name, price and brand must be present.
func (f Form) CanSubmit() bool {
	return f.Name != "" && f.Price != "" && f.Brand != ""
}

// Problems lists one message per invalid field, in form order.
func (f Form) Problems() []*apperror.AppError {
	var out []*apperror.AppError
	for _, fd := range Fields {
		v := f.Value(fd.Key)
		if v == "" {
			out = append(out, apperror.ValidationFailed(fd.Key, fd.Label+" is required."))
			continue
		}
		if fd.Key == "price" {
			if p, ok := parsePrice(v); !ok || math.IsNaN(p) || math.IsInf(p, 0) {
				out = append(out, apperror.ValidationFailed(fd.Key, "Price must be a number."))
			}
		}
	}
	return out
}

// Laptop converts a complete form into a record with ID 0.
func (f Form) Laptop() (model.Laptop, error) {
	if p := f.Problems(); len(p) > 0 {
		return model.Laptop{}, p[0]
	}
	price, _ := parsePrice(f.Price)
	return model.Laptop{
		Name:      f.Name,
		Price:     price,
		Brand:     f.Brand,
		Storage:   f.Storage,
		RAM:       f.RAM,
		Processor: f.Processor,
	}, nil
}
