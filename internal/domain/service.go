package domain

import (
	"sort"
	"strconv"
)

type ServiceOffering struct {
	ID          int64  `json:"id"`
	ServiceID   string `json:"service_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Img         string `json:"img"`
}

// PriceValue converts the textually stored price for ordering purposes.
// Unparseable prices order as zero. The stored text is never modified.
func (s *ServiceOffering) PriceValue() float64 {
	v, err := strconv.ParseFloat(s.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// ServiceSummary is the projected view of an offering: title, price, img and
// the catalog-specific service id.
type ServiceSummary struct {
	ID        int64  `json:"id"`
	ServiceID string `json:"service_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Img       string `json:"img"`
}

func (s *ServiceOffering) Summary() ServiceSummary {
	return ServiceSummary{
		ID:        s.ID,
		ServiceID: s.ServiceID,
		Title:     s.Title,
		Price:     s.Price,
		Img:       s.Img,
	}
}

// SortByPrice orders offerings by numeric price, ascending when asc is true
// and descending otherwise. The sort is stable so equal prices keep their
// storage order.
func SortByPrice(services []ServiceOffering, asc bool) {
	sort.SliceStable(services, func(i, j int) bool {
		if asc {
			return services[i].PriceValue() < services[j].PriceValue()
		}
		return services[i].PriceValue() > services[j].PriceValue()
	})
}
