package types

import "time"

// ContactCategory is the enquiry type chosen on the contact form
type ContactCategory string

const (
	ContactGeneral     ContactCategory = "general"
	ContactProduct     ContactCategory = "product"
	ContactDealership  ContactCategory = "dealership"
	ContactBulkOrder   ContactCategory = "bulk-order"
	ContactAgronomy    ContactCategory = "agronomy"
	ContactOtherReason ContactCategory = "other"
)

// ContactMessage is a stored contact form submission
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IP        string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Visit is one storefront page view
type Visit struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitorId"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
