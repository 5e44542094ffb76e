package contact

import "context"

// InquiryRepository persists contact inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry Inquiry) (*Inquiry, error)
	FindByID(ctx context.Context, id int64) (*Inquiry, error)
	List(ctx context.Context) ([]Inquiry, error)
}
