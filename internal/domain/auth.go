package domain

// SubjectType differentiates the three token audiences.
type SubjectType string

const (
	SubjectTypeCustomer   SubjectType = "CUSTOMER"
	SubjectTypeAdmin      SubjectType = "ADMIN"
	SubjectTypeCallCentre SubjectType = "CALL_CENTRE"
)
